package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/devkit/internal/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, engine.ErrAborted) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
