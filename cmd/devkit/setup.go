package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/devkit/internal/tui"
)

// newSetupCmd runs every step in order without showing the menu, for
// operators who want the whole scaffold in one shot.
func newSetupCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Run all setup steps in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}

			records, runErr := app.orchestrator.RunAll(cmd.Context())
			if summary := tui.RenderSummary(records); summary != "" {
				fmt.Fprintln(app.prompter.Out(), summary)
			}
			return runErr
		},
	}
}
