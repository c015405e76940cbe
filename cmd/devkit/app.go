package main

import (
	"os"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/engine"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/logger"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
	"github.com/alexisbeaulieu97/devkit/internal/prompt"
)

// app bundles the wired components the commands share.
type app struct {
	log          *logger.Logger
	prompter     *prompt.Prompter
	runner       execx.Runner
	collector    *config.Collector
	registry     *plugin.Registry
	orchestrator *engine.Orchestrator
}

// newApp wires the full application: logger, prompt layer, configuration
// collector (seeded from the answers file; an existing `.env.local` is
// picked up by the collector once the project directory is settled), the
// ordered step registry and the run engine.
func newApp(flags *rootFlags) (*app, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: true,
	})
	if err != nil {
		return nil, err
	}

	prompter := prompt.New(os.Stdin, os.Stdout)
	runner := execx.NewRealRunner()

	cfg := config.Defaults()
	collector := config.NewCollector(&cfg, prompter)

	if flags.answers != "" {
		keys, err := config.LoadAnswers(flags.answers, &cfg)
		if err != nil {
			return nil, err
		}
		collector.MarkPreset(keys...)
		log.WithFields(map[string]any{"file": flags.answers, "keys": len(keys)}).Debug("answers file loaded")
	}

	registry := plugin.NewRegistry()
	if err := registerSteps(registry, runner, prompter); err != nil {
		return nil, err
	}

	controller := engine.NewController(prompter, log)
	orchestrator := engine.NewOrchestrator(registry, collector, controller, log)

	return &app{
		log:          log,
		prompter:     prompter,
		runner:       runner,
		collector:    collector,
		registry:     registry,
		orchestrator: orchestrator,
	}, nil
}
