package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/steps/generate"
	devkiterrors "github.com/alexisbeaulieu97/devkit/pkg/errors"
)

// newServeCmd launches the generated project's dev server.
func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dev server inside the generated project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(flags)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), app)
		},
	}
}

// runServe starts `dev` inside the project directory, preferring bun over
// npm when both are installed. The project's `.env.local` values are passed
// through the environment so the server sees the scaffolded configuration.
func runServe(ctx context.Context, a *app) error {
	if err := a.collector.Ensure(config.GroupProject); err != nil {
		return err
	}
	cfg := a.collector.Config()

	manifest := filepath.Join(cfg.ProjectDir, generate.ManifestFile)
	if _, err := os.Stat(manifest); err != nil {
		return devkiterrors.NewPrerequisiteError("serve",
			fmt.Sprintf("%s not found in %s; run the setup steps first", generate.ManifestFile, cfg.ProjectDir))
	}

	env, err := envFromProject(cfg.ProjectDir)
	if err != nil {
		return err
	}

	runner := chooseServeRunner(a)
	if runner == "" {
		return devkiterrors.NewPrerequisiteError("serve",
			"neither bun nor npm is on PATH; run the runtime steps first")
	}

	a.prompter.Info(fmt.Sprintf("starting dev server with %s in %s (Ctrl+C to stop)", runner, cfg.ProjectDir))
	a.log.WithFields(map[string]any{"runner": runner, "dir": cfg.ProjectDir}).Info("launching dev server")

	res, err := a.runner.RunStreamingIn(ctx, cfg.ProjectDir, env, runner, "run", "dev")
	if err != nil {
		return devkiterrors.NewExecutionError("serve", fmt.Errorf("dev server failed to start: %w", err))
	}
	if !res.Success() {
		return devkiterrors.NewExecutionError("serve", fmt.Errorf("dev server exited with code %d", res.ExitCode))
	}
	return nil
}

// chooseServeRunner picks the package runner: bun when present, else npm.
func chooseServeRunner(a *app) string {
	if a.runner.LookPath("bun") {
		return "bun"
	}
	if a.runner.LookPath("npm") {
		return "npm"
	}
	return ""
}

// envFromProject loads `.env.local` as KEY=VALUE pairs. A missing file is
// fine; the dev server then runs on the manifest's own defaults.
func envFromProject(projectDir string) ([]string, error) {
	path := filepath.Join(projectDir, config.EnvFileName)
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	env := make([]string, 0, len(values))
	for key, value := range values {
		env = append(env, key+"="+value)
	}
	return env, nil
}
