// Package database provisions the project's PostgreSQL database.
package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const stepID = "database"

type databaseStep struct {
	runner execx.Runner
}

// New creates the database creation step.
func New(runner execx.Runner) plugin.Plugin {
	return &databaseStep{runner: runner}
}

var _ plugin.Plugin = (*databaseStep)(nil)

func (s *databaseStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          stepID,
		Title:       "Create database",
		Description: "Creates the configured database if the catalog does not list it.",
		Needs:       config.GroupDatabase,
	}
}

func (s *databaseStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("context cancelled: %w", err))
	}

	if strings.ContainsAny(cfg.DBName, "'\"\\") {
		return nil, plugin.NewValidationError(stepID, fmt.Errorf("database name %q contains quoting characters", cfg.DBName))
	}

	res, err := s.runner.RunWithEnv(ctx, s.passwordEnv(cfg), "psql",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", "postgres",
		"-tAc", fmt.Sprintf("SELECT 1 FROM pg_database WHERE datname = '%s'", cfg.DBName),
	)
	if err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("querying database catalog: %w", err))
	}
	if res.ExitCode != 0 {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("catalog query exited %d: %s", res.ExitCode, res.PrimaryOutput()))
	}

	if strings.TrimSpace(res.Stdout) == "1" {
		return &model.EvaluationResult{
			StepID:         stepID,
			CurrentState:   model.StatusSatisfied,
			RequiresAction: false,
			Message:        fmt.Sprintf("database %q exists", cfg.DBName),
		}, nil
	}

	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        fmt.Sprintf("database %q not found", cfg.DBName),
	}, nil
}

func (s *databaseStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusSkipped,
			Message: "database already exists",
		}, nil
	}

	res, err := s.runner.RunWithEnv(ctx, s.passwordEnv(cfg), "createdb",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		cfg.DBName,
	)
	if err != nil {
		return nil, plugin.NewExecutionError(stepID, err)
	}
	if !res.Success() {
		failure := fmt.Errorf("createdb %s exited %d: %s", cfg.DBName, res.ExitCode, res.PrimaryOutput())
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusFailed,
			Message: failure.Error(),
			Error:   failure,
		}, plugin.NewExecutionError(stepID, failure)
	}

	return &model.StepResult{
		StepID:  stepID,
		Status:  model.StatusSuccess,
		Message: fmt.Sprintf("created database %q", cfg.DBName),
	}, nil
}

func (s *databaseStep) passwordEnv(cfg *config.Config) []string {
	if cfg.DBPassword == "" {
		return nil
	}
	return []string{"PGPASSWORD=" + cfg.DBPassword}
}
