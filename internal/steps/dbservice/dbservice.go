// Package dbservice starts the local PostgreSQL service.
package dbservice

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const stepID = "dbservice"

// Formula is the PostgreSQL service name managed through brew services.
const Formula = "postgresql@16"

// settleDelay is how long to wait after `brew services start` before
// reporting success: start returns before the server accepts connections
// and there is no callback to wait on.
const settleDelay = 3 * time.Second

type serviceStep struct {
	runner execx.Runner
	sleep  func(time.Duration)
}

// New creates the PostgreSQL service step.
func New(runner execx.Runner) plugin.Plugin {
	return &serviceStep{runner: runner, sleep: time.Sleep}
}

var _ plugin.Plugin = (*serviceStep)(nil)

func (s *serviceStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          stepID,
		Title:       "Start PostgreSQL service",
		Description: "Starts the PostgreSQL server through brew services and waits for it to settle.",
		Needs:       config.GroupDatabase,
	}
}

func (s *serviceStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("context cancelled: %w", err))
	}

	// pg_isready exit codes are a structured readiness signal; matching
	// text in `brew services list` output is not.
	if !s.runner.LookPath("pg_isready") {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("pg_isready not found on PATH; install PostgreSQL first"))
	}

	res, err := s.runner.Run(ctx, "pg_isready", "-h", cfg.DBHost, "-p", strconv.Itoa(cfg.DBPort))
	if err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("probing server readiness: %w", err))
	}

	if res.Success() {
		return &model.EvaluationResult{
			StepID:         stepID,
			CurrentState:   model.StatusSatisfied,
			RequiresAction: false,
			Message:        fmt.Sprintf("PostgreSQL accepting connections on %s:%d", cfg.DBHost, cfg.DBPort),
		}, nil
	}

	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        fmt.Sprintf("PostgreSQL not accepting connections on %s:%d", cfg.DBHost, cfg.DBPort),
	}, nil
}

func (s *serviceStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusSkipped,
			Message: "service already running",
		}, nil
	}

	res, err := s.runner.Run(ctx, "brew", "services", "start", Formula)
	if err != nil {
		return nil, plugin.NewExecutionError(stepID, err)
	}
	if !res.Success() {
		failure := fmt.Errorf("brew services start %s exited %d: %s", Formula, res.ExitCode, res.PrimaryOutput())
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusFailed,
			Message: failure.Error(),
			Error:   failure,
		}, plugin.NewExecutionError(stepID, failure)
	}

	s.sleep(settleDelay)

	return &model.StepResult{
		StepID:  stepID,
		Status:  model.StatusSuccess,
		Message: fmt.Sprintf("started %s", Formula),
	}, nil
}
