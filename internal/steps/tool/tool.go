// Package tool provides the generic "install a command-line tool through
// Homebrew" step used for Node.js, Bun and the PostgreSQL engine.
package tool

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

// Spec describes one tool installation.
type Spec struct {
	// ID is the step identifier.
	ID string
	// Title is the step's menu name.
	Title string
	// Binary is the command probed for on PATH.
	Binary string
	// Formula is the Homebrew formula installed when Binary is absent.
	Formula string
	// Optional tools degrade to a warning on failure.
	Optional bool
}

type toolStep struct {
	spec   Spec
	runner execx.Runner
}

// New creates an install step for the given tool.
func New(spec Spec, runner execx.Runner) plugin.Plugin {
	return &toolStep{spec: spec, runner: runner}
}

var _ plugin.Plugin = (*toolStep)(nil)

func (s *toolStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          s.spec.ID,
		Title:       s.spec.Title,
		Description: fmt.Sprintf("Installs %s via Homebrew when %s is not on PATH.", s.spec.Formula, s.spec.Binary),
		Optional:    s.spec.Optional,
		Needs:       config.GroupNone,
	}
}

func (s *toolStep) Evaluate(ctx context.Context, _ *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(s.spec.ID, fmt.Errorf("context cancelled: %w", err))
	}

	if s.runner.LookPath(s.spec.Binary) {
		return &model.EvaluationResult{
			StepID:         s.spec.ID,
			CurrentState:   model.StatusSatisfied,
			RequiresAction: false,
			Message:        fmt.Sprintf("%s is on PATH", s.spec.Binary),
		}, nil
	}

	return &model.EvaluationResult{
		StepID:         s.spec.ID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        fmt.Sprintf("%s not found on PATH", s.spec.Binary),
	}, nil
}

func (s *toolStep) Apply(ctx context.Context, eval *model.EvaluationResult, _ *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return &model.StepResult{
			StepID:  s.spec.ID,
			Status:  model.StatusSkipped,
			Message: "no changes needed",
		}, nil
	}

	if !s.runner.LookPath("brew") {
		err := fmt.Errorf("brew not found on PATH; run the Homebrew step first")
		return &model.StepResult{
			StepID:  s.spec.ID,
			Status:  model.StatusFailed,
			Message: err.Error(),
			Error:   err,
		}, plugin.NewExecutionError(s.spec.ID, err)
	}

	res, err := s.runner.RunStreaming(ctx, "brew", "install", s.spec.Formula)
	if err != nil {
		return nil, plugin.NewExecutionError(s.spec.ID, err)
	}
	if !res.Success() {
		failure := fmt.Errorf("brew install %s exited %d: %s", s.spec.Formula, res.ExitCode, res.PrimaryOutput())
		return &model.StepResult{
			StepID:  s.spec.ID,
			Status:  model.StatusFailed,
			Message: failure.Error(),
			Error:   failure,
		}, plugin.NewExecutionError(s.spec.ID, failure)
	}

	return &model.StepResult{
		StepID:  s.spec.ID,
		Status:  model.StatusSuccess,
		Message: fmt.Sprintf("installed %s", s.spec.Formula),
	}, nil
}
