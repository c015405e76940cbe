// Package pkgmanager bootstraps Homebrew, the package manager every later
// install step invokes.
package pkgmanager

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const stepID = "pkgmanager"

// installScript fetches Homebrew's own bootstrap installer and pipes it
// into bash.
const installScript = `curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | /bin/bash`

// Confirmer asks the operator a yes/no question. The prompt layer provides
// the real implementation.
type Confirmer interface {
	Confirm(label string, def bool) (bool, error)
}

type pkgManagerStep struct {
	runner    execx.Runner
	confirmer Confirmer
}

// New creates the Homebrew bootstrap step.
func New(runner execx.Runner, confirmer Confirmer) plugin.Plugin {
	return &pkgManagerStep{runner: runner, confirmer: confirmer}
}

var _ plugin.Plugin = (*pkgManagerStep)(nil)

func (s *pkgManagerStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          stepID,
		Title:       "Install Homebrew",
		Description: "Bootstraps the Homebrew package manager used by every install step.",
		Needs:       config.GroupNone,
	}
}

func (s *pkgManagerStep) Evaluate(ctx context.Context, _ *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("context cancelled: %w", err))
	}

	if s.runner.LookPath("brew") {
		return &model.EvaluationResult{
			StepID:         stepID,
			CurrentState:   model.StatusSatisfied,
			RequiresAction: false,
			Message:        "brew is on PATH",
		}, nil
	}

	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        "brew not found on PATH",
	}, nil
}

func (s *pkgManagerStep) Apply(ctx context.Context, eval *model.EvaluationResult, _ *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusSkipped,
			Message: "brew already installed",
		}, nil
	}

	// Homebrew is a hard prerequisite: every later install step shells out
	// to brew, so a refusal here aborts the run instead of prompting for a
	// retry that cannot succeed.
	confirmed, err := s.confirmer.Confirm("Homebrew is required. Run its installer now?", false)
	if err != nil {
		return nil, plugin.NewExecutionError(stepID, err)
	}
	if !confirmed {
		return nil, plugin.NewDeclinedError(stepID, "Homebrew installation")
	}

	res, err := s.runner.RunStreaming(ctx, "/bin/bash", "-c", installScript)
	if err != nil {
		return nil, plugin.NewExecutionError(stepID, err)
	}
	if !res.Success() {
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusFailed,
			Message: "Homebrew installer failed",
			Error:   fmt.Errorf("installer exited %d: %s", res.ExitCode, res.PrimaryOutput()),
		}, plugin.NewExecutionError(stepID, fmt.Errorf("installer exited %d: %s", res.ExitCode, res.PrimaryOutput()))
	}

	return &model.StepResult{
		StepID:  stepID,
		Status:  model.StatusSuccess,
		Message: "Homebrew installed",
	}, nil
}
