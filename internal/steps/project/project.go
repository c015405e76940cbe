// Package project lays down the project directory tree and initializes a
// git repository in it.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const stepID = "project"

// subdirs is the directory skeleton every generated project gets.
var subdirs = []string{
	"src/lib",
	"scripts",
	"migrations",
	".vscode",
}

type projectStep struct{}

// New creates the project scaffold step.
func New() plugin.Plugin {
	return &projectStep{}
}

var _ plugin.Plugin = (*projectStep)(nil)

func (s *projectStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          stepID,
		Title:       "Create project directory",
		Description: "Creates the project directory tree and initializes a git repository.",
		Needs:       config.GroupProject,
	}
}

func (s *projectStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("context cancelled: %w", err))
	}

	_, err := git.PlainOpen(cfg.ProjectDir)
	if err == nil {
		return &model.EvaluationResult{
			StepID:         stepID,
			CurrentState:   model.StatusSatisfied,
			RequiresAction: false,
			Message:        fmt.Sprintf("%s is already a git repository", cfg.ProjectDir),
		}, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, plugin.NewStateError(stepID, fmt.Errorf("opening %s: %w", cfg.ProjectDir, err))
	}

	return &model.EvaluationResult{
		StepID:         stepID,
		CurrentState:   model.StatusMissing,
		RequiresAction: true,
		Message:        fmt.Sprintf("no git repository at %s", cfg.ProjectDir),
	}, nil
}

func (s *projectStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return &model.StepResult{
			StepID:  stepID,
			Status:  model.StatusSkipped,
			Message: "project already initialized",
		}, nil
	}

	for _, dir := range subdirs {
		if err := os.MkdirAll(filepath.Join(cfg.ProjectDir, dir), 0o755); err != nil {
			return nil, plugin.NewExecutionError(stepID, fmt.Errorf("creating %s: %w", dir, err))
		}
	}

	if _, err := git.PlainInit(cfg.ProjectDir, false); err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return nil, plugin.NewExecutionError(stepID, fmt.Errorf("initializing git repository: %w", err))
	}

	return &model.StepResult{
		StepID:  stepID,
		Status:  model.StatusSuccess,
		Message: fmt.Sprintf("created project skeleton at %s", cfg.ProjectDir),
	}, nil
}
