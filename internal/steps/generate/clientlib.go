package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
	"github.com/alexisbeaulieu97/devkit/internal/scaffold"
)

const clientlibID = "clientlib"

// clientFiles are the migration runner and the pooled database client.
var clientFiles = []string{
	"scripts/migrate.js",
	"src/lib/db.js",
}

type clientlibStep struct{}

// NewClientLib creates the database client and migration runner step.
func NewClientLib() plugin.Plugin {
	return &clientlibStep{}
}

var _ plugin.Plugin = (*clientlibStep)(nil)

func (s *clientlibStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          clientlibID,
		Title:       "Write database client and migration runner",
		Description: "Writes scripts/migrate.js and the pooled client in src/lib/db.js.",
		Needs:       config.GroupProject,
	}
}

func (s *clientlibStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(clientlibID, fmt.Errorf("context cancelled: %w", err))
	}

	var absent []string
	for _, name := range clientFiles {
		path := filepath.Join(cfg.ProjectDir, filepath.FromSlash(name))
		exists, err := fileExists(path)
		if err != nil {
			return nil, probeErr(clientlibID, path, err)
		}
		if !exists {
			absent = append(absent, name)
		}
	}

	if len(absent) == 0 {
		return satisfied(clientlibID, "client and migration runner exist"), nil
	}

	eval := missing(clientlibID, "missing: "+strings.Join(absent, ", "))
	eval.InternalData = absent
	return eval, nil
}

func (s *clientlibStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(clientlibID), nil
	}

	// Render only what the probe found absent so an existing, possibly
	// hand-edited file is never overwritten.
	targets := clientFiles
	if eval != nil {
		if absent, ok := eval.InternalData.([]string); ok && len(absent) > 0 {
			targets = absent
		}
	}

	data := scaffold.NewData(cfg)
	for _, name := range targets {
		dest := filepath.Join(cfg.ProjectDir, filepath.FromSlash(name))
		if err := scaffold.RenderToFile(name, data, dest); err != nil {
			return nil, plugin.NewExecutionError(clientlibID, err)
		}
	}

	return &model.StepResult{
		StepID:  clientlibID,
		Status:  model.StatusSuccess,
		Message: "wrote " + strings.Join(targets, ", "),
	}, nil
}
