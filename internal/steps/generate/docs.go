package generate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
	"github.com/alexisbeaulieu97/devkit/internal/scaffold"
)

const docsID = "docs"

type docsStep struct{}

// NewDocs creates the documentation generation step.
func NewDocs() plugin.Plugin {
	return &docsStep{}
}

var _ plugin.Plugin = (*docsStep)(nil)

func (s *docsStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          docsID,
		Title:       "Write documentation",
		Description: "Writes README.md, CONTRIBUTING.md and the chosen LICENSE.",
		Needs:       config.GroupProject,
	}
}

func (s *docsStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(docsID, fmt.Errorf("context cancelled: %w", err))
	}

	path := filepath.Join(cfg.ProjectDir, "README.md")
	exists, err := fileExists(path)
	if err != nil {
		return nil, probeErr(docsID, path, err)
	}
	if exists {
		return satisfied(docsID, path+" exists"), nil
	}
	return missing(docsID, path+" not found"), nil
}

func (s *docsStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(docsID), nil
	}

	data := scaffold.NewData(cfg)
	for _, name := range []string{"README.md", "CONTRIBUTING.md"} {
		dest := filepath.Join(cfg.ProjectDir, name)
		if err := scaffold.RenderToFile(name, data, dest); err != nil {
			return nil, plugin.NewExecutionError(docsID, err)
		}
	}

	if cfg.License != "none" {
		dest := filepath.Join(cfg.ProjectDir, "LICENSE")
		if err := scaffold.RenderToFile("licenses/"+cfg.License, data, dest); err != nil {
			return nil, plugin.NewExecutionError(docsID, err)
		}
	}

	return &model.StepResult{
		StepID:  docsID,
		Status:  model.StatusSuccess,
		Message: "wrote project documentation",
	}, nil
}
