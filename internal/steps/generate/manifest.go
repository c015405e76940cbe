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

const manifestID = "manifest"

// ManifestFile is the project manifest the serve command requires.
const ManifestFile = "package.json"

type manifestStep struct{}

// NewManifest creates the package.json generation step.
func NewManifest() plugin.Plugin {
	return &manifestStep{}
}

var _ plugin.Plugin = (*manifestStep)(nil)

func (s *manifestStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          manifestID,
		Title:       "Write package manifest",
		Description: "Writes package.json with dev, build, preview and database scripts.",
		Needs:       config.GroupProject,
	}
}

func (s *manifestStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(manifestID, fmt.Errorf("context cancelled: %w", err))
	}

	path := filepath.Join(cfg.ProjectDir, ManifestFile)
	exists, err := fileExists(path)
	if err != nil {
		return nil, probeErr(manifestID, path, err)
	}
	if exists {
		return satisfied(manifestID, path+" exists"), nil
	}
	return missing(manifestID, path+" not found"), nil
}

func (s *manifestStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(manifestID), nil
	}

	dest := filepath.Join(cfg.ProjectDir, ManifestFile)
	if err := scaffold.RenderToFile(ManifestFile, scaffold.NewData(cfg), dest); err != nil {
		return nil, plugin.NewExecutionError(manifestID, err)
	}

	return &model.StepResult{
		StepID:  manifestID,
		Status:  model.StatusSuccess,
		Message: "wrote " + dest,
	}, nil
}
