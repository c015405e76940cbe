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

const editorID = "editor"

var editorFiles = []string{
	".vscode/settings.json",
	".vscode/extensions.json",
}

type editorStep struct{}

// NewEditor creates the editor settings generation step.
func NewEditor() plugin.Plugin {
	return &editorStep{}
}

var _ plugin.Plugin = (*editorStep)(nil)

func (s *editorStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          editorID,
		Title:       "Write editor settings",
		Description: "Writes VS Code settings and extension recommendations.",
		Needs:       config.GroupProject,
	}
}

func (s *editorStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(editorID, fmt.Errorf("context cancelled: %w", err))
	}

	for _, name := range editorFiles {
		path := filepath.Join(cfg.ProjectDir, filepath.FromSlash(name))
		exists, err := fileExists(path)
		if err != nil {
			return nil, probeErr(editorID, path, err)
		}
		if !exists {
			return missing(editorID, path+" not found"), nil
		}
	}

	return satisfied(editorID, "editor settings exist"), nil
}

func (s *editorStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(editorID), nil
	}

	written, err := scaffold.RenderTree(".vscode/**", cfg.ProjectDir, scaffold.NewData(cfg))
	if err != nil {
		return nil, plugin.NewExecutionError(editorID, err)
	}

	return &model.StepResult{
		StepID:  editorID,
		Status:  model.StatusSuccess,
		Message: fmt.Sprintf("wrote %d editor files", len(written)),
	}, nil
}
