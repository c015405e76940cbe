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

const migrationID = "migration"

// migrationFile is rendered under the project's migrations directory.
const migrationFile = "migrations/001_initial_schema.sql"

type migrationStep struct{}

// NewMigration creates the initial-schema generation step.
func NewMigration() plugin.Plugin {
	return &migrationStep{}
}

var _ plugin.Plugin = (*migrationStep)(nil)

func (s *migrationStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          migrationID,
		Title:       "Write initial migration",
		Description: "Writes the initial schema migration (users, projects, triggers, indexes).",
		Needs:       config.GroupProject,
	}
}

func (s *migrationStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(migrationID, fmt.Errorf("context cancelled: %w", err))
	}

	path := filepath.Join(cfg.ProjectDir, filepath.FromSlash(migrationFile))
	exists, err := fileExists(path)
	if err != nil {
		return nil, probeErr(migrationID, path, err)
	}
	if exists {
		return satisfied(migrationID, path+" exists"), nil
	}
	return missing(migrationID, path+" not found"), nil
}

func (s *migrationStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(migrationID), nil
	}

	dest := filepath.Join(cfg.ProjectDir, filepath.FromSlash(migrationFile))
	if err := scaffold.RenderToFile(migrationFile, scaffold.NewData(cfg), dest); err != nil {
		return nil, plugin.NewExecutionError(migrationID, err)
	}

	return &model.StepResult{
		StepID:  migrationID,
		Status:  model.StatusSuccess,
		Message: "wrote " + dest,
	}, nil
}
