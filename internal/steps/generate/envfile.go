package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const envfileID = "envfile"

type envfileStep struct{}

// NewEnvFile creates the `.env.local` generation step.
func NewEnvFile() plugin.Plugin {
	return &envfileStep{}
}

var _ plugin.Plugin = (*envfileStep)(nil)

func (s *envfileStep) Metadata() plugin.Metadata {
	return plugin.Metadata{
		ID:          envfileID,
		Title:       "Write environment file",
		Description: "Writes .env.local with the database connection settings.",
		Needs:       config.GroupDatabase,
	}
}

func (s *envfileStep) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, plugin.NewStateError(envfileID, fmt.Errorf("context cancelled: %w", err))
	}

	path := filepath.Join(cfg.ProjectDir, config.EnvFileName)
	exists, err := fileExists(path)
	if err != nil {
		return nil, probeErr(envfileID, path, err)
	}
	if exists {
		return satisfied(envfileID, path+" exists"), nil
	}
	return missing(envfileID, path+" not found"), nil
}

func (s *envfileStep) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	if eval != nil && !eval.RequiresAction {
		return alreadyDone(envfileID), nil
	}

	// Values are written verbatim: the generated dotenv consumers read
	// unquoted values, and quoting would change what the migration runner
	// sees.
	content := Render(cfg)

	path := filepath.Join(cfg.ProjectDir, config.EnvFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, plugin.NewExecutionError(envfileID, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, plugin.NewExecutionError(envfileID, err)
	}

	return &model.StepResult{
		StepID:  envfileID,
		Status:  model.StatusSuccess,
		Message: "wrote " + path,
	}, nil
}

// Render produces the exact `.env.local` content for a configuration.
func Render(cfg *config.Config) string {
	lines := []string{
		"DB_HOST=" + cfg.DBHost,
		"DB_PORT=" + strconv.Itoa(cfg.DBPort),
		"DB_NAME=" + cfg.DBName,
		"DB_USER=" + cfg.DBUser,
		"DB_PASSWORD=" + cfg.DBPassword,
		"VITE_APP_ENV=development",
		"VITE_API_URL=" + cfg.APIURL,
	}
	return strings.Join(lines, "\n") + "\n"
}
