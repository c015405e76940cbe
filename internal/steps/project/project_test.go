package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/devkit/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.ProjectDir = filepath.Join(t.TempDir(), "my-app")
	return &cfg
}

func TestEvaluate_FreshDirectoryRequiresAction(t *testing.T) {
	eval, err := New().Evaluate(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.True(t, eval.RequiresAction)
}

func TestApply_CreatesSkeletonAndGitRepository(t *testing.T) {
	cfg := testConfig(t)
	step := New()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)

	res, err := step.Apply(ctx, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, "success", res.Status)

	for _, dir := range []string{"src/lib", "scripts", "migrations", ".vscode"} {
		info, err := os.Stat(filepath.Join(cfg.ProjectDir, filepath.FromSlash(dir)))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	_, err = git.PlainOpen(cfg.ProjectDir)
	require.NoError(t, err)
}

func TestEvaluate_ExistingRepositoryNeedsNoAction(t *testing.T) {
	cfg := testConfig(t)
	step := New()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)
	_, err = step.Apply(ctx, eval, cfg)
	require.NoError(t, err)

	eval, err = step.Evaluate(ctx, cfg)
	require.NoError(t, err)
	require.False(t, eval.RequiresAction)

	res, err := step.Apply(ctx, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, "skipped", res.Status)
}

func TestApply_ToleratesExistingDirectoryWithoutRepo(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.ProjectDir, "scripts"), 0o755))

	step := New()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)
	require.True(t, eval.RequiresAction)

	res, err := step.Apply(ctx, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, "success", res.Status)
}
