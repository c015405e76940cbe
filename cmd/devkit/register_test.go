package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
	"github.com/alexisbeaulieu97/devkit/internal/prompt"
	devkiterrors "github.com/alexisbeaulieu97/devkit/pkg/errors"
)

type noConfirmer struct{}

func (noConfirmer) Confirm(string, bool) (bool, error) { return false, nil }

func TestRegisterSteps_Order(t *testing.T) {
	registry := plugin.NewRegistry()
	require.NoError(t, registerSteps(registry, execx.NewFakeRunner(), noConfirmer{}))

	want := []string{
		"pkgmanager",
		"node",
		"bun",
		"dbengine",
		"dbservice",
		"database",
		"project",
		"envfile",
		"migration",
		"manifest",
		"clientlib",
		"editor",
		"docs",
	}

	var got []string
	for _, p := range registry.Steps() {
		got = append(got, p.Metadata().ID)
	}
	require.Equal(t, want, got)
}

func TestRegisterSteps_OnlyBunIsOptional(t *testing.T) {
	registry := plugin.NewRegistry()
	require.NoError(t, registerSteps(registry, execx.NewFakeRunner(), noConfirmer{}))

	for _, p := range registry.Steps() {
		meta := p.Metadata()
		require.Equal(t, meta.ID == "bun", meta.Optional, "step %s", meta.ID)
	}
}

func newServeTestApp(t *testing.T, dir string) (*app, *execx.FakeRunner) {
	t.Helper()

	fake := execx.NewFakeRunner()
	cfg := config.Defaults()
	cfg.ProjectDir = dir
	collector := config.NewCollector(&cfg, prompt.New(os.Stdin, os.Stdout))
	collector.MarkPreset("project_name", "project_dir", "api_url", "license")

	return &app{
		prompter:  prompt.New(os.Stdin, os.Stdout),
		runner:    fake,
		collector: collector,
	}, fake
}

func TestChooseServeRunner_PrefersBun(t *testing.T) {
	a, fake := newServeTestApp(t, t.TempDir())
	fake.PutOnPath("bun", "npm")
	require.Equal(t, "bun", chooseServeRunner(a))
}

func TestChooseServeRunner_FallsBackToNpm(t *testing.T) {
	a, fake := newServeTestApp(t, t.TempDir())
	fake.PutOnPath("npm")
	require.Equal(t, "npm", chooseServeRunner(a))
}

func TestChooseServeRunner_NoneAvailable(t *testing.T) {
	a, _ := newServeTestApp(t, t.TempDir())
	require.Equal(t, "", chooseServeRunner(a))
}

func TestRunServe_MissingManifestIsPrerequisiteError(t *testing.T) {
	a, fake := newServeTestApp(t, t.TempDir())
	fake.PutOnPath("bun")

	err := runServe(t.Context(), a)
	require.Error(t, err)

	var prereq *devkiterrors.PrerequisiteError
	require.ErrorAs(t, err, &prereq)
	require.Empty(t, fake.Calls)
}

func TestRunServe_RunsDevScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.EnvFileName), []byte("DB_HOST=localhost\n"), 0o600))

	a, fake := newServeTestApp(t, dir)
	fake.PutOnPath("npm")
	fake.Stub("npm run dev", execx.Result{ExitCode: 0})

	require.NoError(t, runServe(t.Context(), a))
	require.Contains(t, fake.Calls, "npm run dev")
}

func TestRunServe_NonZeroExitIsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))

	a, fake := newServeTestApp(t, dir)
	fake.PutOnPath("bun")
	fake.Stub("bun run dev", execx.Result{ExitCode: 1})

	err := runServe(t.Context(), a)
	require.Error(t, err)
}
