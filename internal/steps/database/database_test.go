package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/execx"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

const catalogQuery = `psql -h localhost -p 5432 -U alice -d postgres -tAc SELECT 1 FROM pg_database WHERE datname = 'shop_dev'`

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.DBHost = "localhost"
	cfg.DBPort = 5432
	cfg.DBName = "shop_dev"
	cfg.DBUser = "alice"
	cfg.DBPassword = ""
	return &cfg
}

func TestEvaluate_ExistingDatabaseNeedsNoAction(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 0, Stdout: "1"})

	eval, err := New(fake).Evaluate(context.Background(), testConfig())
	require.NoError(t, err)
	require.False(t, eval.RequiresAction)
	require.Contains(t, eval.Message, "shop_dev")
}

func TestEvaluate_MissingDatabaseRequiresAction(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 0, Stdout: ""})

	eval, err := New(fake).Evaluate(context.Background(), testConfig())
	require.NoError(t, err)
	require.True(t, eval.RequiresAction)
}

func TestEvaluate_CatalogQueryFailureIsStateError(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 2, Stderr: "connection refused"})

	_, err := New(fake).Evaluate(context.Background(), testConfig())
	require.Error(t, err)

	var stateErr *plugin.StateError
	require.ErrorAs(t, err, &stateErr)
	require.Contains(t, err.Error(), "connection refused")
}

func TestEvaluate_RejectsQuotingCharactersInName(t *testing.T) {
	for _, name := range []string{`bad'name`, `bad"name`, `bad\name`} {
		cfg := testConfig()
		cfg.DBName = name

		_, err := New(execx.NewFakeRunner()).Evaluate(context.Background(), cfg)
		require.Error(t, err)

		var valErr *plugin.ValidationError
		require.ErrorAs(t, err, &valErr)
	}
}

func TestApply_CreatesDatabase(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 0, Stdout: ""})
	fake.Stub("createdb -h localhost -p 5432 -U alice shop_dev", execx.Result{ExitCode: 0})

	step := New(fake)
	cfg := testConfig()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)

	res, err := step.Apply(ctx, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, "success", res.Status)
	require.Contains(t, fake.Calls, "createdb -h localhost -p 5432 -U alice shop_dev")
}

func TestApply_CreatedbFailureIsExecutionError(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 0, Stdout: ""})
	fake.Stub("createdb -h localhost -p 5432 -U alice shop_dev", execx.Result{ExitCode: 1, Stderr: "permission denied"})

	step := New(fake)
	cfg := testConfig()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)

	_, err = step.Apply(ctx, eval, cfg)
	require.Error(t, err)

	var execErr *plugin.ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Contains(t, err.Error(), "permission denied")
}

func TestApply_SatisfiedEvaluationSkips(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.Stub(catalogQuery, execx.Result{ExitCode: 0, Stdout: "1"})

	step := New(fake)
	cfg := testConfig()
	ctx := context.Background()

	eval, err := step.Evaluate(ctx, cfg)
	require.NoError(t, err)

	res, err := step.Apply(ctx, eval, cfg)
	require.NoError(t, err)
	require.Equal(t, "skipped", res.Status)
	require.Len(t, fake.Calls, 1)
}

func TestEvaluate_CommandStartFailure(t *testing.T) {
	fake := execx.NewFakeRunner()
	fake.StubErr(catalogQuery, errors.New("psql vanished"))

	_, err := New(fake).Evaluate(context.Background(), testConfig())
	require.Error(t, err)
}
