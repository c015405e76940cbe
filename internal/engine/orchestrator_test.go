package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/logger"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

// recordingSource answers every prompt with the offered default.
type recordingSource struct {
	asks []string
}

func (s *recordingSource) Ask(label, def string) (string, error) {
	s.asks = append(s.asks, label)
	return def, nil
}

func (s *recordingSource) AskSecret(label string) (string, error) {
	s.asks = append(s.asks, label)
	return "", nil
}

func (s *recordingSource) Warn(string) {}

func newTestOrchestrator(t *testing.T, steps []plugin.Plugin, answers ...string) (*Orchestrator, *recordingSource) {
	t.Helper()

	log, err := logger.New(logger.Options{Level: "error"})
	require.NoError(t, err)

	registry := plugin.NewRegistry()
	for _, p := range steps {
		require.NoError(t, registry.Register(p))
	}

	cfg := config.Defaults()
	source := &recordingSource{}
	collector := config.NewCollector(&cfg, source)

	prompter := &scriptPrompter{answers: answers}
	controller := NewController(prompter, log)

	return NewOrchestrator(registry, collector, controller, log), source
}

func TestOrchestrator_RunsStepsInRegistrationOrder(t *testing.T) {
	first := &fakeStep{meta: plugin.Metadata{ID: "first", Title: "First"}}
	second := &fakeStep{meta: plugin.Metadata{ID: "second", Title: "Second"}}
	orch, _ := newTestOrchestrator(t, []plugin.Plugin{first, second})

	records, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "first", records[0].StepID)
	require.Equal(t, "second", records[1].StepID)
}

func TestOrchestrator_AbortStopsRemainingSteps(t *testing.T) {
	first := &fakeStep{meta: plugin.Metadata{ID: "first", Title: "First"}, failures: 100}
	second := &fakeStep{meta: plugin.Metadata{ID: "second", Title: "Second"}}
	orch, _ := newTestOrchestrator(t, []plugin.Plugin{first, second}, "exit")

	records, err := orch.RunAll(context.Background())

	require.ErrorIs(t, err, ErrAborted)
	require.Len(t, records, 1)
	require.Equal(t, model.OutcomeAborted, records[0].Outcome)
	require.Equal(t, 0, second.evalCalls)
}

func TestOrchestrator_SkippedStepDoesNotStopRun(t *testing.T) {
	first := &fakeStep{meta: plugin.Metadata{ID: "first", Title: "First"}, failures: 100}
	second := &fakeStep{meta: plugin.Metadata{ID: "second", Title: "Second"}}
	orch, _ := newTestOrchestrator(t, []plugin.Plugin{first, second}, "skip")

	records, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, model.OutcomeSkipped, records[0].Outcome)
	require.Equal(t, model.OutcomeSucceeded, records[1].Outcome)
}

func TestOrchestrator_ResolvesConfigGroupBeforeStep(t *testing.T) {
	step := &fakeStep{meta: plugin.Metadata{ID: "db", Title: "DB", Needs: config.GroupDatabase}}
	orch, source := newTestOrchestrator(t, []plugin.Plugin{step})

	_, err := orch.RunAll(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, source.asks)
}

func TestOrchestrator_RunByID(t *testing.T) {
	step := &fakeStep{meta: plugin.Metadata{ID: "only", Title: "Only"}}
	orch, _ := newTestOrchestrator(t, []plugin.Plugin{step})

	rec, err := orch.RunByID(context.Background(), "only")
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSucceeded, rec.Outcome)

	_, err = orch.RunByID(context.Background(), "missing")
	require.Error(t, err)
}
