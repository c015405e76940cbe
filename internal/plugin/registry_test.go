package plugin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
)

type stubPlugin struct {
	id string
}

func (p *stubPlugin) Metadata() Metadata {
	return Metadata{ID: p.id, Title: p.id}
}

func (p *stubPlugin) Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error) {
	return &model.EvaluationResult{StepID: p.id, CurrentState: model.StatusSatisfied}, nil
}

func (p *stubPlugin) Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error) {
	return &model.StepResult{StepID: p.id, Status: model.StatusSuccess}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	p := &stubPlugin{id: "node"}

	require.NoError(t, r.Register(p))

	fetched, err := r.Get("node")
	require.NoError(t, err)
	require.Equal(t, p, fetched)
}

func TestRegistry_RejectsDuplicateID(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubPlugin{id: "node"}))
	require.Error(t, r.Register(&stubPlugin{id: "node"}))
}

func TestRegistry_RejectsNilAndEmptyID(t *testing.T) {
	r := NewRegistry()
	require.Error(t, r.Register(nil))
	require.Error(t, r.Register(&stubPlugin{id: ""}))
}

func TestRegistry_UnknownID(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nothing")
	require.Error(t, err)
}

func TestRegistry_StepsPreserveRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var want []string
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("step-%d", i)
		want = append(want, id)
		require.NoError(t, r.Register(&stubPlugin{id: id}))
	}

	require.Equal(t, 8, r.Len())

	var got []string
	for _, p := range r.Steps() {
		got = append(got, p.Metadata().ID)
	}
	require.Equal(t, want, got)
}
