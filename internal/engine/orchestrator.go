package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/logger"
	"github.com/alexisbeaulieu97/devkit/internal/model"
	"github.com/alexisbeaulieu97/devkit/internal/plugin"
)

// ErrAborted is returned when the operator ends the run at a failure
// prompt or declines a required confirmation. The command layer maps it to
// a non-zero exit.
var ErrAborted = errors.New("run aborted by operator")

// Orchestrator sequences steps strictly in registration order, resolving
// each step's configuration group before it runs. Skipped steps never stop
// the run; an abort stops it immediately.
type Orchestrator struct {
	registry   *plugin.Registry
	collector  *config.Collector
	controller *Controller
	log        *logger.Logger
}

// NewOrchestrator wires the run sequencing.
func NewOrchestrator(registry *plugin.Registry, collector *config.Collector, controller *Controller, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		collector:  collector,
		controller: controller,
		log:        log,
	}
}

// RunAll executes every registered step in order. It returns the outcome
// records collected so far together with ErrAborted when the operator
// ended the run early.
func (o *Orchestrator) RunAll(ctx context.Context) ([]model.OutcomeRecord, error) {
	steps := o.registry.Steps()
	records := make([]model.OutcomeRecord, 0, len(steps))

	for _, p := range steps {
		rec, err := o.runOne(ctx, p)
		if err != nil {
			return records, err
		}

		records = append(records, rec)
		if rec.Outcome == model.OutcomeAborted {
			return records, ErrAborted
		}
	}

	return records, nil
}

// RunByID executes a single step selected from the menu.
func (o *Orchestrator) RunByID(ctx context.Context, id string) (model.OutcomeRecord, error) {
	p, err := o.registry.Get(id)
	if err != nil {
		return model.OutcomeRecord{}, err
	}

	rec, err := o.runOne(ctx, p)
	if err != nil {
		return rec, err
	}
	if rec.Outcome == model.OutcomeAborted {
		return rec, ErrAborted
	}
	return rec, nil
}

func (o *Orchestrator) runOne(ctx context.Context, p plugin.Plugin) (model.OutcomeRecord, error) {
	meta := p.Metadata()

	if err := o.collector.Ensure(meta.Needs); err != nil {
		return model.OutcomeRecord{}, fmt.Errorf("resolving %s configuration for step %s: %w", meta.Needs, meta.ID, err)
	}

	o.log.WithFields(map[string]any{"step": meta.ID}).Debug("running step")
	return o.controller.RunStep(ctx, p, o.collector.Config()), nil
}
