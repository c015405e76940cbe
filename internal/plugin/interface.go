package plugin

import (
	"context"

	"github.com/alexisbeaulieu97/devkit/internal/config"
	"github.com/alexisbeaulieu97/devkit/internal/model"
)

// Plugin defines the contract every devkit step satisfies: a read-only
// probe paired with an idempotent materializer.
//
// Implementations should:
//   - Return identity and controller hints via Metadata()
//   - Implement the read-only resource probe via Evaluate()
//   - Implement resource materialization via Apply()
type Plugin interface {
	// Metadata returns the step's identity and controller-relevant flags.
	Metadata() Metadata

	// Evaluate performs a STRICTLY READ-ONLY probe of the external
	// resource this step manages (tool on PATH, running service, database,
	// file, directory).
	//
	// CRITICAL CONTRACT: this method MUST NOT mutate any system state. A
	// probe reporting the resource absent is branching information, never
	// an error; errors are reserved for probes that could not determine
	// the state at all.
	Evaluate(ctx context.Context, cfg *config.Config) (*model.EvaluationResult, error)

	// Apply brings the resource into existence. It is only called when
	// Evaluate() reported RequiresAction = true, and MUST be idempotent:
	// materializing twice leaves the same on-disk/on-service state as
	// materializing once.
	//
	// The eval parameter carries the probe's result, including
	// InternalData, so Apply need not repeat work the probe already did.
	Apply(ctx context.Context, eval *model.EvaluationResult, cfg *config.Config) (*model.StepResult, error)
}
