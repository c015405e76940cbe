package model

import "time"

// StepOutcome is the operator-level disposition of a step after the
// controller's retry loop has finished with it. It is distinct from the
// per-attempt StepResult: outcomes feed the post-run summary and never
// gate later steps.
type StepOutcome string

const (
	// OutcomeSucceeded means an attempt succeeded or the resource was
	// already in the desired state.
	OutcomeSucceeded StepOutcome = "succeeded"
	// OutcomeSkipped means the operator chose to skip after failures, or
	// an optional step failed and degraded to a warning.
	OutcomeSkipped StepOutcome = "skipped"
	// OutcomeAborted means the operator chose to exit at a failure prompt
	// or declined a required confirmation. No further steps run.
	OutcomeAborted StepOutcome = "aborted"
)

// OutcomeRecord pairs a step with its disposition for the run summary.
type OutcomeRecord struct {
	StepID   string
	Title    string
	Outcome  StepOutcome
	Message  string
	Attempts int
	Duration time.Duration
}
