package model

// ProbeStatus describes the state of an external resource relative to the
// state a step wants it in.
type ProbeStatus string

const (
	// StatusSatisfied means the resource already exists in the desired state.
	StatusSatisfied ProbeStatus = "satisfied"
	// StatusMissing means the resource is absent and must be materialized.
	StatusMissing ProbeStatus = "missing"
	// StatusUnknown means the probe could not determine the resource state.
	StatusUnknown ProbeStatus = "unknown"
)

// IsValid reports whether the status is one of the defined values.
func (s ProbeStatus) IsValid() bool {
	switch s {
	case StatusSatisfied, StatusMissing, StatusUnknown:
		return true
	default:
		return false
	}
}

// EvaluationResult contains the result of probing a step's resource.
// It is returned by Plugin.Evaluate() and passed to Plugin.Apply() when
// action is required.
type EvaluationResult struct {
	// StepID is the identifier of the evaluated step.
	StepID string

	// CurrentState is the probed state of the resource.
	CurrentState ProbeStatus

	// RequiresAction indicates whether Apply() should be called.
	RequiresAction bool

	// Message is a human-readable description of what the probe found.
	Message string

	// InternalData is opaque data passed from Evaluate() to Apply() so the
	// apply path does not recompute what the probe already learned.
	InternalData any
}
