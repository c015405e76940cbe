package model

import (
	"time"
)

const (
	// StatusPending indicates a step has not started yet.
	StatusPending = "pending"
	// StatusRunning indicates a step is actively executing.
	StatusRunning = "running"
	// StatusSuccess marks a successful materialization.
	StatusSuccess = "success"
	// StatusSkipped indicates the resource was already in the desired state.
	StatusSkipped = "skipped"
	// StatusFailed marks a failure during materialization.
	StatusFailed = "failed"
)

// StepResult captures the outcome of a single materialization attempt.
type StepResult struct {
	StepID    string
	Status    string
	Message   string
	Error     error
	Duration  time.Duration
	Timestamp time.Time
}
