package plugin

import (
	"errors"
)

// StepError is the base interface for all step plugin errors. It provides
// structured error information the controller uses to decide how to handle
// a failure.
type StepError interface {
	error
	StepID() string
	Unwrap() error
}

// ValidationError represents configuration validation failures: a step was
// handed config values it cannot work with.
type ValidationError struct {
	ID  string
	Err error
}

// NewValidationError creates a new ValidationError.
func NewValidationError(stepID string, err error) *ValidationError {
	return &ValidationError{
		ID:  stepID,
		Err: err,
	}
}

// Error returns a formatted error message including the step ID.
func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "validation error in step " + e.ID
	}
	return "validation error in step " + e.ID + ": " + e.Err.Error()
}

// StepID returns the identifier of the step where the error occurred.
func (e *ValidationError) StepID() string {
	return e.ID
}

// Unwrap returns the underlying validation error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is checks if this error matches another ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ExecutionError represents external operation failures during
// materialization: shell command failures, file I/O errors, or external
// tool errors.
type ExecutionError struct {
	ID  string
	Err error
}

// NewExecutionError creates a new ExecutionError.
func NewExecutionError(stepID string, err error) *ExecutionError {
	return &ExecutionError{
		ID:  stepID,
		Err: err,
	}
}

// Error returns a formatted error message including the step ID.
func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return "execution error in step " + e.ID
	}
	return "execution error in step " + e.ID + ": " + e.Err.Error()
}

// StepID returns the identifier of the step where the error occurred.
func (e *ExecutionError) StepID() string {
	return e.ID
}

// Unwrap returns the underlying execution error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is checks if this error matches another ExecutionError.
func (e *ExecutionError) Is(target error) bool {
	_, ok := target.(*ExecutionError)
	return ok
}

// StateError represents inability to determine the current resource state:
// the probe itself failed, as opposed to reporting the resource absent.
type StateError struct {
	ID  string
	Err error
}

// NewStateError creates a new StateError.
func NewStateError(stepID string, err error) *StateError {
	return &StateError{
		ID:  stepID,
		Err: err,
	}
}

// Error returns a formatted error message including the step ID.
func (e *StateError) Error() string {
	if e.Err == nil {
		return "state error in step " + e.ID
	}
	return "state error in step " + e.ID + ": " + e.Err.Error()
}

// StepID returns the identifier of the step where the error occurred.
func (e *StateError) StepID() string {
	return e.ID
}

// Unwrap returns the underlying state detection error.
func (e *StateError) Unwrap() error {
	return e.Err
}

// Is checks if this error matches another StateError.
func (e *StateError) Is(target error) bool {
	_, ok := target.(*StateError)
	return ok
}

// DeclinedError means the operator refused a confirmation the step
// requires before it may mutate the system. The controller aborts the run
// immediately: no retry prompt is offered because re-running cannot
// succeed without the operator changing their answer.
type DeclinedError struct {
	ID     string
	Prompt string
}

// NewDeclinedError creates a new DeclinedError.
func NewDeclinedError(stepID, prompt string) *DeclinedError {
	return &DeclinedError{
		ID:     stepID,
		Prompt: prompt,
	}
}

// Error returns a formatted error message including the step ID.
func (e *DeclinedError) Error() string {
	if e.Prompt == "" {
		return "operator declined confirmation in step " + e.ID
	}
	return "operator declined confirmation in step " + e.ID + ": " + e.Prompt
}

// StepID returns the identifier of the step where the error occurred.
func (e *DeclinedError) StepID() string {
	return e.ID
}

// Unwrap returns nil: a declined confirmation has no underlying cause.
func (e *DeclinedError) Unwrap() error {
	return nil
}

// Is checks if this error matches another DeclinedError.
func (e *DeclinedError) Is(target error) bool {
	_, ok := target.(*DeclinedError)
	return ok
}

// AsStepError attempts to convert any error to a StepError. The controller
// uses this to categorize failures before prompting.
func AsStepError(err error) (StepError, bool) {
	var stepErr StepError
	if errors.As(err, &stepErr) {
		return stepErr, true
	}
	return nil, false
}
