package models

import "fmt"

// ValidationError indicates a transition request is missing a required field.
// The operation is aborted and the task is left unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a validation error naming the offending field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates a transition targeted an unknown task id
type NotFoundError struct {
	TaskID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.TaskID)
}

// EmptyResultError indicates a report or export request matched zero tasks,
// so no document was produced.
type EmptyResultError struct {
	Context string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no tasks matched for %s", e.Context)
}

// WriteFailure indicates the external store rejected a write. Local views are
// left unchanged; the next feed refresh is authoritative.
type WriteFailure struct {
	TaskID string
	Err    error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("write failed for task %s: %v", e.TaskID, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}
