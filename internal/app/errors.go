package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownLanguage indicates a document language without a strategy.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrScratchDocument indicates a save of a document without a path.
	ErrScratchDocument = errors.New("document has no path")

	// ErrClosed indicates use of a closed application.
	ErrClosed = errors.New("application closed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "execute", "open", "save")
	Target string // Target of the operation (e.g., command name, file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
