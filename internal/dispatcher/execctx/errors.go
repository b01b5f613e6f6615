package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingSnapshot indicates the buffer snapshot is required but not set.
	ErrMissingSnapshot = errors.New("execution context: snapshot is required")

	// ErrMissingSelections indicates at least one selection is required.
	ErrMissingSelections = errors.New("execution context: selections are required")

	// ErrMissingStrategy indicates the command needs a language strategy.
	ErrMissingStrategy = errors.New("execution context: language strategy is required")

	// ErrMissingClipboard indicates the command reads the clipboard but none is set.
	ErrMissingClipboard = errors.New("execution context: clipboard is required")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")
)
