package lua

import "errors"

// Errors for Lua state and plugin operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoRewrite is returned for plugin files without a rewrite function.
	ErrNoRewrite = errors.New("plugin defines no rewrite function")

	// ErrBadReturn is returned when rewrite returns an unsupported value.
	ErrBadReturn = errors.New("rewrite must return a string, a list of strings or nil")

	// ErrInvalidName is returned for plugin files whose name cannot be a command.
	ErrInvalidName = errors.New("invalid plugin name")

	// ErrDuplicate is returned when two plugins share a name.
	ErrDuplicate = errors.New("duplicate plugin")
)
