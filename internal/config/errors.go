package config

import (
	"errors"
	"fmt"

	"github.com/dshills/wonderland/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownFormat indicates a settings file with an unsupported extension.
	ErrUnknownFormat = loader.ErrUnknownFormat

	// ErrValidationFailed indicates a setting holds an unusable value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownSetting indicates a key the settings do not define.
	ErrUnknownSetting = errors.New("unknown setting")
)

// ParseError represents an error while parsing a settings file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
