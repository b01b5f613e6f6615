package handler

import (
	"fmt"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
)

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the operation was cancelled.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
//
// Edits and Selections are expressed in the coordinates of the snapshot the
// handler was given. The host applies Edits as one batch and maps Selections
// through the applied batch.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// Edits is the edit batch to apply.
	Edits []buffer.Edit

	// Selections replaces the selection state when non-nil.
	Selections []cursor.Selection

	// Clipboard requests a clipboard write when non-nil.
	Clipboard *string

	// Data holds handler-specific return data.
	Data map[string]interface{}
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// IsNoOp returns true if the action had no effect.
func (r Result) IsNoOp() bool {
	return r.Status == StatusNoOp
}

// HasEdits returns true if the result carries at least one edit.
func (r Result) HasEdits() bool {
	return len(r.Edits) > 0
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// Edited creates a successful result carrying an edit batch.
// An empty batch is a no-op.
func Edited(edits ...buffer.Edit) Result {
	if len(edits) == 0 {
		return NoOp()
	}
	return Result{Status: StatusOK, Edits: edits}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...interface{}) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithEdit returns a copy of the result with an edit added.
func (r Result) WithEdit(edit buffer.Edit) Result {
	r.Edits = append(r.Edits, edit)
	return r
}

// WithEdits returns a copy of the result with edits added.
func (r Result) WithEdits(edits []buffer.Edit) Result {
	r.Edits = append(r.Edits, edits...)
	return r
}

// WithSelections returns a copy of the result with new selections.
func (r Result) WithSelections(sels ...cursor.Selection) Result {
	r.Selections = sels
	return r
}

// WithCursor returns a copy of the result with a single cursor at p.
func (r Result) WithCursor(p buffer.Point) Result {
	return r.WithSelections(cursor.NewCursor(p))
}

// WithClipboard returns a copy of the result requesting a clipboard write.
func (r Result) WithClipboard(text string) Result {
	r.Clipboard = &text
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value interface{}) Result {
	data := make(map[string]interface{}, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (interface{}, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataInt retrieves an int value from the result data.
func (r Result) GetDataInt(key string) int {
	if v, ok := r.GetData(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}
