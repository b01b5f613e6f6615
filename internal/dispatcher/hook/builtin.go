package hook

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/input"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // Runs first (pre) / last (post)
	PriorityValidation = 800  // Validate before processing
)

// Logger is the interface for logging hooks.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AuditHook logs every dispatched command.
type AuditHook struct {
	logger Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the command being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch start",
			"action", action.Name,
			"id", action.ID,
			"language", ctx.LanguageID,
			"selections", len(ctx.Selections),
		)
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.logger == nil {
		return
	}
	if result.Status == handler.StatusError {
		h.logger.Error("dispatch failed",
			"action", action.Name,
			"id", action.ID,
			"error", result.Error,
		)
		return
	}
	h.logger.Debug("dispatch complete",
		"action", action.Name,
		"id", action.ID,
		"status", result.Status.String(),
		"edits", len(result.Edits),
	)
}

// ValidationHook cancels commands whose execution context cannot be edited.
type ValidationHook struct {
	// Exempt lists actions that run without a snapshot or selections.
	Exempt map[string]bool
}

// NewValidationHook creates a validation hook.
func NewValidationHook(exempt ...string) *ValidationHook {
	h := &ValidationHook{Exempt: make(map[string]bool, len(exempt))}
	for _, name := range exempt {
		h.Exempt[name] = true
	}
	return h
}

// Name implements Hook.
func (h *ValidationHook) Name() string { return "validation" }

// Priority implements Hook.
func (h *ValidationHook) Priority() int { return PriorityValidation }

// PreDispatch rejects commands without a snapshot, without selections or
// against a read-only buffer.
func (h *ValidationHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.Exempt[action.Name] {
		return true
	}
	return ctx.ValidateForEdit() == nil
}
