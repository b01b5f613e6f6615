package editor

import (
	"sort"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/input"
)

// CombinedHandler handles all editor operations by delegating to specialized handlers.
type CombinedHandler struct {
	swap      *SwapHandler
	line      *LineHandler
	clipboard *ClipboardHandler
}

// NewCombinedHandler creates a handler that combines all editor handlers.
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{
		swap:      NewSwapHandler(),
		line:      NewLineHandler(),
		clipboard: NewClipboardHandler(),
	}
}

// Namespace returns the editor namespace.
func (h *CombinedHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.swap.CanHandle(actionName) ||
		h.line.CanHandle(actionName) ||
		h.clipboard.CanHandle(actionName)
}

// Actions returns the action names of all editor handlers, sorted.
func (h *CombinedHandler) Actions() []string {
	var out []string
	out = append(out, h.swap.Actions()...)
	out = append(out, h.line.Actions()...)
	out = append(out, h.clipboard.Actions()...)
	sort.Strings(out)
	return out
}

// HandleAction processes an editor action by delegating to the appropriate handler.
func (h *CombinedHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if h.swap.CanHandle(action.Name) {
		return h.swap.HandleAction(action, ctx)
	}
	if h.line.CanHandle(action.Name) {
		return h.line.HandleAction(action, ctx)
	}
	if h.clipboard.CanHandle(action.Name) {
		return h.clipboard.HandleAction(action, ctx)
	}

	return handler.Errorf("unknown editor action: %s", action.Name)
}
