package editor

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/rewrite"
)

// ActionPackageReference inserts a PackageReference element built from the
// clipboard.
const ActionPackageReference = "editor.packageReference"

// ClipboardHandler handles operations that read the host clipboard.
type ClipboardHandler struct{}

// NewClipboardHandler creates a new clipboard handler.
func NewClipboardHandler() *ClipboardHandler {
	return &ClipboardHandler{}
}

// Namespace returns the editor namespace.
func (h *ClipboardHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *ClipboardHandler) CanHandle(actionName string) bool {
	return actionName == ActionPackageReference
}

// Actions returns the action names this handler processes.
func (h *ClipboardHandler) Actions() []string {
	return []string{ActionPackageReference}
}

// HandleAction processes a clipboard action.
func (h *ClipboardHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if action.Name != ActionPackageReference {
		return handler.Errorf("unknown clipboard action: %s", action.Name)
	}
	return h.packageReference(ctx)
}

// packageReference reads a "dotnet add package" command from the clipboard
// and inserts the matching element on a new line below the cursor, indented
// like the cursor line.
func (h *ClipboardHandler) packageReference(ctx *execctx.ExecutionContext) handler.Result {
	text, err := ctx.ReadClipboard()
	if err != nil {
		return handler.Error(err)
	}
	elem, ok := rewrite.PackageReference(text)
	if !ok {
		return handler.NoOpWithMessage("clipboard does not hold a dotnet add package command")
	}
	line := ctx.Snapshot.LineAt(ctx.Primary().Active.Line)
	return handler.Edited(buffer.NewInsert(line.End(), ctx.EOL()+line.Indent+elem))
}
