package editor

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/rewrite"
)

// Action names for line operations.
const (
	ActionLineEnd          = "editor.lineEnd"
	ActionInsertSemicolon  = "editor.insertSemicolon"
	ActionMoveImportToTop  = "editor.moveImportToTop"
	ActionRemoveEmptyLines = "editor.removeEmptyLines"
)

// LineHandler handles line operations.
type LineHandler struct{}

// NewLineHandler creates a new line handler.
func NewLineHandler() *LineHandler {
	return &LineHandler{}
}

// Namespace returns the editor namespace.
func (h *LineHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *LineHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLineEnd, ActionInsertSemicolon, ActionMoveImportToTop, ActionRemoveEmptyLines:
		return true
	}
	return false
}

// Actions returns the action names this handler processes.
func (h *LineHandler) Actions() []string {
	return []string{ActionLineEnd, ActionInsertSemicolon, ActionMoveImportToTop, ActionRemoveEmptyLines}
}

// HandleAction processes a line action.
func (h *LineHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if action.Name == ActionLineEnd {
		if err := ctx.Validate(); err != nil {
			return handler.Error(err)
		}
		return h.lineEnd(ctx)
	}

	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionInsertSemicolon:
		return h.insertSemicolon(ctx)
	case ActionMoveImportToTop:
		return h.moveImportToTop(ctx)
	case ActionRemoveEmptyLines:
		return h.removeEmptyLines(ctx)
	default:
		return handler.Errorf("unknown line action: %s", action.Name)
	}
}

// lineEnd moves the cursor to the end of its line.
func (h *LineHandler) lineEnd(ctx *execctx.ExecutionContext) handler.Result {
	active := ctx.Primary().Active
	end := ctx.Snapshot.LineAt(active.Line).End()
	if active == end {
		return handler.NoOp()
	}
	return handler.Success().WithCursor(end)
}

// insertSemicolon terminates lines with ";". A single cursor on a line
// that already ends with ";" moves in front of it instead.
func (h *LineHandler) insertSemicolon(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	sels := ctx.Selections

	if len(sels) == 1 && sels[0].IsSingleLine() {
		line := snap.LineAt(sels[0].Active.Line)
		if strings.HasSuffix(line.Trimmed, ";") {
			return handler.Success().WithCursor(buffer.Point{Line: line.Index, Column: line.ContentEnd() - 1})
		}
	}

	seen := make(map[int]bool)
	var lines []int
	for _, s := range sels {
		start, end := s.Start().Line, s.Start().Line
		if !s.IsSingleLine() {
			start, end = cursor.Lines(s)
		}
		for n := start; n <= end; n++ {
			if !seen[n] {
				seen[n] = true
				lines = append(lines, n)
			}
		}
	}
	sort.Ints(lines)

	var edits []buffer.Edit
	for _, n := range lines {
		line := snap.LineAt(n)
		if out, ok := rewrite.InsertSemicolon(line.Text); ok {
			edits = append(edits, buffer.NewReplace(line.Range, out))
		}
	}
	return handler.Edited(edits...)
}

// moveImportToTop moves the import statement under the cursor to the first
// line of a script.
func (h *LineHandler) moveImportToTop(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	n := ctx.Primary().Active.Line
	if n == 0 || ctx.Strategy == nil || !ctx.EffectiveStrategy(n).Language().IsScript() {
		return handler.NoOp()
	}
	line := snap.LineAt(n)
	if !rewrite.IsImport(line.Text) {
		return handler.NoOp()
	}

	remove := line.RangeIncludingLineBreak
	if n == snap.LineCount()-1 {
		remove = buffer.NewRange(snap.LineAt(n-1).End(), line.End())
	}
	text := strings.TrimLeftFunc(line.Text, unicode.IsSpace)
	return handler.Edited(
		buffer.NewInsert(buffer.Point{}, text+ctx.EOL()),
		buffer.NewDelete(remove),
	).WithCursor(buffer.Point{})
}

// removeEmptyLines deletes blank lines of a C# document, or of the selected
// lines. The last line of the document is kept.
func (h *LineHandler) removeEmptyLines(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Language() != lang.CSharp {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	start, end := 0, snap.LineCount()-1
	if sel := ctx.Primary(); !sel.IsSingleLine() {
		start, end = cursor.Lines(sel)
	}
	if end > snap.LineCount()-2 {
		end = snap.LineCount() - 2
	}
	if end < start {
		return handler.NoOp()
	}

	var edits []buffer.Edit
	for _, line := range snap.Lines(start, end) {
		if line.IsBlank() {
			edits = append(edits, buffer.NewDelete(line.RangeIncludingLineBreak))
		}
	}
	return handler.Edited(edits...).WithData("removed", len(edits))
}
