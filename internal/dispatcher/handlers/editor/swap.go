package editor

import (
	"strings"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/rewrite"
)

// ActionSwap is the swap/copy/relocate/erase gesture.
const ActionSwap = "editor.swap"

// SwapHandler handles the swap gesture.
type SwapHandler struct{}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler() *SwapHandler {
	return &SwapHandler{}
}

// Namespace returns the editor namespace.
func (h *SwapHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *SwapHandler) CanHandle(actionName string) bool {
	return actionName == ActionSwap
}

// Actions returns the action names this handler processes.
func (h *SwapHandler) Actions() []string {
	return []string{ActionSwap}
}

// HandleAction processes a swap action.
func (h *SwapHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if action.Name != ActionSwap {
		return handler.Errorf("unknown swap action: %s", action.Name)
	}

	snap := ctx.Snapshot
	sels := ctx.Selections
	switch len(sels) {
	case 1:
		return eraseLine(snap, sels[0].Active.Line)
	case 2:
	default:
		return handler.NoOp()
	}

	a, b := sels[0], sels[1]
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return swapLines(snap, a.Active, b.Active)
	case !a.IsEmpty() && !b.IsEmpty():
		return swapSelections(snap, a, b)
	}
	pair, _ := cursor.ClassifyPair(a, b)
	return copyToCursor(snap, pair)
}

// eraseLine clears line n but keeps its indentation. The cursor goes to
// the end of the kept indentation.
func eraseLine(snap *buffer.Snapshot, n int) handler.Result {
	line := snap.LineAt(n)
	out, ok := rewrite.EraseKeepIndent(line.Text)
	if !ok {
		return handler.NoOp()
	}
	return handler.Edited(buffer.NewReplace(line.Range, out)).
		WithCursor(buffer.Point{Line: n, Column: len(out)})
}

// swapSelections exchanges the text of two selections.
func swapSelections(snap *buffer.Snapshot, a, b cursor.Selection) handler.Result {
	if a.Range().Overlaps(b.Range()) {
		return handler.NoOp()
	}
	ta, tb := a.Text(snap), b.Text(snap)
	return handler.Edited(
		buffer.NewReplace(a.Range(), tb),
		buffer.NewReplace(b.Range(), ta),
	).WithCursor(b.End())
}

// copyToCursor inserts the source text at the empty selection. One-line
// text is also written to the clipboard, trimmed.
func copyToCursor(snap *buffer.Snapshot, pair cursor.Pair) handler.Result {
	p := pair.Insertion.Active
	src := pair.Source
	if src.Start().Before(p) && p.Before(src.End()) {
		return handler.NoOp()
	}

	text := src.Text(snap)
	res := handler.Edited(buffer.NewInsert(p, text)).WithCursor(p)
	if src.IsSingleLine() {
		res = res.WithClipboard(strings.TrimSpace(text))
	}
	return res
}

// lineRole classifies a cursor's line for the two-cursor line gesture.
type lineRole uint8

const (
	roleNone   lineRole = iota // cursor inside the line content
	roleDelete                 // blank line
	roleBefore                 // cursor before the content: insert above
	roleAfter                  // cursor after the content: insert below
)

// classify applies the line roles in a fixed order: blank first, then
// leading cursor, then trailing cursor.
func classify(line buffer.Line, col int) lineRole {
	switch {
	case line.IsBlank():
		return roleDelete
	case col <= line.FirstNonWhitespace():
		return roleBefore
	case col >= line.ContentEnd():
		return roleAfter
	}
	return roleNone
}

// swapLines handles two empty cursors. A blank line paired with a line
// whose cursor sits before or after its content is relocated next to that
// line; every other pairing swaps the lines' text.
func swapLines(snap *buffer.Snapshot, pa, pb buffer.Point) handler.Result {
	if pa.Line == pb.Line {
		return eraseLine(snap, pa.Line)
	}

	la, lb := snap.LineAt(pa.Line), snap.LineAt(pb.Line)
	ra, rb := classify(la, pa.Column), classify(lb, pb.Column)
	switch {
	case ra == roleDelete && (rb == roleBefore || rb == roleAfter):
		return relocate(snap, la, lb, rb)
	case rb == roleDelete && (ra == roleBefore || ra == roleAfter):
		return relocate(snap, lb, la, ra)
	}

	pos := pa
	if !la.IsBlank() && lb.IsBlank() {
		pos = pb
	}
	return handler.Edited(
		buffer.NewReplace(la.Range, lb.Text),
		buffer.NewReplace(lb.Range, la.Text),
	).WithCursor(pos)
}

// relocate moves line from next to target: above it for roleBefore, below
// it for roleAfter.
func relocate(snap *buffer.Snapshot, from, target buffer.Line, role lineRole) handler.Result {
	eol := snap.EOL()

	remove := from.RangeIncludingLineBreak
	if from.Index == snap.LineCount()-1 {
		remove = buffer.NewRange(snap.LineAt(from.Index-1).End(), from.End())
	}

	var insert buffer.Edit
	if role == roleBefore {
		insert = buffer.NewInsert(buffer.Point{Line: target.Index}, from.Text+eol)
	} else {
		insert = buffer.NewInsert(target.End(), eol+from.Text)
	}
	return handler.Edited(buffer.NewDelete(remove), insert).
		WithCursor(target.Range.Start).
		WithData("relocated", from.Index)
}
