package refactor

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/rewrite"
)

// ifToSingle joins an if header and the statement on the next line into a
// short circuit expression.
func (h *Handler) ifToSingle(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	n := ctx.Primary().Start().Line
	if !scriptAt(ctx, n) || n+1 >= snap.LineCount() {
		return handler.NoOp()
	}

	out, ok := rewrite.IfToSingle(snap.LineText(n), snap.LineText(n+1))
	if !ok {
		return handler.NoOp()
	}
	r := buffer.NewRange(buffer.Point{Line: n}, snap.LineAt(n+1).End())
	return handler.Edited(buffer.NewReplace(r, out))
}

// ifToBlock wraps the body of an if statement in braces. The body either
// follows the condition on the same line or sits alone on the line below a
// control statement header.
func (h *Handler) ifToBlock(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	n := ctx.Primary().Active.Line
	if !scriptAt(ctx, n) {
		return handler.NoOp()
	}

	line := snap.LineAt(n)
	if out, ok := rewrite.IfToBlock(line.Text, ctx.Settings.Tab(), ctx.EOL()); ok {
		return handler.Edited(buffer.NewReplace(line.Range, out))
	}

	if n == 0 || line.IsBlank() {
		return handler.NoOp()
	}
	header := snap.LineAt(n - 1)
	if !rewrite.IsBlockHeader(header.Text) {
		return handler.NoOp()
	}
	return handler.Edited(
		buffer.NewInsert(header.End(), " {"),
		buffer.NewInsert(line.End(), ctx.EOL()+header.Indent+"}"),
	)
}

// multipleAssignment merges the selected assignment lines into one
// destructuring assignment.
func (h *Handler) multipleAssignment(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	start, end := cursor.Lines(ctx.Primary())
	if start == end || !scriptAt(ctx, start) {
		return handler.NoOp()
	}

	lines := snap.Lines(start, end)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	out, ok := rewrite.MultipleAssignment(texts)
	if !ok {
		return handler.NoOp()
	}
	r := buffer.NewRange(lines[0].Range.Start, lines[len(lines)-1].End())
	return handler.Edited(buffer.NewReplace(r, lines[0].Indent+out))
}

// stringRaw rewrites the first string literal of the cursor line as a
// String.raw template literal.
func (h *Handler) stringRaw(ctx *execctx.ExecutionContext) handler.Result {
	n := ctx.Primary().Active.Line
	if !scriptAt(ctx, n) {
		return handler.NoOp()
	}
	res := replaceLine(ctx.Snapshot, n, rewrite.StringRaw)
	if res.HasEdits() {
		res = res.WithCursor(buffer.Point{Line: n})
	}
	return res
}
