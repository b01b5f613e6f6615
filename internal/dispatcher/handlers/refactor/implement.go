package refactor

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/rewrite"
)

// implementInterface generates empty Go methods.
//
// The non-empty selection lists method signatures, one per line, and the
// empty one sits on a line declaring a method of the receiver. The stubs
// go to the first blank line after the signatures, or to the end of the
// document.
func (h *Handler) implementInterface(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Language() != lang.Go {
		return handler.NoOp()
	}
	pair, ok := cursor.ClassifySelections(ctx.Selections)
	if !ok {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	eol := ctx.EOL()

	methods := rewrite.SplitLines(pair.Source.Text(snap))
	stubs, ok := rewrite.GoMethodStubs(snap.LineText(pair.Insertion.Active.Line), methods, eol)
	if !ok {
		return handler.NoOp()
	}

	at := snap.EndPoint()
	for i := pair.Source.End().Line + 1; i < snap.LineCount(); i++ {
		if snap.LineAt(i).IsBlank() {
			at = buffer.Point{Line: i}
			break
		}
	}
	return handler.Edited(buffer.NewInsert(at, eol+stubs+eol))
}
