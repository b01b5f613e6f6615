package refactor

import (
	"strings"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/rewrite"
)

// extractVariable binds the selected expression to a variable.
//
// With two selections the empty one marks the declaration line and the
// other one the expression. A single one-line selection declares the
// variable on the line above it.
func (h *Handler) extractVariable(ctx *execctx.ExecutionContext) handler.Result {
	switch len(ctx.Selections) {
	case 1:
		src := ctx.Selections[0]
		if src.IsEmpty() || !src.IsSingleLine() || src.Start().Line == 0 {
			return handler.NoOp()
		}
		return extractToLine(ctx, src.Start().Line-1, src)

	case 2:
		pair, ok := cursor.ClassifySelections(ctx.Selections)
		if !ok {
			return handler.NoOp()
		}
		p := pair.Insertion.Active
		s := ctx.EffectiveStrategy(p.Line)
		switch {
		case s.Kind() == lang.KindShell:
			return extractShell(ctx.Snapshot, p, pair.Source)
		case s.Language() == lang.Go && !pair.Source.IsSingleLine():
			return extractStruct(ctx, p.Line, pair.Source)
		}
		return extractToLine(ctx, p.Line, pair.Source)
	}
	return handler.NoOp()
}

// extractToLine rewrites target into a declaration of the source
// expression and replaces the expression with the variable name.
func extractToLine(ctx *execctx.ExecutionContext, target int, src cursor.Selection) handler.Result {
	if spansLine(src.Start().Line, src.End().Line, target) {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	line := snap.LineAt(target)
	decl := ctx.EffectiveStrategy(target).Profile().Declaration()

	newLine, name, ok := rewrite.ExtractDeclaration(line.Text, src.Text(snap), decl)
	if !ok {
		return handler.NoOp()
	}
	return handler.Edited(
		buffer.NewReplace(line.Range, newLine),
		buffer.NewReplace(src.Range(), name),
	).WithData("name", name)
}

// extractShell inserts the expression at a "name=" assignment and
// replaces the expression with the bare variable name.
func extractShell(snap *buffer.Snapshot, p buffer.Point, src cursor.Selection) handler.Result {
	if src.Start().Before(p) && p.Before(src.End()) {
		return handler.NoOp()
	}
	text := snap.LineText(p.Line)
	col := p.Column
	if col > len(text) {
		col = len(text)
	}

	name, ok := rewrite.ShellAssignmentName(text[:col])
	if !ok {
		return handler.NoOp()
	}
	expr := strings.TrimSpace(src.Text(snap))
	if expr == "" {
		return handler.NoOp()
	}
	if rewrite.ShellTerminate(text[col:]) {
		expr += ";"
	}
	return handler.Edited(
		buffer.NewInsert(buffer.Point{Line: p.Line, Column: col}, expr),
		buffer.NewReplace(src.Range(), name),
	).WithData("name", name)
}

// extractStruct moves a block of Go fields into a named struct type
// declared on line target and leaves a pointer field in their place.
func extractStruct(ctx *execctx.ExecutionContext, target int, src cursor.Selection) handler.Result {
	if spansLine(src.Start().Line, src.End().Line, target) {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	line := snap.LineAt(target)
	name := line.Trimmed

	decl, ok := rewrite.GoStructFromBlock(name, src.Text(snap), ctx.EOL())
	if !ok {
		return handler.NoOp()
	}
	indent := snap.LineAt(src.Start().Line + 1).Indent
	return handler.Edited(
		buffer.NewReplace(line.Range, line.Indent+decl),
		buffer.NewReplace(src.Range(), rewrite.GoStructField(indent, name)),
	).WithData("name", name)
}
