package refactor

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/rewrite"
)

// delegate binds a C# static method to an Action or Func variable.
// One of two cursors sits on the method declaration, the other on the
// line that becomes the variable.
func (h *Handler) delegate(ctx *execctx.ExecutionContext) handler.Result {
	if len(ctx.Selections) != 2 || ctx.Language() != lang.CSharp {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	a := snap.LineAt(ctx.Selections[0].Active.Line)
	b := snap.LineAt(ctx.Selections[1].Active.Line)

	var target, method buffer.Line
	switch sa, sb := rewrite.IsStaticMethod(a.Text), rewrite.IsStaticMethod(b.Text); {
	case sa && !sb:
		method, target = a, b
	case sb && !sa:
		method, target = b, a
	default:
		return handler.NoOp()
	}

	out, ok := rewrite.CSharpDelegate(target.Text, method.Text)
	if !ok {
		return handler.NoOp()
	}
	return handler.Edited(buffer.NewReplace(target.Range, out))
}

// arrowFunction shortens a function body.
//
// In C# a one-line == operator gains its != counterpart and a block body
// collapses into an expression body. In scripts a function returning a
// value becomes an arrow function.
func (h *Handler) arrowFunction(ctx *execctx.ExecutionContext) handler.Result {
	sel := ctx.Primary()
	switch l := languageAt(ctx, sel.Start().Line); {
	case l == lang.CSharp:
		return arrowCSharp(ctx, sel)
	case l.IsScript():
		return arrowScript(ctx.Snapshot, sel)
	}
	return handler.NoOp()
}

func arrowCSharp(ctx *execctx.ExecutionContext, sel cursor.Selection) handler.Result {
	snap := ctx.Snapshot
	eol := ctx.EOL()
	start := sel.Start().Line

	if sel.IsSingleLine() {
		out, ok := rewrite.CSharpNotEqualsOperator(snap.LineText(start))
		if !ok {
			return handler.NoOp()
		}
		return handler.Edited(buffer.NewInsert(buffer.Point{Line: start}, out+eol+eol))
	}

	if start == 0 {
		return handler.NoOp()
	}
	first, last := cursor.Lines(sel)
	lines := snap.Lines(first, last)
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	body, ok := rewrite.CSharpExpressionBody(texts)
	if !ok {
		return handler.NoOp()
	}

	end := sel.End()
	if end.Column == 0 {
		end = lines[len(lines)-1].End()
	}
	signature := snap.LineAt(start - 1)
	return handler.Edited(buffer.NewReplace(buffer.NewRange(signature.End(), end), body))
}

func arrowScript(snap *buffer.Snapshot, sel cursor.Selection) handler.Result {
	r := sel.Range()
	if sel.IsEmpty() {
		r = snap.LineAt(sel.Active.Line).Range
	}
	text := snap.TextRange(r)

	if out, ok := rewrite.ArrowFunctionJS(text); ok {
		return handler.Edited(buffer.NewReplace(r, out))
	}
	if out, ok := rewrite.ReturnBodyJS(text); ok {
		return handler.Edited(buffer.NewReplace(r, out))
	}
	return handler.NoOp()
}

// blockBody expands a C# expression body into a block body. A selected
// tuple assignment expands into one assignment per element.
func (h *Handler) blockBody(ctx *execctx.ExecutionContext) handler.Result {
	sel := ctx.Primary()
	if languageAt(ctx, sel.Active.Line) != lang.CSharp {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	tab, eol := ctx.Settings.Tab(), ctx.EOL()

	if !sel.IsEmpty() {
		if out, ok := rewrite.CSharpTupleBlock(sel.Text(snap), tab, eol); ok {
			return handler.Edited(buffer.NewReplace(sel.Range(), out))
		}
	}

	line := snap.LineAt(sel.Active.Line)
	out, ok := rewrite.CSharpBlockBody(line.Text, tab, eol)
	if !ok {
		return handler.NoOp()
	}
	return handler.Edited(buffer.NewReplace(line.Range, out))
}

// functionDeclaration turns a function expression bound to a variable into
// a function declaration.
func (h *Handler) functionDeclaration(ctx *execctx.ExecutionContext) handler.Result {
	n := ctx.Primary().Start().Line
	if !scriptAt(ctx, n) {
		return handler.NoOp()
	}
	return replaceLine(ctx.Snapshot, n, rewrite.FunctionDeclaration)
}

// convertTypeInterface switches a TypeScript declaration between a type
// alias and an interface. Script regions of Vue documents count as
// TypeScript.
func (h *Handler) convertTypeInterface(ctx *execctx.ExecutionContext) handler.Result {
	n := ctx.Primary().Active.Line
	l := languageAt(ctx, n)
	if !l.IsTypeScript() && !(ctx.Language() == lang.Vue && l.IsScript()) {
		return handler.NoOp()
	}
	return replaceLine(ctx.Snapshot, n, rewrite.ConvertTypeInterface)
}

// replaceLine replaces the content of line n with the output of fn.
func replaceLine(snap *buffer.Snapshot, n int, fn func(string) (string, bool)) handler.Result {
	line := snap.LineAt(n)
	out, ok := fn(line.Text)
	if !ok {
		return handler.NoOp()
	}
	return handler.Edited(buffer.NewReplace(line.Range, out))
}
