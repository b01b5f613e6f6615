package comment

import (
	"strings"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/rewrite"
)

// Action names for comment operations.
const (
	ActionToggle    = "comment.toggle"
	ActionDuplicate = "comment.duplicate"
	ActionRemove    = "comment.remove"
)

// Handler handles comment operations.
type Handler struct{}

// NewHandler creates a new comment handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the comment namespace.
func (h *Handler) Namespace() string {
	return "comment"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionToggle, ActionDuplicate, ActionRemove:
		return true
	}
	return false
}

// Actions returns the action names this handler processes.
func (h *Handler) Actions() []string {
	return []string{ActionToggle, ActionDuplicate, ActionRemove}
}

// HandleAction processes a comment action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if ctx.Strategy == nil {
		return handler.NoOpWithMessage("unsupported language: " + ctx.LanguageID)
	}

	switch action.Name {
	case ActionToggle:
		return h.toggle(ctx)
	case ActionDuplicate:
		return h.duplicate(ctx)
	case ActionRemove:
		return h.remove(ctx)
	default:
		return handler.Errorf("unknown comment action: %s", action.Name)
	}
}

// toggle comments or uncomments the lines of the primary selection.
func (h *Handler) toggle(ctx *execctx.ExecutionContext) handler.Result {
	snap := ctx.Snapshot
	start, end := cursor.Lines(ctx.Primary())
	p := ctx.EffectiveStrategy(start).Profile()
	lines := snap.Lines(start, end)

	if p.Markup || p.LineComment == "" {
		return toggleBlock(snap, lines, p)
	}

	first, ok := firstNonBlank(lines)
	if !ok {
		return handler.NoOp()
	}

	uncomment := rewrite.IsLineCommented(first.Text, p.LineComment)
	var edits []buffer.Edit
	for _, line := range lines {
		var (
			text    string
			matched bool
		)
		if uncomment {
			text, matched = rewrite.UncommentLine(line.Text, p.LineComment)
		} else {
			text, matched = rewrite.CommentLine(line.Text, p.LineComment)
		}
		if matched {
			edits = append(edits, buffer.NewReplace(line.Range, text))
		}
	}
	return handler.Edited(edits...)
}

// toggleBlock wraps or unwraps the joined content of lines in the
// language's block comment.
func toggleBlock(snap *buffer.Snapshot, lines []buffer.Line, p lang.Profile) handler.Result {
	if p.Block == nil {
		return handler.NoOp()
	}
	first, ok := firstNonBlank(lines)
	if !ok {
		return handler.NoOp()
	}

	r := buffer.NewRange(lines[0].Range.Start, lines[len(lines)-1].Range.End)
	text := snap.TextRange(r)

	var (
		out     string
		matched bool
	)
	if strings.HasPrefix(first.Trimmed, p.Block.Open) {
		out, matched = rewrite.UnwrapBlock(text, p.Block.Open, p.Block.Close)
	} else {
		out, matched = rewrite.WrapBlock(text, p.Block.Open, p.Block.Close)
	}
	if !matched {
		return handler.NoOp()
	}
	return handler.Edited(buffer.NewReplace(r, out))
}

// duplicate inserts a commented copy of the selected lines above them.
func (h *Handler) duplicate(ctx *execctx.ExecutionContext) handler.Result {
	if len(ctx.Selections) != 1 {
		return handler.NoOp()
	}
	snap := ctx.Snapshot
	eol := ctx.EOL()
	start, end := cursor.Lines(ctx.Primary())
	p := ctx.EffectiveStrategy(start).Profile()
	lines := snap.Lines(start, end)
	at := buffer.Point{Line: start}

	if _, ok := firstNonBlank(lines); !ok {
		return handler.NoOp()
	}

	if p.Markup || p.LineComment == "" {
		if p.Block == nil {
			return handler.NoOp()
		}
		texts := make([]string, len(lines))
		for i, line := range lines {
			texts[i] = line.Text
		}
		wrapped, ok := rewrite.WrapBlock(strings.Join(texts, eol), p.Block.Open, p.Block.Close)
		if !ok {
			return handler.NoOp()
		}
		return handler.Edited(buffer.NewInsert(at, wrapped+eol))
	}

	var b strings.Builder
	for _, line := range lines {
		if text, ok := rewrite.CommentLine(line.Text, p.LineComment); ok {
			b.WriteString(text)
		} else {
			b.WriteString(line.Text)
		}
		b.WriteString(eol)
	}
	return handler.Edited(buffer.NewInsert(at, b.String()))
}

// remove deletes the comments between two cursors or inside a selection.
func (h *Handler) remove(ctx *execctx.ExecutionContext) handler.Result {
	start, end, ok := cursor.LineSpan(ctx.Selections)
	if !ok {
		return handler.NoOp()
	}
	ranges := ctx.EffectiveStrategy(start).RemoveComments(ctx.Snapshot, start, end, ctx.Settings.PreserveMarker)
	edits := make([]buffer.Edit, len(ranges))
	for i, r := range ranges {
		edits[i] = buffer.NewDelete(r)
	}
	return handler.Edited(edits...).WithData("removed", len(ranges))
}

func firstNonBlank(lines []buffer.Line) (buffer.Line, bool) {
	for _, line := range lines {
		if !line.IsBlank() {
			return line, true
		}
	}
	return buffer.Line{}, false
}
