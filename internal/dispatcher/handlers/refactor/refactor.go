package refactor

import (
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/lang"
)

// Action names for refactor operations.
const (
	ActionExtractVariable    = "refactor.extractVariable"
	ActionDelegate           = "refactor.delegate"
	ActionArrowFunction      = "refactor.arrowFunction"
	ActionBlockBody          = "refactor.blockBody"
	ActionFunctionDecl       = "refactor.functionDeclaration"
	ActionTypeInterface      = "refactor.convertTypeInterface"
	ActionIfToSingle         = "refactor.ifToSingle"
	ActionIfToBlock          = "refactor.ifToBlock"
	ActionMultipleAssignment = "refactor.multipleAssignment"
	ActionStringRaw          = "refactor.stringRaw"
	ActionImplementInterface = "refactor.implementInterface"
)

var actions = []string{
	ActionExtractVariable,
	ActionDelegate,
	ActionArrowFunction,
	ActionBlockBody,
	ActionFunctionDecl,
	ActionTypeInterface,
	ActionIfToSingle,
	ActionIfToBlock,
	ActionMultipleAssignment,
	ActionStringRaw,
	ActionImplementInterface,
}

// Handler handles refactor operations.
type Handler struct{}

// NewHandler creates a new refactor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the refactor namespace.
func (h *Handler) Namespace() string {
	return "refactor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionExtractVariable, ActionDelegate, ActionArrowFunction,
		ActionBlockBody, ActionFunctionDecl, ActionTypeInterface,
		ActionIfToSingle, ActionIfToBlock, ActionMultipleAssignment,
		ActionStringRaw, ActionImplementInterface:
		return true
	}
	return false
}

// Actions returns the action names this handler processes.
func (h *Handler) Actions() []string {
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// HandleAction processes a refactor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if ctx.Strategy == nil {
		return handler.NoOpWithMessage("unsupported language: " + ctx.LanguageID)
	}

	switch action.Name {
	case ActionExtractVariable:
		return h.extractVariable(ctx)
	case ActionDelegate:
		return h.delegate(ctx)
	case ActionArrowFunction:
		return h.arrowFunction(ctx)
	case ActionBlockBody:
		return h.blockBody(ctx)
	case ActionFunctionDecl:
		return h.functionDeclaration(ctx)
	case ActionTypeInterface:
		return h.convertTypeInterface(ctx)
	case ActionIfToSingle:
		return h.ifToSingle(ctx)
	case ActionIfToBlock:
		return h.ifToBlock(ctx)
	case ActionMultipleAssignment:
		return h.multipleAssignment(ctx)
	case ActionStringRaw:
		return h.stringRaw(ctx)
	case ActionImplementInterface:
		return h.implementInterface(ctx)
	default:
		return handler.Errorf("unknown refactor action: %s", action.Name)
	}
}

// scriptAt returns true if a JavaScript or TypeScript strategy is effective
// at line.
func scriptAt(ctx *execctx.ExecutionContext, line int) bool {
	return ctx.EffectiveStrategy(line).Language().IsScript()
}

// languageAt returns the language effective at line.
func languageAt(ctx *execctx.ExecutionContext, line int) lang.Language {
	return ctx.EffectiveStrategy(line).Language()
}

// spansLine returns true if line lies within the lines of [from, to].
func spansLine(from, to, line int) bool {
	return line >= from && line <= to
}
