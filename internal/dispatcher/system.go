package dispatcher

import (
	"sync"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/dispatcher/handlers/comment"
	"github.com/dshills/wonderland/internal/dispatcher/handlers/editor"
	"github.com/dshills/wonderland/internal/dispatcher/handlers/refactor"
	"github.com/dshills/wonderland/internal/dispatcher/hook"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
)

// System provides a unified facade for the dispatcher subsystem.
// It wires the built-in command namespaces and hooks into a dispatcher.
type System struct {
	mu sync.RWMutex

	dispatcher *Dispatcher

	commentHandler  *comment.Handler
	refactorHandler *refactor.Handler
	editorHandler   *editor.CombinedHandler

	auditHook      *hook.AuditHook
	validationHook *hook.ValidationHook

	config SystemConfig
}

// SystemConfig holds configuration for the dispatcher system.
type SystemConfig struct {
	// DispatcherConfig is the underlying dispatcher configuration.
	DispatcherConfig Config

	// EnableAudit logs every dispatch through the dispatch log category.
	EnableAudit bool

	// EnableValidation cancels edits against missing or read-only buffers
	// before any handler runs.
	EnableValidation bool

	// Namespaces are additional namespace handlers, such as user plugins.
	Namespaces []handler.NamespaceHandler
}

// DefaultSystemConfig returns a configuration with sensible defaults.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		DispatcherConfig: DefaultConfig().WithMetrics(),
		EnableAudit:      true,
		EnableValidation: true,
	}
}

// NewSystem creates a new dispatcher system with the given configuration.
func NewSystem(config SystemConfig) *System {
	s := &System{
		config:          config,
		dispatcher:      New(config.DispatcherConfig),
		commentHandler:  comment.NewHandler(),
		refactorHandler: refactor.NewHandler(),
		editorHandler:   editor.NewCombinedHandler(),
	}

	s.dispatcher.RegisterNamespace(s.commentHandler)
	s.dispatcher.RegisterNamespace(s.refactorHandler)
	s.dispatcher.RegisterNamespace(s.editorHandler)
	for _, ns := range config.Namespaces {
		s.dispatcher.RegisterNamespace(ns)
	}

	s.initializeHooks(config)
	return s
}

// NewSystemWithDefaults creates a system with default configuration.
func NewSystemWithDefaults() *System {
	return NewSystem(DefaultSystemConfig())
}

func (s *System) initializeHooks(config SystemConfig) {
	if config.EnableAudit {
		s.auditHook = hook.NewAuditHook(log.For(log.CatDispatch))
		s.dispatcher.RegisterHook(s.auditHook)
	}
	if config.EnableValidation {
		s.validationHook = hook.NewValidationHook(editor.ActionLineEnd)
		s.dispatcher.RegisterHook(s.validationHook)
	}
}

// Dispatch executes an action synchronously against ctx.
func (s *System) Dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatcher.Dispatch(action, ctx)
}

// RegisterNamespace registers an additional namespace handler.
// A handler for an existing namespace replaces it.
func (s *System) RegisterNamespace(h handler.NamespaceHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher.RegisterNamespace(h)
}

// UnregisterNamespace removes a namespace handler.
func (s *System) UnregisterNamespace(namespace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher.Router().UnregisterNamespace(namespace)
}

// RegisterHook registers a pre- and/or post-dispatch hook.
func (s *System) RegisterHook(h hook.Hook) {
	s.dispatcher.RegisterHook(h)
}

// UnregisterHook removes a hook by name.
func (s *System) UnregisterHook(name string) bool {
	return s.dispatcher.Hooks().Unregister(name)
}

// CanHandle returns true if some handler accepts the action.
func (s *System) CanHandle(actionName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatcher.CanDispatch(actionName)
}

// Actions returns every dispatchable action name, sorted.
func (s *System) Actions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatcher.Actions()
}

// Namespaces returns the registered namespace names, sorted.
func (s *System) Namespaces() []string {
	return s.dispatcher.Router().Namespaces()
}

// Dispatcher returns the underlying dispatcher.
func (s *System) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Metrics returns the metrics collector (may be nil if disabled).
func (s *System) Metrics() *Metrics {
	return s.dispatcher.Metrics()
}

// Config returns the system configuration.
func (s *System) Config() SystemConfig {
	return s.config
}
