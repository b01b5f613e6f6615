package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/dispatcher/hook"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	registry *Registry
	router   *Router
	hooks    *hook.Manager
	config   Config
	metrics  *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		hooks:    hook.NewManager(),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Dispatch executes an action synchronously against ctx.
// A nil ctx is replaced by an empty execution context.
func (d *Dispatcher) Dispatch(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}
	if ctx == nil {
		ctx = execctx.New()
	}
	if ctx.Context == nil {
		ctx.Context = context.Background()
	}
	if d.config.DefaultTimeout > 0 {
		parent := ctx.Context
		c, cancel := context.WithTimeout(parent, d.config.DefaultTimeout)
		defer cancel()
		ctx.Context = c
		defer func() { ctx.Context = parent }()
	}

	if !d.hooks.RunPreDispatch(&action, ctx) {
		log.Debug(log.CatDispatch, "cancelled by hook", "action", action.Name)
		res := handler.Cancelled().WithMessage("cancelled by hook")
		res.Error = ErrActionCancelled
		return res
	}

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	if result.IsError() && errors.Is(ctx.Context.Err(), context.DeadlineExceeded) {
		result.Error = fmt.Errorf("%w: %s: %v", ErrTimeout, action.Name, result.Error)
	}

	d.hooks.RunPostDispatch(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			log.Error(log.CatDispatch, "handler panic", "action", action.Name, "panic", r, "stack", string(stack[:n]))

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h.Namespace(), h)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.registry.Unregister(actionName)
}

// RegisterHook registers a pre- and/or post-dispatch hook.
func (d *Dispatcher) RegisterHook(h hook.Hook) {
	d.hooks.Register(h)
}

// CanDispatch returns true if some handler accepts the action.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.CanRoute(actionName) || d.registry.Has(actionName)
}

// Actions returns every action name that can be dispatched, sorted.
// Namespace handlers contribute their actions when they can list them.
func (d *Dispatcher) Actions() []string {
	seen := make(map[string]bool)
	for _, name := range d.registry.List() {
		seen[name] = true
	}
	for _, ns := range d.router.Namespaces() {
		if lister, ok := d.router.GetNamespaceHandler(ns).(handler.ActionLister); ok {
			for _, name := range lister.Actions() {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Hooks returns the hook manager.
func (d *Dispatcher) Hooks() *hook.Manager {
	return d.hooks
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
