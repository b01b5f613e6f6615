// Package app hosts commands: it owns documents, resolves languages and
// settings, dispatches a command, applies the resulting edit batch and
// carries out the clipboard write.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/config"
	"github.com/dshills/wonderland/internal/dispatcher"
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/lang"
	"github.com/dshills/wonderland/internal/log"
	"github.com/dshills/wonderland/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file; empty uses defaults and environment.
	ConfigPath string

	// ConfigOptions are passed to config.Open.
	ConfigOptions []config.Option

	// PluginDir overrides the plugin_dir setting.
	PluginDir string

	// NoPlugins skips loading Lua plugins.
	NoPlugins bool

	// Clipboard is the clipboard collaborator; nil uses the system clipboard.
	Clipboard clipboard.Clipboard

	// Source tags the actions the application issues.
	Source input.ActionSource
}

// App coordinates settings, plugins, the dispatcher and the clipboard.
type App struct {
	mu sync.RWMutex

	config    *config.Config
	system    *dispatcher.System
	plugins   *lua.Handler
	clipboard clipboard.Clipboard
	source    input.ActionSource
	logger    log.Logger
	closed    bool
}

// New creates an application. Plugin load failures are logged and do not
// prevent startup; the plugins that loaded stay available.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Open(opts.ConfigPath, opts.ConfigOptions...)
	if err != nil {
		return nil, NewOperationError("load settings", opts.ConfigPath, err)
	}

	a := &App{
		config:    cfg,
		clipboard: opts.Clipboard,
		source:    opts.Source,
		logger:    log.For(log.CatApp),
	}
	if a.clipboard == nil {
		a.clipboard = clipboard.NewSystem()
	}

	sysConfig := dispatcher.DefaultSystemConfig()
	if !opts.NoPlugins {
		dir := opts.PluginDir
		if dir == "" {
			dir = cfg.Settings().PluginPath()
		}
		plugins, err := lua.LoadDir(ctx, dir)
		if err != nil {
			a.logger.Warn("some plugins failed to load", "dir", dir, "error", err)
		}
		a.plugins = plugins
		if len(plugins.Actions()) > 0 {
			sysConfig.Namespaces = append(sysConfig.Namespaces, plugins)
		}
	}
	a.system = dispatcher.NewSystem(sysConfig)
	return a, nil
}

// Settings returns the current settings.
func (a *App) Settings() config.Settings {
	return a.config.Settings()
}

// Config returns the settings holder.
func (a *App) Config() *config.Config {
	return a.config
}

// System returns the dispatcher system.
func (a *App) System() *dispatcher.System {
	return a.system
}

// Commands returns every command name, sorted.
func (a *App) Commands() []string {
	return a.system.Actions()
}

// Plugins returns the loaded Lua plugins.
func (a *App) Plugins() []*lua.Plugin {
	if a.plugins == nil {
		return nil
	}
	return a.plugins.Plugins()
}

// Watch reloads settings when the settings file changes.
func (a *App) Watch() error {
	return a.config.Watch()
}

// Outcome describes one executed command.
type Outcome struct {
	// Action is the dispatched invocation.
	Action input.Action

	// Result is the handler result; its edits and selections are in
	// pre-edit coordinates.
	Result handler.Result

	// Applied describes the applied batch; zero when nothing changed.
	Applied buffer.EditResult

	// Selections is the selection state after the command.
	Selections cursor.Set

	// Clipboard is the text written to the clipboard, if any.
	Clipboard *string
}

// Changed returns true if the command edited the document.
func (o Outcome) Changed() bool {
	return len(o.Applied.Edits) > 0
}

// ExecOption adjusts a single Execute call.
type ExecOption func(*execOptions)

type execOptions struct {
	clipboard clipboard.Clipboard
}

// UsingClipboard makes one call read and write cb instead of the
// application clipboard.
func UsingClipboard(cb clipboard.Clipboard) ExecOption {
	return func(o *execOptions) {
		if cb != nil {
			o.clipboard = cb
		}
	}
}

// Context builds the execution context for a document.
func (a *App) Context(ctx context.Context, doc *Document) *execctx.ExecutionContext {
	return a.context(ctx, doc, a.clipboard)
}

func (a *App) context(ctx context.Context, doc *Document, cb clipboard.Clipboard) *execctx.ExecutionContext {
	settings := a.Settings()
	strategy, _ := lang.Resolve(doc.LanguageID)

	ec := execctx.New().
		WithContext(ctx).
		WithSnapshot(doc.Snapshot()).
		WithSelections(doc.Selections()...).
		WithLanguage(doc.LanguageID).
		WithStrategy(settings.Strategy(strategy)).
		WithClipboard(cb).
		WithSettings(settings.Exec())
	ec.ReadOnly = doc.ReadOnly
	return ec
}

// Execute runs a command against a document. The edit batch is applied
// atomically, the selections are mapped through it and a requested
// clipboard write is performed. NoOp results leave the document untouched
// and are not errors.
func (a *App) Execute(ctx context.Context, doc *Document, name string, opts ...ExecOption) (Outcome, error) {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	if closed {
		return Outcome{}, ErrClosed
	}

	eo := execOptions{clipboard: a.clipboard}
	for _, opt := range opts {
		opt(&eo)
	}

	action := input.NewAction(name, a.source)
	ec := a.context(ctx, doc, eo.clipboard)
	before := ec.Snapshot

	res := a.system.Dispatch(action, ec)
	out := Outcome{Action: action, Result: res, Selections: doc.Selections()}

	if res.Error != nil {
		return out, NewOperationError("execute", name, res.Error)
	}
	if res.IsNoOp() {
		a.logger.Debug("no-op", "action", name, "message", res.Message)
		return out, nil
	}

	applied := buffer.EditResult{Before: before, After: before}
	if len(res.Edits) > 0 {
		var err error
		applied, err = doc.Buffer().ApplyEdits(res.Edits)
		if err != nil {
			return out, NewOperationError("execute", name, err)
		}
		doc.SetModified(true)
		out.Applied = applied
	}

	sels := res.Selections
	if sels == nil {
		sels = out.Selections
	}
	out.Selections = mapSelections(applied, sels)
	doc.SetSelections(out.Selections...)
	out.Selections = doc.Selections()

	if res.Clipboard != nil {
		if err := eo.clipboard.WriteText(ctx, *res.Clipboard); err != nil {
			return out, NewOperationError("clipboard write", name, err)
		}
		out.Clipboard = res.Clipboard
	}

	a.logger.Debug("executed", "action", name, "edits", len(res.Edits), "selections", len(out.Selections))
	return out, nil
}

// mapSelections maps pre-edit selections into post-edit coordinates.
func mapSelections(r buffer.EditResult, sels []cursor.Selection) cursor.Set {
	out := make(cursor.Set, len(sels))
	for i, s := range sels {
		out[i] = cursor.NewSelection(r.MapPoint(s.Anchor), r.MapPoint(s.Active))
	}
	return out
}

// Close stops watching settings and releases plugins.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	var errs []error
	errs = append(errs, a.config.Close())
	if a.plugins != nil {
		errs = append(errs, a.plugins.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing app: %w", err)
	}
	return nil
}
