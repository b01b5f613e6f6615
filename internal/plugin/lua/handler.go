package lua

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
)

// Handler serves the lua namespace, one action per plugin.
type Handler struct {
	*handler.BaseNamespaceHandler

	plugins map[string]*Plugin
}

// NewHandler creates a handler without plugins.
func NewHandler() *Handler {
	return &Handler{
		BaseNamespaceHandler: handler.NewBaseNamespaceHandler(Namespace),
		plugins:              make(map[string]*Plugin),
	}
}

// LoadDir loads every *.lua file in dir. A missing directory yields an
// empty handler. Scripts that fail to load are skipped; their errors are
// joined into the returned error alongside a usable handler.
func LoadDir(ctx context.Context, dir string, opts ...StateOption) (*Handler, error) {
	h := NewHandler()
	if dir == "" {
		return h, nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return h, err
	}
	if len(paths) == 0 {
		if _, err := os.Stat(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return h, err
		}
		return h, nil
	}
	sort.Strings(paths)

	logger := log.For(log.CatPlugin)
	var errs []error
	for _, path := range paths {
		p, err := Load(ctx, path, opts...)
		if err == nil {
			err = h.Add(p)
			if err != nil {
				p.Close()
			}
		}
		if err != nil {
			logger.Warn("skipping plugin", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("plugin loaded", "action", p.Action(), "path", path)
	}
	return h, errors.Join(errs...)
}

// Add registers a plugin under lua.<name>.
func (h *Handler) Add(p *Plugin) error {
	if _, ok := h.plugins[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, p.Name)
	}
	h.plugins[p.Name] = p
	h.Register(p.Action(), func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return runPlugin(p, ctx)
	})
	return nil
}

// Plugins returns the loaded plugins sorted by name.
func (h *Handler) Plugins() []*Plugin {
	out := make([]*Plugin, 0, len(h.plugins))
	for _, p := range h.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Plugin returns the plugin with the given name.
func (h *Handler) Plugin(name string) (*Plugin, bool) {
	p, ok := h.plugins[name]
	return p, ok
}

// Close releases every plugin.
func (h *Handler) Close() error {
	var errs []error
	for _, p := range h.plugins {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}

// runPlugin applies the plugin to every line touched by a selection.
func runPlugin(p *Plugin, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	if !p.Supports(ctx.Language()) {
		return handler.NoOpWithMessage(fmt.Sprintf("%s does not support %s", p.Action(), ctx.LanguageID))
	}

	snap := ctx.Snapshot
	eol := snap.EOL()
	var edits []buffer.Edit
	for _, n := range targetLines(ctx.Selections) {
		line := snap.LineAt(n)
		out, changed, err := p.Rewrite(ctx.Context, line.Text, LineInfo{
			Language: ctx.LanguageID,
			Number:   n,
			Indent:   line.Indent,
			Trimmed:  line.Trimmed,
			Tab:      ctx.Settings.Tab(),
			EOL:      eol,
		})
		if err != nil {
			return handler.Error(fmt.Errorf("%s: %w", p.Action(), err))
		}
		if !changed {
			continue
		}
		if len(out) == 0 {
			edits = append(edits, buffer.NewDelete(line.RangeIncludingLineBreak))
			continue
		}
		text := strings.Join(out, eol)
		if text != line.Text {
			edits = append(edits, buffer.NewReplace(line.Range, text))
		}
	}

	if len(edits) == 0 {
		return handler.NoOp()
	}
	return handler.Edited(edits...).WithData("lines", len(edits))
}

// targetLines returns the distinct lines covered by the selections in order.
func targetLines(sels cursor.Set) []int {
	seen := make(map[int]bool)
	var lines []int
	for _, sel := range sels {
		start, end := cursor.Lines(sel)
		for n := start; n <= end; n++ {
			if !seen[n] {
				seen[n] = true
				lines = append(lines, n)
			}
		}
	}
	sort.Ints(lines)
	return lines
}
