package lua

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wonderland/internal/lang"
)

// Namespace is the command namespace of Lua plugins.
const Namespace = "lua"

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Plugin is one loaded rewrite script.
type Plugin struct {
	Name        string
	Path        string
	Description string

	// Languages limits the plugin to these languages; empty means all.
	Languages []lang.Language

	state   *State
	rewrite lua.LValue
}

// LineInfo is the context table passed to rewrite.
type LineInfo struct {
	Language string
	Number   int
	Indent   string
	Trimmed  string
	Tab      string
	EOL      string
}

func (i LineInfo) values() map[string]any {
	return map[string]any{
		"language": i.Language,
		"number":   i.Number,
		"indent":   i.Indent,
		"trimmed":  i.Trimmed,
		"tab":      i.Tab,
		"eol":      i.EOL,
	}
}

// NameFromPath returns the plugin name for a script path.
func NameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Load runs the script at path in a fresh sandbox and binds its rewrite
// function.
func Load(ctx context.Context, path string, opts ...StateOption) (*Plugin, error) {
	name := NameFromPath(path)
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	state, err := NewState(append([]StateOption{WithName(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	p, err := bind(ctx, state, name, path)
	if err != nil {
		state.Close()
		return nil, err
	}
	return p, nil
}

func bind(ctx context.Context, state *State, name, path string) (*Plugin, error) {
	if err := state.DoFile(ctx, path); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	fn := state.GetGlobal("rewrite")
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%s: %w", path, ErrNoRewrite)
	}

	p := &Plugin{Name: name, Path: path, state: state, rewrite: fn}

	if desc, ok := state.GetGlobal("description").(lua.LString); ok {
		p.Description = string(desc)
	}

	if langs := state.GetGlobal("languages"); langs != lua.LNil {
		ids, ok := stringList(langs)
		if !ok {
			return nil, fmt.Errorf("%s: languages must be a list of strings", path)
		}
		for _, id := range ids {
			l, ok := lang.Parse(id)
			if !ok {
				return nil, fmt.Errorf("%s: unknown language %q", path, id)
			}
			p.Languages = append(p.Languages, l)
		}
	}
	return p, nil
}

// Action returns the command name of the plugin.
func (p *Plugin) Action() string {
	return Namespace + "." + p.Name
}

// Supports reports whether the plugin runs for language l.
func (p *Plugin) Supports(l lang.Language) bool {
	if len(p.Languages) == 0 {
		return true
	}
	for _, want := range p.Languages {
		if want == l {
			return true
		}
	}
	return false
}

// Rewrite calls the plugin for one line. It returns the replacement lines
// and whether the plugin changed anything. An empty, changed result
// deletes the line.
func (p *Plugin) Rewrite(ctx context.Context, line string, info LineInfo) ([]string, bool, error) {
	ret, err := p.state.Call(ctx, p.rewrite, line, info.values())
	if err != nil {
		return nil, false, err
	}

	switch v := ret.(type) {
	case *lua.LNilType:
		return nil, false, nil
	case lua.LBool:
		if !bool(v) {
			return nil, false, nil
		}
	case lua.LString:
		if string(v) == line {
			return nil, false, nil
		}
		return []string{string(v)}, true, nil
	case *lua.LTable:
		if lines, ok := stringList(v); ok {
			return lines, true, nil
		}
	}
	return nil, false, fmt.Errorf("%s: %w (got %s)", p.Name, ErrBadReturn, ret.Type())
}

// Close releases the plugin's Lua state.
func (p *Plugin) Close() error {
	return p.state.Close()
}
