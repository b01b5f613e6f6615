package input

import (
	"strings"

	"github.com/google/uuid"
)

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceCLI indicates the action came from the command line.
	SourceCLI ActionSource = iota
	// SourceServer indicates the action came from a server request.
	SourceServer
	// SourcePlugin indicates the action was issued by a plugin.
	SourcePlugin
	// SourceAPI indicates the action came from an embedding program.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceCLI:
		return "cli"
	case SourceServer:
		return "server"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds command-specific arguments.
type ActionArgs struct {
	// Text is a free-form argument, e.g. a variable name.
	Text string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]interface{}
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// ID uniquely identifies this invocation.
	ID string

	// Name is the command identifier (e.g., "comment.toggle").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action with a fresh ID.
func NewAction(name string, source ActionSource) Action {
	return Action{
		ID:     uuid.NewString(),
		Name:   name,
		Source: source,
	}
}

// WithText returns a copy of the action with a text argument.
func (a Action) WithText(text string) Action {
	a.Args.Text = text
	return a
}

// WithArg returns a copy of the action with an extra argument set.
func (a Action) WithArg(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	ns, _, _ := strings.Cut(a.Name, ".")
	return ns
}
