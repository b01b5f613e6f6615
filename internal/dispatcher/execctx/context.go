// Package execctx provides the execution context for action handlers.
package execctx

import (
	"context"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
)

// ClipboardReader reads the host clipboard. Reads may block.
type ClipboardReader interface {
	ReadText(ctx context.Context) (string, error)
}

// Settings are the host settings handlers consult.
type Settings struct {
	// TabSize is the indent width used when a command synthesizes a block.
	TabSize int

	// PreserveMarker protects comment lines from comment removal.
	PreserveMarker string
}

// Tab returns one indentation step of TabSize spaces.
func (s Settings) Tab() string {
	n := s.TabSize
	if n <= 0 {
		n = DefaultTabSize
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// Defaults used when the host does not provide settings.
const (
	DefaultTabSize        = 2
	DefaultPreserveMarker = "￥"
)

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{TabSize: DefaultTabSize, PreserveMarker: DefaultPreserveMarker}
}

// ExecutionContext provides everything a handler may read.
// Handlers never mutate the snapshot; they describe edits in the result.
type ExecutionContext struct {
	// Context carries cancellation for blocking collaborator calls.
	Context context.Context

	// Snapshot is the pre-edit buffer content.
	Snapshot *buffer.Snapshot

	// Selections is the selection state in Snapshot coordinates.
	Selections cursor.Set

	// LanguageID is the host language identifier.
	LanguageID string

	// Strategy is the resolved language strategy, nil for unknown languages.
	Strategy *lang.Strategy

	// Clipboard reads the host clipboard.
	Clipboard ClipboardReader

	// Settings holds host settings.
	Settings Settings

	// ReadOnly marks the buffer as not editable.
	ReadOnly bool

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Context:  context.Background(),
		Settings: DefaultSettings(),
		Data:     make(map[string]interface{}),
	}
}

// WithContext returns the context with a cancellation context set.
func (ctx *ExecutionContext) WithContext(c context.Context) *ExecutionContext {
	if c != nil {
		ctx.Context = c
	}
	return ctx
}

// WithSnapshot returns the context with the buffer snapshot set.
func (ctx *ExecutionContext) WithSnapshot(snap *buffer.Snapshot) *ExecutionContext {
	ctx.Snapshot = snap
	return ctx
}

// WithSelections returns the context with selections set.
func (ctx *ExecutionContext) WithSelections(sels ...cursor.Selection) *ExecutionContext {
	ctx.Selections = cursor.Set(sels)
	return ctx
}

// WithLanguage returns the context with the host language identifier set
// and its strategy resolved.
func (ctx *ExecutionContext) WithLanguage(id string) *ExecutionContext {
	ctx.LanguageID = id
	ctx.Strategy, _ = lang.Resolve(id)
	return ctx
}

// WithStrategy returns the context with an explicit strategy.
func (ctx *ExecutionContext) WithStrategy(s *lang.Strategy) *ExecutionContext {
	ctx.Strategy = s
	return ctx
}

// WithClipboard returns the context with a clipboard reader set.
func (ctx *ExecutionContext) WithClipboard(c ClipboardReader) *ExecutionContext {
	ctx.Clipboard = c
	return ctx
}

// WithSettings returns the context with settings set.
func (ctx *ExecutionContext) WithSettings(s Settings) *ExecutionContext {
	if s.TabSize <= 0 {
		s.TabSize = DefaultTabSize
	}
	ctx.Settings = s
	return ctx
}

// Language returns the language of the resolved strategy.
func (ctx *ExecutionContext) Language() lang.Language {
	if ctx.Strategy == nil {
		return lang.Unknown
	}
	return ctx.Strategy.Language()
}

// EffectiveStrategy returns the strategy that applies at a line, following
// embedded scripts in markup documents.
func (ctx *ExecutionContext) EffectiveStrategy(line int) *lang.Strategy {
	if ctx.Strategy == nil || ctx.Snapshot == nil {
		return ctx.Strategy
	}
	return lang.Effective(ctx.Snapshot, line, ctx.Strategy)
}

// EOL returns the line ending of the snapshot.
func (ctx *ExecutionContext) EOL() string {
	if ctx.Snapshot == nil {
		return "\n"
	}
	return ctx.Snapshot.EOL()
}

// Primary returns the first selection.
func (ctx *ExecutionContext) Primary() cursor.Selection {
	return ctx.Selections.Primary()
}

// ReadClipboard reads the clipboard text.
func (ctx *ExecutionContext) ReadClipboard() (string, error) {
	if ctx.Clipboard == nil {
		return "", ErrMissingClipboard
	}
	c := ctx.Context
	if c == nil {
		c = context.Background()
	}
	return ctx.Clipboard.ReadText(c)
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Snapshot == nil {
		return ErrMissingSnapshot
	}
	if len(ctx.Selections) == 0 {
		return ErrMissingSelections
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}

// ValidateForLanguage checks that the context is editable and has a
// resolved language strategy.
func (ctx *ExecutionContext) ValidateForLanguage() error {
	if err := ctx.ValidateForEdit(); err != nil {
		return err
	}
	if ctx.Strategy == nil {
		return ErrMissingStrategy
	}
	return nil
}
