package cursor

import (
	"fmt"

	"github.com/dshills/wonderland/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text.
// Anchor is where the selection started; Active is where the cursor is.
// When Anchor == Active, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point // Where selection started
	Active Point // Current cursor position
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Point) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// NewCursor creates a selection representing just a cursor.
func NewCursor(p Point) Selection {
	return Selection{Anchor: p, Active: p}
}

// NewRangeSelection creates a forward selection covering r.
func NewRangeSelection(r Range) Selection {
	return Selection{Anchor: r.Start, Active: r.End}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// IsSingleLine returns true if anchor and active are on the same line.
func (s Selection) IsSingleLine() bool {
	return s.Anchor.Line == s.Active.Line
}

// IsForward returns true if the selection extends forward.
func (s Selection) IsForward() bool {
	return !s.Active.Before(s.Anchor)
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Anchor.Before(s.Active) {
		return s.Anchor
	}
	return s.Active
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Anchor.Before(s.Active) {
		return s.Active
	}
	return s.Anchor
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Text returns the selected text of snap.
func (s Selection) Text(snap *buffer.Snapshot) string {
	return snap.TextRange(s.Range())
}

// Clamp moves both ends into the valid area of snap.
func (s Selection) Clamp(snap *buffer.Snapshot) Selection {
	return Selection{Anchor: snap.Clamp(s.Anchor), Active: snap.Clamp(s.Active)}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Active)
	}
	return fmt.Sprintf("Selection%s->%s", s.Anchor, s.Active)
}
