package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range of the pre-edit text to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewReplace creates an Edit that replaces a range with text.
func NewReplace(r Range, text string) Edit {
	return Edit{Range: r, NewText: text}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(p Point, text string) Edit {
	return Edit{
		Range:   Range{Start: p, End: p},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsReplace returns true if this replaces existing text with new text.
func (e Edit) IsReplace() bool {
	return !e.Range.IsEmpty() && e.NewText != ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// resolvedEdit is an Edit converted to byte offsets of a specific snapshot.
type resolvedEdit struct {
	start, end int
	text       string
	order      int
}

func (e resolvedEdit) delta() int {
	return len(e.text) - (e.end - e.start)
}

// EditResult describes an applied edit batch.
type EditResult struct {
	Before *Snapshot // Text the edits were computed against
	After  *Snapshot // Text after the batch was applied
	Edits  []Edit    // The applied edits, in the order they were given
}

// MapPoint maps a pre-edit point into post-edit coordinates.
// Points inside a replaced range move to the end of the replacement.
// Points exactly at an insertion position stay in front of the inserted text.
func (r EditResult) MapPoint(p Point) Point {
	if r.Before == nil || r.After == nil {
		return p
	}
	resolved, err := r.Before.resolve(r.Edits)
	if err != nil {
		return r.After.Clamp(p)
	}
	off := r.Before.Offset(p)
	return r.After.PointAt(mapOffset(resolved, off))
}

// mapOffset shifts a pre-edit offset through a batch of resolved edits.
func mapOffset(edits []resolvedEdit, off int) int {
	shift := 0
	for _, e := range edits {
		switch {
		case e.start == e.end && e.start == off:
			// insertion at the point: left gravity
		case e.end <= off:
			shift += e.delta()
		case e.start < off && off < e.end:
			shift += e.start + len(e.text) - off
		}
	}
	return off + shift
}
