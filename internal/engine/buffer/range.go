package buffer

import "fmt"

// Range represents a span between two points.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Point // Inclusive start position
	End   Point // Exclusive end position
}

// NewRange creates a range from start and end points.
// The points are ordered so that Start <= End.
func NewRange(start, end Point) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// LineRange creates a range on a single line.
func LineRange(line, startCol, endCol int) Range {
	return NewRange(Point{Line: line, Column: startCol}, Point{Line: line, Column: endCol})
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range spans only one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains returns true if the given point is within the range.
func (r Range) Contains(p Point) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// Overlaps returns true if the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
