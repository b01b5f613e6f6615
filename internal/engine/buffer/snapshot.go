package buffer

import (
	"strings"
)

// Snapshot is an immutable view of buffer content at a revision.
// Commands compute every edit of a batch against the same snapshot.
type Snapshot struct {
	lines      []string
	lineEnding LineEnding
	revisionID RevisionID
}

// NewSnapshot creates a snapshot of text, detecting its line ending.
func NewSnapshot(text string) *Snapshot {
	return newSnapshot(text, DetectLineEnding(text))
}

func newSnapshot(text string, le LineEnding) *Snapshot {
	return &Snapshot{
		lines:      splitLines(text),
		lineEnding: le,
		revisionID: NewRevisionID(),
	}
}

// RevisionID returns the revision of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the line ending style of the snapshot.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// EOL returns the line ending sequence used to join lines.
func (s *Snapshot) EOL() string {
	return s.lineEnding.Sequence()
}

// LineCount returns the number of lines. An empty text has one line.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the content of a line without its line break.
// Returns "" if line is out of range.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// LineAt returns the derived view of a line.
// Out of range indexes are clamped.
func (s *Snapshot) LineAt(line int) Line {
	line = clampInt(line, 0, len(s.lines)-1)
	return newLine(line, s.lines[line], line == len(s.lines)-1)
}

// LineLen returns the byte length of a line, excluding its line break.
func (s *Snapshot) LineLen(line int) int {
	return len(s.LineText(line))
}

// Text returns the full content.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.EOL())
}

// Len returns the byte length of the full content.
func (s *Snapshot) Len() int {
	n := len(s.EOL()) * (len(s.lines) - 1)
	for _, l := range s.lines {
		n += len(l)
	}
	return n
}

// EndPoint returns the point at the end of the content.
func (s *Snapshot) EndPoint() Point {
	last := len(s.lines) - 1
	return Point{Line: last, Column: len(s.lines[last])}
}

// FullRange returns the range covering the whole content.
func (s *Snapshot) FullRange() Range {
	return Range{End: s.EndPoint()}
}

// Clamp moves a point into the valid area of the snapshot.
func (s *Snapshot) Clamp(p Point) Point {
	p.Line = clampInt(p.Line, 0, len(s.lines)-1)
	p.Column = clampInt(p.Column, 0, len(s.lines[p.Line]))
	return p
}

// IsValidPoint returns true if p addresses a position inside the content.
func (s *Snapshot) IsValidPoint(p Point) bool {
	if p.Line < 0 || p.Line >= len(s.lines) {
		return false
	}
	return p.Column >= 0 && p.Column <= len(s.lines[p.Line])
}

// Offset converts a point to a byte offset in Text().
// The point is clamped first.
func (s *Snapshot) Offset(p Point) int {
	p = s.Clamp(p)
	eol := len(s.EOL())
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(s.lines[i]) + eol
	}
	return off + p.Column
}

// PointAt converts a byte offset in Text() to a point.
// Offsets inside a line break resolve to the end of that line.
func (s *Snapshot) PointAt(offset int) Point {
	if offset <= 0 {
		return Point{}
	}
	eol := len(s.EOL())
	for i, l := range s.lines {
		if offset <= len(l) {
			return Point{Line: i, Column: offset}
		}
		offset -= len(l)
		if offset < eol {
			return Point{Line: i, Column: len(l)}
		}
		offset -= eol
	}
	return s.EndPoint()
}

// TextRange returns the text covered by r. The range is clamped.
func (s *Snapshot) TextRange(r Range) string {
	start := s.Clamp(r.Start)
	end := s.Clamp(r.End)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		return s.lines[start.Line][start.Column:end.Column]
	}

	var sb strings.Builder
	sb.WriteString(s.lines[start.Line][start.Column:])
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteString(s.EOL())
		sb.WriteString(s.lines[i])
	}
	sb.WriteString(s.EOL())
	sb.WriteString(s.lines[end.Line][:end.Column])
	return sb.String()
}

// Lines returns the derived views of lines in [from, to], inclusive.
func (s *Snapshot) Lines(from, to int) []Line {
	from = clampInt(from, 0, len(s.lines)-1)
	to = clampInt(to, 0, len(s.lines)-1)
	if to < from {
		return nil
	}
	out := make([]Line, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, s.LineAt(i))
	}
	return out
}

// Apply returns a new snapshot with edits applied.
// All edits are expressed in this snapshot's coordinates.
// The receiver is not modified.
func (s *Snapshot) Apply(edits []Edit) (*Snapshot, error) {
	resolved, err := s.resolve(edits)
	if err != nil {
		return nil, err
	}
	text := s.Text()

	// Resolved edits are sorted ascending; apply from the end so that
	// earlier offsets stay valid.
	for i := len(resolved) - 1; i >= 0; i-- {
		e := resolved[i]
		text = text[:e.start] + e.text + text[e.end:]
	}
	return newSnapshot(text, s.lineEnding), nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
