package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line is a read-only view of one line of a snapshot.
// It is derived on demand and must not be kept across commands.
type Line struct {
	Index   int    // 0-indexed line number
	Text    string // Raw line content without the line break
	Trimmed string // Text with leading and trailing whitespace removed
	Indent  string // Leading whitespace of Text

	// IndentWidth is the number of leading whitespace characters.
	IndentWidth int

	// Range covers the line content without the line break.
	Range Range

	// RangeIncludingLineBreak extends Range to the start of the next line.
	// On the last line it equals Range.
	RangeIncludingLineBreak Range
}

func newLine(index int, text string, last bool) Line {
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	indent := text[:len(text)-len(body)]

	l := Line{
		Index:       index,
		Text:        text,
		Trimmed:     strings.TrimRightFunc(body, unicode.IsSpace),
		Indent:      indent,
		IndentWidth: utf8.RuneCountInString(indent),
		Range:       LineRange(index, 0, len(text)),
	}
	l.RangeIncludingLineBreak = l.Range
	if !last {
		l.RangeIncludingLineBreak.End = Point{Line: index + 1, Column: 0}
	}
	return l
}

// FirstNonWhitespace returns the byte column of the first non-whitespace
// character, or the line length for a blank line.
func (l Line) FirstNonWhitespace() int {
	return len(l.Indent)
}

// ContentEnd returns the byte column just past the last non-whitespace
// character, or 0 for a blank line.
func (l Line) ContentEnd() int {
	if l.IsBlank() {
		return 0
	}
	return len(strings.TrimRightFunc(l.Text, unicode.IsSpace))
}

// IsBlank returns true if the line is empty or whitespace only.
func (l Line) IsBlank() bool {
	return l.Trimmed == ""
}

// End returns the point at the end of the line content.
func (l Line) End() Point {
	return l.Range.End
}
