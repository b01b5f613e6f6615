package lang

import (
	"strings"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/rewrite"
)

// RemoveComments returns the ranges to delete so that the comments on
// lines start..end (inclusive) disappear. All ranges refer to snap and
// never overlap, so they can be applied as one batch.
//
// Line comments ending in marker are kept. Block comments are deleted as
// whole lines when nothing else shares their lines, otherwise as the exact
// span; a block without its closing token is left alone. A span covering a
// single line removes nothing.
//
// Markup comments (<!-- -->) ignore marker: a line opening one is always
// deleted through its closing line.
func (s *Strategy) RemoveComments(snap *buffer.Snapshot, start, end int, marker string) []buffer.Range {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if last := snap.LineCount() - 1; end > last {
		end = last
	}
	if start >= end {
		return nil
	}

	p := s.profile
	switch p.Kind {
	case KindMarkup:
		if p.Language == Markdown {
			return nil
		}
		return removeMarkup(snap, start, end)
	case KindShell:
		if start == 0 && end == snap.LineCount()-1 {
			return nil
		}
	}
	if p.Language == Dockerfile && start == 0 {
		start++
	}
	return removeLinesAndBlocks(snap, p, start, end, marker)
}

// removeLinesAndBlocks scans lines in one pass. A line comment marks its
// line for deletion; a block opener switches to consuming lines until the
// matching close token.
func removeLinesAndBlocks(snap *buffer.Snapshot, p Profile, start, end int, marker string) []buffer.Range {
	var ranges []buffer.Range
	for i := start; i <= end; i++ {
		line := snap.LineAt(i)
		if line.IsBlank() {
			continue
		}

		if p.LineComment != "" && strings.HasPrefix(line.Trimmed, p.LineComment) {
			if rewrite.IsPreserved(line.Text, marker) || isLeadingDirective(snap, p, i) {
				continue
			}
			ranges = append(ranges, line.RangeIncludingLineBreak)
			continue
		}

		for _, d := range p.Blocks() {
			if !strings.HasPrefix(line.Trimmed, d.Open) {
				continue
			}
			if r, last, ok := blockRange(snap, line, d); ok {
				ranges = append(ranges, r)
				i = last
			}
			break
		}
	}
	return ranges
}

// blockRange finds the end of a block comment opened on line. The close
// token is searched after the opener, possibly beyond the scanned span.
func blockRange(snap *buffer.Snapshot, line buffer.Line, d Delimiters) (buffer.Range, int, bool) {
	openCol := line.FirstNonWhitespace()
	from := openCol + len(d.Open)

	for j := line.Index; j < snap.LineCount(); j++ {
		text := snap.LineText(j)
		offset := 0
		if j == line.Index {
			offset = from
		}
		idx := strings.Index(text[offset:], d.Close)
		if idx < 0 {
			continue
		}

		closeEnd := offset + idx + len(d.Close)
		if strings.TrimSpace(text[closeEnd:]) == "" {
			r := buffer.Range{
				Start: buffer.Point{Line: line.Index},
				End:   snap.LineAt(j).RangeIncludingLineBreak.End,
			}
			return r, j, true
		}
		r := buffer.Range{
			Start: buffer.Point{Line: line.Index, Column: openCol},
			End:   buffer.Point{Line: j, Column: closeEnd},
		}
		return r, j, true
	}
	return buffer.Range{}, 0, false
}

// removeMarkup deletes whole lines from an opening <!-- through the line
// ending in -->.
func removeMarkup(snap *buffer.Snapshot, start, end int) []buffer.Range {
	var ranges []buffer.Range
	for i := start; i <= end; i++ {
		line := snap.LineAt(i)
		if !strings.HasPrefix(line.Trimmed, markupBlock.Open) {
			continue
		}
		for j := i; j < snap.LineCount(); j++ {
			if strings.HasSuffix(strings.TrimSpace(snap.LineText(j)), markupBlock.Close) {
				ranges = append(ranges, buffer.Range{
					Start: buffer.Point{Line: i},
					End:   snap.LineAt(j).RangeIncludingLineBreak.End,
				})
				i = j
				break
			}
		}
	}
	return ranges
}

// isLeadingDirective reports whether line i is a start directive preceded
// only by blank lines.
func isLeadingDirective(snap *buffer.Snapshot, p Profile, i int) bool {
	if !p.IsStartDirective(snap.LineText(i)) {
		return false
	}
	for j := 0; j < i; j++ {
		if !snap.LineAt(j).IsBlank() {
			return false
		}
	}
	return true
}
