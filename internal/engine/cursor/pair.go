package cursor

import "sort"

// Pair is the classified form of two selections where exactly one is empty.
type Pair struct {
	Insertion Selection // The empty selection
	Source    Selection // The non-empty selection

	// InsertionIndex is the position of Insertion in the original slice.
	InsertionIndex int
}

// ClassifyPair decides which of two selections is the insertion point and
// which carries the source text. It fails when both or neither are empty.
func ClassifyPair(a, b Selection) (Pair, bool) {
	switch {
	case a.IsEmpty() && !b.IsEmpty():
		return Pair{Insertion: a, Source: b, InsertionIndex: 0}, true
	case !a.IsEmpty() && b.IsEmpty():
		return Pair{Insertion: b, Source: a, InsertionIndex: 1}, true
	default:
		return Pair{}, false
	}
}

// ClassifySelections is ClassifyPair over a selection slice.
// Any count other than two fails.
func ClassifySelections(sels []Selection) (Pair, bool) {
	if len(sels) != 2 {
		return Pair{}, false
	}
	return ClassifyPair(sels[0], sels[1])
}

// LineSpan returns the inclusive line span commands operating on a range
// of lines use. Two selections span between their active lines; a single
// selection spans from its start to its end line. Other counts, and spans
// covering a single line, fail.
func LineSpan(sels []Selection) (start, end int, ok bool) {
	switch len(sels) {
	case 1:
		start, end = sels[0].Start().Line, sels[0].End().Line
	case 2:
		lines := []int{sels[0].Active.Line, sels[1].Active.Line}
		sort.Ints(lines)
		start, end = lines[0], lines[1]
	default:
		return 0, 0, false
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// Lines returns the inclusive line span covered by a selection. A
// multi-line selection ending at column 0 does not include its last line.
func Lines(s Selection) (start, end int) {
	start, end = s.Start().Line, s.End().Line
	if end > start && s.End().Column == 0 {
		end--
	}
	return start, end
}
