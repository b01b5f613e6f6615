package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/wonderland/internal/engine/buffer"
)

func pt(line, col int) Point {
	return Point{Line: line, Column: col}
}

func TestSelectionBasics(t *testing.T) {
	back := NewSelection(pt(2, 4), pt(1, 0))

	assert.False(t, back.IsEmpty())
	assert.False(t, back.IsSingleLine())
	assert.False(t, back.IsForward())
	assert.Equal(t, pt(1, 0), back.Start())
	assert.Equal(t, pt(2, 4), back.End())
	assert.Equal(t, buffer.NewRange(pt(1, 0), pt(2, 4)), back.Range())

	c := NewCursor(pt(3, 3))
	assert.True(t, c.IsEmpty())
	assert.True(t, c.IsSingleLine())
	assert.Equal(t, "Cursor(3:3)", c.String())
}

func TestSelectionText(t *testing.T) {
	snap := buffer.NewSnapshot("let x = a + b\nnext")
	sel := NewSelection(pt(0, 8), pt(0, 13))

	assert.Equal(t, "a + b", sel.Text(snap))
	assert.Equal(t, NewCursor(pt(1, 4)), NewCursor(pt(7, 9)).Clamp(snap))
}

func TestClassifyPair(t *testing.T) {
	empty := NewCursor(pt(3, 0))
	full := NewSelection(pt(5, 2), pt(5, 7))

	tests := []struct {
		name    string
		a, b    Selection
		ok      bool
		wantIdx int
	}{
		{"empty first", empty, full, true, 0},
		{"empty second", full, empty, true, 1},
		{"both empty", empty, empty, false, 0},
		{"both full", full, full, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, ok := ClassifyPair(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, empty, pair.Insertion)
			assert.Equal(t, full, pair.Source)
			assert.Equal(t, tt.wantIdx, pair.InsertionIndex)
		})
	}
}

func TestClassifySelectionsCount(t *testing.T) {
	_, ok := ClassifySelections([]Selection{NewCursor(pt(0, 0))})
	assert.False(t, ok)

	_, ok = ClassifySelections([]Selection{NewCursor(pt(0, 0)), NewCursor(pt(1, 0)), NewCursor(pt(2, 0))})
	assert.False(t, ok)
}

func TestLineSpan(t *testing.T) {
	tests := []struct {
		name       string
		sels       []Selection
		start, end int
		ok         bool
	}{
		{"one multi-line", []Selection{NewSelection(pt(4, 1), pt(1, 0))}, 1, 4, true},
		{"one single-line", []Selection{NewSelection(pt(2, 1), pt(2, 5))}, 0, 0, false},
		{"two cursors", []Selection{NewCursor(pt(7, 0)), NewCursor(pt(2, 3))}, 2, 7, true},
		{"two on same line", []Selection{NewCursor(pt(2, 0)), NewCursor(pt(2, 3))}, 0, 0, false},
		{"none", nil, 0, 0, false},
		{"three", []Selection{NewCursor(pt(0, 0)), NewCursor(pt(1, 0)), NewCursor(pt(2, 0))}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := LineSpan(tt.sels)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestLines(t *testing.T) {
	start, end := Lines(NewSelection(pt(1, 2), pt(3, 0)))
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)

	start, end = Lines(NewCursor(pt(4, 0)))
	assert.Equal(t, 4, start)
	assert.Equal(t, 4, end)
}

func TestSetHelpers(t *testing.T) {
	set := Set{NewCursor(pt(5, 0)), NewSelection(pt(1, 0), pt(1, 3))}

	assert.Equal(t, pt(5, 0), set.Primary().Active)
	assert.Equal(t, pt(1, 0), set.Sorted()[0].Start())
	assert.False(t, set.AllEmpty())
	assert.Equal(t, Selection{}, Set(nil).Primary())
}
