package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSnapshotLines(t *testing.T) {
	snap := NewSnapshot("one\ntwo\n\nthree")

	assert.Equal(t, 4, snap.LineCount())
	assert.Equal(t, "two", snap.LineText(1))
	assert.Equal(t, "", snap.LineText(2))
	assert.Equal(t, "", snap.LineText(99))
	assert.Equal(t, "one\ntwo\n\nthree", snap.Text())
	assert.Equal(t, len("one\ntwo\n\nthree"), snap.Len())
	assert.Equal(t, Point{Line: 3, Column: 5}, snap.EndPoint())
}

func TestSnapshotEmpty(t *testing.T) {
	snap := NewSnapshot("")

	assert.Equal(t, 1, snap.LineCount())
	assert.True(t, snap.LineAt(0).IsBlank())
	assert.Equal(t, Point{}, snap.EndPoint())
}

func TestLineDerivedFacts(t *testing.T) {
	snap := NewSnapshot("first\n\t  foo bar  \n   ")

	l := snap.LineAt(1)
	assert.Equal(t, 1, l.Index)
	assert.Equal(t, "\t  foo bar  ", l.Text)
	assert.Equal(t, "foo bar", l.Trimmed)
	assert.Equal(t, "\t  ", l.Indent)
	assert.Equal(t, 3, l.IndentWidth)
	assert.Equal(t, 3, l.FirstNonWhitespace())
	assert.Equal(t, 10, l.ContentEnd())
	assert.False(t, l.IsBlank())
	assert.Equal(t, LineRange(1, 0, 12), l.Range)
	assert.Equal(t, NewRange(Point{1, 0}, Point{2, 0}), l.RangeIncludingLineBreak)

	last := snap.LineAt(2)
	assert.True(t, last.IsBlank())
	assert.Equal(t, 0, last.ContentEnd())
	assert.Equal(t, last.Range, last.RangeIncludingLineBreak)
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LineEnding
	}{
		{"empty", "", LineEndingLF},
		{"lf", "a\nb\n", LineEndingLF},
		{"crlf", "a\r\nb\r\n", LineEndingCRLF},
		{"cr", "a\rb\r", LineEndingCR},
		{"mostly crlf", "a\r\nb\r\nc\n", LineEndingCRLF},
		{"mostly lf", "a\nb\nc\r\n", LineEndingLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLineEnding(tt.text))
		})
	}
}

func TestSnapshotCRLFOffsets(t *testing.T) {
	snap := NewSnapshot("ab\r\ncd")

	assert.Equal(t, "\r\n", snap.EOL())
	assert.Equal(t, 2, snap.LineCount())
	assert.Equal(t, 4, snap.Offset(Point{Line: 1, Column: 0}))
	assert.Equal(t, Point{Line: 0, Column: 2}, snap.PointAt(3))
	assert.Equal(t, Point{Line: 1, Column: 0}, snap.PointAt(4))
	assert.Equal(t, Point{Line: 1, Column: 2}, snap.PointAt(100))
}

func TestSnapshotTextRange(t *testing.T) {
	snap := NewSnapshot("alpha\nbeta\ngamma")

	assert.Equal(t, "ph", snap.TextRange(LineRange(0, 2, 4)))
	assert.Equal(t, "ha\nbeta\nga", snap.TextRange(NewRange(Point{0, 3}, Point{2, 2})))
	assert.Equal(t, "beta\n", snap.TextRange(snap.LineAt(1).RangeIncludingLineBreak))
	assert.Equal(t, "gamma", snap.TextRange(NewRange(Point{2, 0}, Point{9, 9})))
}

func TestSnapshotClamp(t *testing.T) {
	snap := NewSnapshot("abc\nde")

	assert.Equal(t, Point{Line: 1, Column: 2}, snap.Clamp(Point{Line: 5, Column: 9}))
	assert.Equal(t, Point{Line: 0, Column: 0}, snap.Clamp(Point{Line: -1, Column: -3}))
	assert.True(t, snap.IsValidPoint(Point{Line: 0, Column: 3}))
	assert.False(t, snap.IsValidPoint(Point{Line: 0, Column: 4}))
}

func TestApplyEditsBatch(t *testing.T) {
	buf := NewBufferFromString("one\ntwo\nthree")
	snap := buf.Snapshot()

	_, err := buf.ApplyEdits([]Edit{
		NewReplace(snap.LineAt(0).Range, "1"),
		NewDelete(snap.LineAt(1).RangeIncludingLineBreak),
		NewInsert(Point{Line: 2, Column: 0}, "3-"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1\n3-three", buf.Text())

	// The snapshot taken before the batch is unchanged.
	assert.Equal(t, "one\ntwo\nthree", snap.Text())
}

func TestApplyEditsDeleteBeforeInsertAtSamePoint(t *testing.T) {
	buf := NewBufferFromString("abc")

	_, err := buf.ApplyEdits([]Edit{
		NewDelete(LineRange(0, 0, 3)),
		NewInsert(Point{}, "X"),
	})
	require.NoError(t, err)
	assert.Equal(t, "X", buf.Text())
}

func TestApplyEditsInsertsKeepGivenOrder(t *testing.T) {
	buf := NewBufferFromString("-")

	_, err := buf.ApplyEdits([]Edit{
		NewInsert(Point{}, "x"),
		NewInsert(Point{}, "y"),
	})
	require.NoError(t, err)
	assert.Equal(t, "xy-", buf.Text())
}

func TestApplyEditsRejectsBadBatches(t *testing.T) {
	tests := []struct {
		name  string
		edits []Edit
		want  error
	}{
		{
			name: "overlap",
			edits: []Edit{
				NewReplace(LineRange(0, 0, 2), "a"),
				NewReplace(LineRange(0, 1, 3), "b"),
			},
			want: ErrEditsOverlap,
		},
		{
			name:  "insert inside delete",
			edits: []Edit{NewDelete(LineRange(0, 0, 4)), NewInsert(Point{0, 2}, "z")},
			want:  ErrEditsOverlap,
		},
		{
			name:  "line out of range",
			edits: []Edit{NewInsert(Point{Line: 5}, "z")},
			want:  ErrRangeInvalid,
		},
		{
			name:  "column past end",
			edits: []Edit{NewDelete(LineRange(0, 0, 50))},
			want:  ErrRangeInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBufferFromString("text\nmore")
			rev := buf.RevisionID()

			_, err := buf.ApplyEdits(tt.edits)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, "text\nmore", buf.Text())
			assert.Equal(t, rev, buf.RevisionID())
		})
	}
}

func TestApplyEditsNormalizesLineEndings(t *testing.T) {
	buf := NewBufferFromString("a\r\nb")

	_, err := buf.ApplyEdits([]Edit{NewInsert(Point{Line: 1, Column: 1}, "\nc\nd")})
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\nc\r\nd", buf.Text())
	assert.Equal(t, LineEndingCRLF, buf.LineEnding())
}

func TestWithLineEndingOption(t *testing.T) {
	buf := NewBufferFromString("a\nb", WithCRLF())

	assert.Equal(t, "a\r\nb", buf.Text())
	buf.SetText("x\ny")
	assert.Equal(t, "x\r\ny", buf.Text())
}

func TestEditResultMapPoint(t *testing.T) {
	buf := NewBufferFromString("hello world\nnext")

	res, err := buf.ApplyEdits([]Edit{
		NewReplace(LineRange(0, 0, 5), "hi"),
		NewInsert(Point{Line: 1, Column: 0}, "> "),
	})
	require.NoError(t, err)
	require.Equal(t, "hi world\n> next", buf.Text())

	assert.Equal(t, Point{Line: 0, Column: 3}, res.MapPoint(Point{Line: 0, Column: 6}))
	assert.Equal(t, Point{Line: 0, Column: 2}, res.MapPoint(Point{Line: 0, Column: 2}))
	assert.Equal(t, Point{Line: 0, Column: 2}, res.MapPoint(Point{Line: 0, Column: 5}))
	assert.Equal(t, Point{Line: 1, Column: 0}, res.MapPoint(Point{Line: 1, Column: 0}))
	assert.Equal(t, Point{Line: 1, Column: 4}, res.MapPoint(Point{Line: 1, Column: 2}))
}

func TestEditClassification(t *testing.T) {
	ins := NewInsert(Point{}, "x")
	del := NewDelete(LineRange(0, 0, 1))
	rep := NewReplace(LineRange(0, 0, 1), "y")

	assert.True(t, ins.IsInsert())
	assert.True(t, del.IsDelete())
	assert.True(t, rep.IsReplace())
	assert.True(t, NewInsert(Point{}, "").IsNoOp())
	assert.Equal(t, `Insert((0:0), "x")`, ins.String())
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 3, ByteColumn("héllo", 2))
	assert.Equal(t, 2, CharColumn("héllo", 3))
	assert.Equal(t, 6, ByteColumn("héllo", 99))
	assert.Equal(t, 0, ByteColumn("abc", 0))
}

func TestApplyReplaceMatchesSplice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[abc\n]{0,30}`).Draw(t, "text")
		a := rapid.IntRange(0, len(text)).Draw(t, "a")
		b := rapid.IntRange(a, len(text)).Draw(t, "b")
		ins := rapid.StringMatching(`[xyz\n]{0,5}`).Draw(t, "insert")

		snap := NewSnapshot(text)
		r := NewRange(snap.PointAt(a), snap.PointAt(b))
		if snap.Offset(r.Start) != a || snap.Offset(r.End) != b {
			t.Fatalf("offset round trip failed for %q at %d..%d", text, a, b)
		}

		after, err := snap.Apply([]Edit{NewReplace(r, ins)})
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if want := text[:a] + ins + text[b:]; after.Text() != want {
			t.Fatalf("expected %q, got %q", want, after.Text())
		}
	})
}

func TestASCIIColumnsAreIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "text")
		col := rapid.IntRange(0, len(text)).Draw(t, "col")

		if got := ByteColumn(text, CharColumn(text, col)); got != col {
			t.Fatalf("expected %d, got %d", col, got)
		}
	})
}
