package buffer

import "github.com/rivo/uniseg"

// ByteColumn converts a column counted in user-perceived characters
// (grapheme clusters) to a byte column of text.
// Columns past the end of text resolve to len(text).
func ByteColumn(text string, chars int) int {
	if chars <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	col := 0
	for n := 0; n < chars && g.Next(); n++ {
		_, col = g.Positions()
	}
	return col
}

// CharColumn converts a byte column of text to a column counted in
// user-perceived characters.
func CharColumn(text string, col int) int {
	if col <= 0 {
		return 0
	}
	if col > len(text) {
		col = len(text)
	}
	return uniseg.GraphemeClusterCount(text[:col])
}
