package server

import (
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
)

// Column units accepted in Request.Columns.
const (
	ColumnsByte = "byte"
	ColumnsChar = "char"
)

// Position is a zero-based line/column position.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Range is a half-open span of text.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Selection is an anchor/active pair. Equal positions denote a cursor.
type Selection struct {
	Anchor Position `json:"anchor"`
	Active Position `json:"active"`
}

// Edit replaces Range of the request text with Text.
type Edit struct {
	Range Range  `json:"range"`
	Text  string `json:"text"`
}

// Request is one command invocation.
type Request struct {
	// ID correlates the response; a random id is assigned when empty.
	ID string `json:"id,omitempty"`

	// Command is the command name, e.g. "comment.toggle".
	Command string `json:"command"`

	// Language is the host language identifier. When empty it is
	// detected from Path.
	Language string `json:"language,omitempty"`

	// Path is the document path, used only for language detection.
	Path string `json:"path,omitempty"`

	// Text is the full document text.
	Text string `json:"text"`

	// Selections is the selection state; empty means a cursor at 0:0.
	Selections []Selection `json:"selections,omitempty"`

	// Clipboard is the host clipboard content. When absent the server
	// uses its own clipboard.
	Clipboard *string `json:"clipboard,omitempty"`

	// Columns is the unit of every column in the request and the
	// response: "byte" (default) or "char" (grapheme clusters).
	Columns string `json:"columns,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	// Edits is the edit batch, in coordinates of the request text.
	Edits []Edit `json:"edits,omitempty"`

	// Selections is the selection state after the edits are applied.
	Selections []Selection `json:"selections,omitempty"`

	// Clipboard is text the host should place on its clipboard.
	Clipboard *string `json:"clipboard,omitempty"`

	Error string `json:"error,omitempty"`
}

// columns converts positions between the wire unit and byte columns of a
// snapshot.
type columns struct {
	chars bool
}

func (c columns) toPoint(snap *buffer.Snapshot, p Position) buffer.Point {
	pt := buffer.Point{Line: p.Line, Column: p.Column}
	if c.chars && p.Line >= 0 && p.Line < snap.LineCount() {
		pt.Column = buffer.ByteColumn(snap.LineText(p.Line), p.Column)
	}
	return snap.Clamp(pt)
}

func (c columns) fromPoint(snap *buffer.Snapshot, p buffer.Point) Position {
	col := p.Column
	if c.chars && p.Line >= 0 && p.Line < snap.LineCount() {
		col = buffer.CharColumn(snap.LineText(p.Line), p.Column)
	}
	return Position{Line: p.Line, Column: col}
}

func (c columns) toSelections(snap *buffer.Snapshot, sels []Selection) []cursor.Selection {
	out := make([]cursor.Selection, 0, len(sels))
	for _, s := range sels {
		out = append(out, cursor.NewSelection(c.toPoint(snap, s.Anchor), c.toPoint(snap, s.Active)))
	}
	return out
}

func (c columns) fromSelections(snap *buffer.Snapshot, sels []cursor.Selection) []Selection {
	out := make([]Selection, 0, len(sels))
	for _, s := range sels {
		out = append(out, Selection{
			Anchor: c.fromPoint(snap, s.Anchor),
			Active: c.fromPoint(snap, s.Active),
		})
	}
	return out
}

func (c columns) fromEdits(snap *buffer.Snapshot, edits []buffer.Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		out = append(out, Edit{
			Range: Range{
				Start: c.fromPoint(snap, e.Range.Start),
				End:   c.fromPoint(snap, e.Range.End),
			},
			Text: e.NewText,
		})
	}
	return out
}
