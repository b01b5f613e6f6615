// Package buffer provides the line-oriented text model that rewrite commands
// read from and write to.
//
// The package provides:
//
//   - Point and Range: line/column coordinates (0-indexed, column in bytes)
//   - Line: one line of text plus derived facts (trimmed text, indentation,
//     ranges with and without the line break)
//   - Snapshot: an immutable view of the text that commands inspect
//   - Edit: insert, replace and delete operations expressed in pre-edit
//     coordinates
//   - Buffer: the mutable holder that applies a batch of edits atomically
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("let a = 1\nlet b = 2\n")
//	snap := buf.Snapshot()
//
//	line := snap.LineAt(1)
//	edits := []buffer.Edit{
//	    buffer.NewReplace(line.Range, "const b = 2"),
//	    buffer.NewInsert(buffer.Point{Line: 0, Column: 0}, "// "),
//	}
//
//	// All edits reference the same pre-edit snapshot.
//	result, err := buf.ApplyEdits(edits)
//	cursor := result.MapPoint(buffer.Point{Line: 1, Column: 0})
//
// Line Endings:
//
// The buffer detects the dominant line ending (LF, CRLF or CR) when it is
// created and uses it when joining lines and when normalizing inserted text.
// Commands that synthesize multi-line text should use Snapshot.EOL.
//
// Thread Safety:
//
// Snapshots are immutable and safe to share. Buffer methods are guarded by a
// sync.RWMutex.
package buffer
