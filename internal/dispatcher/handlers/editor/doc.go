// Package editor provides the "editor" namespace: line level edits that do
// not restructure code.
//
// # Swap
//
// The SwapHandler type multiplexes one two-cursor gesture:
//   - editor.swap with two non-empty selections exchanges their text
//   - with one empty and one non-empty selection, copies the text to the
//     empty cursor (and to the clipboard when it fits on one line)
//   - with two empty cursors, swaps or relocates their lines
//   - with a single selection, erases the line but keeps its indentation
//
// # Line Operations
//
// The LineHandler type provides:
//   - editor.lineEnd: move the cursor to the end of its line
//   - editor.insertSemicolon: terminate the selected lines with ";"
//   - editor.moveImportToTop: move an import statement to the first line
//   - editor.removeEmptyLines: delete blank lines of a C# document
//
// # Clipboard Operations
//
// The ClipboardHandler type provides:
//   - editor.packageReference: turn a "dotnet add package" command from
//     the clipboard into a PackageReference element
//
// # Usage
//
// Register the combined handler with the dispatcher:
//
//	d.RegisterNamespace(editor.NewCombinedHandler())
package editor
