// Package comment provides handlers for comment rewrites.
//
//   - comment.toggle: comment or uncomment the current line or the lines of
//     the selection. The first non-blank line decides the direction. Markup
//     languages wrap the trimmed content in a block comment instead.
//   - comment.duplicate: insert a commented copy of the line or selected
//     lines above the original.
//   - comment.remove: delete line comments and block comments between two
//     cursors or inside a multi-line selection. Lines ending in the preserve
//     marker survive.
//
// HTML and Vue documents resolve the language at the cursor line, so script
// regions are commented with the script's tokens.
package comment
