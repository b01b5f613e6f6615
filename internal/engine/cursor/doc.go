// Package cursor describes the selection state a command receives.
//
// A Selection is an (Anchor, Active) pair of buffer points. When Anchor
// equals Active the selection is a plain cursor. Commands receive one or
// more selections; several commands only accept exactly one or exactly two
// and treat any other count as a no-op.
//
// Pair classification makes the relationship between two selections
// explicit: which one is the empty insertion point and which one carries
// the source text. Rewrite logic runs only after classification succeeds.
package cursor
