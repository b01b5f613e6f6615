package lang

import (
	"regexp"

	"github.com/dshills/wonderland/internal/engine/buffer"
)

var (
	scriptOpen  = regexp.MustCompile(`(?i)<script\b`)
	scriptClose = regexp.MustCompile(`(?i)</script\s*>?`)
	scriptTS    = regexp.MustCompile(`(?i)<script\b[^>]*\blang\s*=\s*["']?ts(?:x)?\b`)
)

// Effective returns the strategy that applies at a line of a document.
//
// HTML and Vue documents embed scripts. Scanning backward from the line,
// an unclosed <script> tag makes the script's language effective:
// TypeScript for lang="ts", JavaScript otherwise. The tag lines themselves
// and everything outside a script are markup. Other hosts are returned
// unchanged.
func Effective(snap *buffer.Snapshot, line int, s *Strategy) *Strategy {
	if s == nil || (s.Language() != HTML && s.Language() != Vue) {
		return s
	}

	text := snap.LineText(line)
	if scriptOpen.MatchString(text) || scriptClose.MatchString(text) {
		return For(HTML)
	}

	for i := line - 1; i >= 0; i-- {
		text = snap.LineText(i)
		if scriptClose.MatchString(text) {
			return For(HTML)
		}
		if scriptOpen.MatchString(text) {
			if scriptTS.MatchString(text) {
				return For(TypeScript)
			}
			return For(JavaScript)
		}
	}
	return For(HTML)
}

// InScript returns true if the effective language at a line is a script.
func InScript(snap *buffer.Snapshot, line int, s *Strategy) bool {
	return Effective(snap, line, s).Language().IsScript()
}
