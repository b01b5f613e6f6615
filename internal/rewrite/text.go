package rewrite

import (
	"strings"
	"unicode"
)

// SplitIndent splits text into its leading whitespace and the rest.
func SplitIndent(text string) (indent, rest string) {
	rest = strings.TrimLeftFunc(text, unicode.IsSpace)
	return text[:len(text)-len(rest)], rest
}

// Indent returns the leading whitespace of text.
func Indent(text string) string {
	indent, _ := SplitIndent(text)
	return indent
}

// IsBlank returns true if text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// SplitLines splits text on LF, CRLF or CR.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// EraseKeepIndent clears a line but keeps its indentation.
// A whitespace-only line collapses to the empty string.
// An already empty line does not match.
func EraseKeepIndent(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	indent, rest := SplitIndent(text)
	if rest == "" {
		return "", true
	}
	return indent, true
}

// InsertSemicolon appends ";" after the last non-whitespace character.
// Blank lines and lines already ending in ";" do not match.
func InsertSemicolon(text string) (string, bool) {
	body := strings.TrimRightFunc(text, unicode.IsSpace)
	if body == "" || strings.HasSuffix(body, ";") {
		return "", false
	}
	return body + ";" + text[len(body):], true
}
