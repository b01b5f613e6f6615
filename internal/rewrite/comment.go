package rewrite

import "strings"

// IsLineCommented returns true if the first non-whitespace text of a line
// starts with token.
func IsLineCommented(text, token string) bool {
	if token == "" {
		return false
	}
	_, rest := SplitIndent(text)
	return strings.HasPrefix(rest, token)
}

// CommentLine inserts token and one space before the first non-whitespace
// character. Blank lines do not match.
func CommentLine(text, token string) (string, bool) {
	indent, rest := SplitIndent(text)
	if rest == "" || token == "" {
		return "", false
	}
	return indent + token + " " + rest, true
}

// UncommentLine strips token and at most one following space, keeping the
// indentation in front of the token.
func UncommentLine(text, token string) (string, bool) {
	indent, rest := SplitIndent(text)
	if token == "" || !strings.HasPrefix(rest, token) {
		return "", false
	}
	rest = strings.TrimPrefix(rest[len(token):], " ")
	return indent + rest, true
}

// WrapBlock wraps the trimmed content of text in a block comment, keeping
// the indentation of its first line: "<indent><open> content <close>".
func WrapBlock(text, open, close string) (string, bool) {
	content := strings.TrimSpace(text)
	if content == "" {
		return "", false
	}
	return Indent(text) + open + " " + content + " " + close, true
}

// UnwrapBlock removes a block comment that encloses all of text.
// The indentation of the first line is kept.
func UnwrapBlock(text, open, close string) (string, bool) {
	content := strings.TrimSpace(text)
	if !strings.HasPrefix(content, open) || !strings.HasSuffix(content, close) ||
		len(content) < len(open)+len(close) {
		return "", false
	}
	inner := content[len(open) : len(content)-len(close)]
	inner = strings.TrimSuffix(strings.TrimPrefix(inner, " "), " ")
	return Indent(text) + inner, true
}

// IsPreserved returns true if a comment line carries the preserve marker
// as its last non-whitespace text.
func IsPreserved(text, marker string) bool {
	return marker != "" && strings.HasSuffix(strings.TrimSpace(text), marker)
}
