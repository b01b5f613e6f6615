package rewrite

import "strings"

// GoMethodStubs generates empty methods for a receiver. The receiver is
// read from a line such as "func (s *Server) Existing() {", keeping the
// text up to the closing parenthesis of the receiver.
func GoMethodStubs(receiverLine string, methods []string, eol string) (string, bool) {
	_, rest := SplitIndent(receiverLine)
	if !strings.HasPrefix(rest, "func") {
		return "", false
	}
	end := strings.Index(rest, ")")
	if end < 0 {
		return "", false
	}
	receiver := rest[:end+1]

	var stubs []string
	for _, m := range methods {
		if m = strings.TrimSpace(m); m != "" {
			stubs = append(stubs, receiver+" "+m+" {"+eol+eol+"}")
		}
	}
	if len(stubs) == 0 {
		return "", false
	}
	return strings.Join(stubs, eol+eol), true
}
