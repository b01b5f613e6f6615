package rewrite

import (
	"regexp"
	"strings"
)

var (
	exportPrefix     = regexp.MustCompile(`^(?:export\s+)?`)
	typeAliasPattern = regexp.MustCompile(`^type\b(.*?)=(.*)$`)
	interfacePattern = regexp.MustCompile(`^interface(\s+\w+(?:\s*<.*>)?\s*)(.*)$`)
)

// ConvertTypeInterface turns a TypeScript type alias into an interface and
// an interface into a type alias. Indentation and a leading "export" are
// kept.
func ConvertTypeInterface(text string) (string, bool) {
	indent, rest := SplitIndent(text)
	export := exportPrefix.FindString(rest)
	rest = rest[len(export):]

	if m := typeAliasPattern.FindStringSubmatch(rest); m != nil {
		return indent + export + "interface" + strings.TrimRight(m[1], " \t") + m[2], true
	}
	if m := interfacePattern.FindStringSubmatch(rest); m != nil {
		return indent + export + "type" + m[1] + "= " + m[2], true
	}
	return "", false
}

var functionExprPattern = regexp.MustCompile(`^(\s*)(export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(async\s+)?function\b\s*(?:\w+\s*)?(\(.*)$`)

// FunctionDeclaration turns a function expression bound to a variable into
// a function declaration: "const f = function (a) {" becomes
// "function f(a) {".
func FunctionDeclaration(text string) (string, bool) {
	m := functionExprPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	indent, export, name, async, rest := m[1], m[2], m[3], m[4], m[5]
	return indent + export + async + "function " + name + rest, true
}

var (
	returnFunctionPattern = regexp.MustCompile(`(?s)^(\s*)function\s+(\w+)(\(.*?\))\s*\{.*?\breturn\b(.*?)\s*\}`)
	returnBodyPattern     = regexp.MustCompile(`(?s)^\s*\{.*?\breturn\s+(.*?)\s*\}`)
)

// ArrowFunctionJS turns a function declaration whose body returns a value
// into an arrow function bound to a const. Text after the closing brace is
// kept.
func ArrowFunctionJS(text string) (string, bool) {
	loc := returnFunctionPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	group := func(i int) string { return text[loc[2*i]:loc[2*i+1]] }

	value := strings.TrimSuffix(strings.TrimSpace(group(4)), ";")
	if value == "" {
		return "", false
	}
	return group(1) + "const " + group(2) + " = " + group(3) + " => " + value + text[loc[1]:], true
}

// ReturnBodyJS reduces a block that only returns a value to that value:
// "{ return a + b }" becomes "a + b".
func ReturnBodyJS(text string) (string, bool) {
	m := returnBodyPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	value := strings.TrimSuffix(strings.TrimSpace(m[1]), ";")
	if value == "" {
		return "", false
	}
	return value, true
}

var (
	ifConditionPattern = regexp.MustCompile(`^(\s*)if\s*\((.*)\)\s*$`)
	ifInlinePattern    = regexp.MustCompile(`^(\s*)if\s*\(`)
	blockHeaderPattern = regexp.MustCompile(`^\s*(?:if\s*\(.*\)|else(?:\s+if\s*\(.*\))?|for\s*\(.*\)|while\s*\(.*\))\s*$`)
)

// IfToSingle joins an if statement and its single statement into a short
// circuit expression: "if (ok)" and "run()" become "ok && run()".
func IfToSingle(condition, statement string) (string, bool) {
	m := ifConditionPattern.FindStringSubmatch(condition)
	statement = strings.TrimSpace(statement)
	if m == nil || statement == "" || strings.HasPrefix(statement, "{") {
		return "", false
	}
	return m[1] + m[2] + " && " + statement, true
}

// IfToBlock expands an if statement with an inline body into a braced
// block. The body is indented by tab relative to the if.
func IfToBlock(text, tab, eol string) (string, bool) {
	m := ifInlinePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	indent := m[1]
	end := closingParen(text, len(m[0])-1)
	if end < 0 {
		return "", false
	}
	head, body := text[len(indent):end+1], strings.TrimSpace(text[end+1:])
	if body == "" || strings.HasPrefix(body, "{") {
		return "", false
	}
	return indent + head + " {" + eol + indent + tab + body + eol + indent + "}", true
}

// closingParen returns the index of the parenthesis closing the one at open.
func closingParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// IsBlockHeader returns true if text is a control statement header without
// a body on the same line.
func IsBlockHeader(text string) bool {
	return blockHeaderPattern.MatchString(text)
}

var declPrefix = regexp.MustCompile(`^(?:const|let|var)\s+`)

// MultipleAssignment merges simple assignment lines into one destructuring
// assignment: "a = 1" and "b = 2" become ";[a, b] = [1, 2]".
func MultipleAssignment(lines []string) (string, bool) {
	var keys, values []string
	for _, l := range lines {
		if IsBlank(l) {
			continue
		}
		key, value, found := strings.Cut(strings.TrimSpace(l), "=")
		key = declPrefix.ReplaceAllString(strings.TrimSpace(key), "")
		value = strings.TrimSuffix(strings.TrimSpace(value), ";")
		if !found || key == "" || value == "" {
			return "", false
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	if len(keys) == 0 {
		return "", false
	}
	return ";[" + strings.Join(keys, ", ") + "] = [" + strings.Join(values, ", ") + "]", true
}

var quotedPattern = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

// StringRaw rewrites the first quoted string literal of a line as a
// String.raw template literal.
func StringRaw(text string) (string, bool) {
	loc := quotedPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	var content string
	if loc[2] >= 0 {
		content = text[loc[2]:loc[3]]
	} else {
		content = text[loc[4]:loc[5]]
	}
	if strings.Contains(content, "`") {
		return "", false
	}
	return text[:loc[0]] + "String.raw`" + content + "`" + text[loc[1]:], true
}

var importPattern = regexp.MustCompile(`^\s*import\b`)

// IsImport returns true if text is an import statement.
func IsImport(text string) bool {
	return importPattern.MatchString(text)
}
