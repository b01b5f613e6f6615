package rewrite

import (
	"regexp"
	"strings"
)

var (
	equalsOperatorPattern = regexp.MustCompile(`(\s+bool\s+operator\s*)==(\s*\((.*?)\)).*`)
	paramSplitPattern     = regexp.MustCompile(`\s*,\s*`)
)

// CSharpNotEqualsOperator derives the != operator from an == operator
// declaration: "bool operator ==(Point a, Point b) ..." gives
// "bool operator !=(Point a, Point b) => !(a == b);".
func CSharpNotEqualsOperator(text string) (string, bool) {
	loc := equalsOperatorPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	head := text[loc[2]:loc[3]]
	params := text[loc[4]:loc[5]]

	var names []string
	for _, p := range paramSplitPattern.Split(strings.TrimSpace(text[loc[6]:loc[7]]), -1) {
		fields := strings.Fields(p)
		if len(fields) < 2 {
			return "", false
		}
		names = append(names, fields[len(fields)-1])
	}
	return text[:loc[0]] + head + "!=" + params + " => !(" + strings.Join(names, " == ") + ");", true
}

var returnPrefix = regexp.MustCompile(`^return\b\s*`)

// CSharpExpressionBody collapses the statements of a block body into an
// expression body. Assignments "x = v;" become " => x = v;", several
// become a tuple assignment " => (x, y) = (v, w);" and a return statement
// becomes " => v;". The result is appended to the member signature.
func CSharpExpressionBody(lines []string) (string, bool) {
	var targets, values []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if !strings.Contains(t, ";") {
			continue
		}
		stmt := strings.Replace(t, ";", "", 1)
		target, value, found := strings.Cut(stmt, "=")
		if !found || returnPrefix.MatchString(t) {
			values = append(values, strings.TrimSpace(returnPrefix.ReplaceAllString(stmt, "")))
			break
		}
		targets = append(targets, strings.TrimSpace(target))
		values = append(values, strings.TrimSpace(value))
	}

	switch {
	case len(targets) == 1:
		return " => " + targets[0] + " = " + values[0] + ";", true
	case len(targets) > 1:
		if len(values) != len(targets) {
			return "", false
		}
		return " => (" + strings.Join(targets, ", ") + ") = (" + strings.Join(values, ", ") + ");", true
	case len(values) == 1 && values[0] != "":
		return " => " + values[0] + ";", true
	default:
		return "", false
	}
}

// CSharpBlockBody expands an expression-bodied member into a block body
// that returns the expression.
func CSharpBlockBody(text, tab, eol string) (string, bool) {
	arrow := strings.Index(text, "=>")
	if arrow < 0 {
		return "", false
	}
	value := strings.TrimSuffix(strings.TrimSpace(text[arrow+2:]), ";")
	if value == "" {
		return "", false
	}
	indent := Indent(text)
	head := strings.TrimRight(text[:arrow], " \t")
	return head + " {" + eol + indent + tab + "return " + value + ";" + eol + indent + "}", true
}

var tuplePattern = regexp.MustCompile(`\((.*?)\)`)

// CSharpTupleBlock expands a tuple assignment "(a, b) = (x, y)" into a
// block with one assignment per element.
func CSharpTupleBlock(text, tab, eol string) (string, bool) {
	groups := tuplePattern.FindAllStringSubmatch(text, 2)
	if len(groups) < 2 {
		return "", false
	}
	keys := splitTrim(groups[0][1])
	values := splitTrim(groups[1][1])
	if len(keys) == 0 || len(keys) != len(values) {
		return "", false
	}

	indent := Indent(text)
	var sb strings.Builder
	sb.WriteString(indent + "{")
	for i, k := range keys {
		sb.WriteString(eol + indent + tab + k + " = " + values[i] + ";")
	}
	sb.WriteString(eol + indent + "}")
	return sb.String(), true
}

func splitTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var (
	staticMethodPattern = regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal)\s+)*static\s+(\w+)\s+(\w+)\s*\((.*)\)`)
	varPrefix           = regexp.MustCompile(`^(?:var\s+)?`)
)

// IsStaticMethod returns true if text declares a static method.
func IsStaticMethod(text string) bool {
	return staticMethodPattern.MatchString(text)
}

// CSharpDelegate binds a static method to a delegate variable. The target
// line names the variable; a void method becomes an Action, anything else
// a Func. Only the first parameter type is carried over.
func CSharpDelegate(target, method string) (string, bool) {
	m := staticMethodPattern.FindStringSubmatch(method)
	if m == nil {
		return "", false
	}
	returnType, fnName := m[1], m[2]

	indent, rest := SplitIndent(target)
	name := strings.TrimSpace(varPrefix.ReplaceAllString(strings.TrimSuffix(rest, ";"), ""))
	if name == "" {
		name = lowerFirst(fnName)
	}
	if !identPattern.MatchString(name) {
		return "", false
	}

	var param string
	if fields := strings.Fields(m[3]); len(fields) > 0 {
		param = fields[0]
	}

	var decl string
	switch {
	case returnType == "void" && param == "":
		decl = "Action"
	case returnType == "void":
		decl = "Action<" + param + ">"
	case param == "":
		decl = "Func<" + returnType + ">"
	default:
		decl = "Func<" + param + ", " + returnType + ">"
	}
	return indent + decl + " " + name + " = " + fnName + ";", true
}

var packagePattern = regexp.MustCompile(`dotnet add package\s+(\S+)\s+--version\s+(\S+)`)

// PackageReference converts a "dotnet add package" command line into a
// PackageReference element.
func PackageReference(command string) (string, bool) {
	m := packagePattern.FindStringSubmatch(command)
	if m == nil {
		return "", false
	}
	return `<PackageReference Include="` + m[1] + `" Version="` + m[2] + `" />`, true
}
