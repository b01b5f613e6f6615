package rewrite

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Declaration describes how a language declares a variable.
type Declaration struct {
	// Keywords are the recognized declaration keywords. When the target
	// line carries none of them, Keywords[0] is emitted.
	Keywords []string

	// Typed treats any leading word followed by a name as a declaration
	// keyword, as in "int total".
	Typed bool

	// Fallback is emitted when no keyword is present and Keywords is empty.
	Fallback string

	// Terminator is appended to the declaration, e.g. ";".
	Terminator string

	// Walrus emits "name := E" when the line has no keyword.
	Walrus bool

	// Bare emits "name = E" and reads the leading word of the line as name.
	Bare bool
}

func (d Declaration) pattern() *regexp.Regexp {
	var kw string
	switch {
	case d.Typed:
		kw = `(\w+\s+)?`
	case len(d.Keywords) > 0 && !d.Bare:
		words := make([]string, len(d.Keywords))
		for i, k := range d.Keywords {
			words[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `\s+`)
		}
		// Longest first so "let mut" wins over "let".
		sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
		kw = `((?:` + strings.Join(words, "|") + `)\s+)?`
	default:
		kw = `()`
	}
	return regexp.MustCompile(`^(\s*)` + kw + `(\w+)`)
}

// ExtractDeclaration builds the declaration line that binds expr to a
// variable on a target line.
//
// The target line supplies indentation and the variable name: its leading
// word, after an optional declaration keyword. A blank target line gets a
// name synthesized from expr. A non-blank line without a leading word does
// not match.
func ExtractDeclaration(line, expr string, d Declaration) (newLine, name string, ok bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", "", false
	}

	var indent, keyword string
	if IsBlank(line) {
		indent = line
		name = SynthesizeName(expr)
	} else {
		m := d.pattern().FindStringSubmatch(line)
		if m == nil {
			return "", "", false
		}
		indent, keyword, name = m[1], strings.TrimSpace(m[2]), m[3]
	}

	if d.Terminator != "" {
		expr = strings.TrimSuffix(expr, d.Terminator)
	}

	switch {
	case d.Bare:
		newLine = indent + name + " = " + expr
	case keyword == "" && d.Walrus:
		newLine = indent + name + " := " + expr
	default:
		if keyword == "" {
			keyword = d.Fallback
			if len(d.Keywords) > 0 {
				keyword = d.Keywords[0]
			}
		}
		if keyword != "" {
			keyword += " "
		}
		newLine = indent + keyword + name + " = " + expr + d.Terminator
	}
	return newLine, name, true
}

var (
	identPattern  = regexp.MustCompile(`^[A-Za-z_]\w*$`)
	callPattern   = regexp.MustCompile(`^(?:await\s+)?(?:[A-Za-z_$][\w$]*\.)*([A-Za-z_$][\w$]*)\s*\(`)
	memberPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\??\.[A-Za-z_$][\w$]*)+$`)
)

// SynthesizeName derives a variable name from an expression.
// A call names the result after its callee without a "get" prefix
// (getUserName() gives userName), a member chain after its last member
// (a.b.count gives count), anything else is "result".
func SynthesizeName(expr string) string {
	expr = strings.TrimSpace(expr)

	var name string
	if m := callPattern.FindStringSubmatch(expr); m != nil {
		name = m[1]
		if len(name) > 3 && strings.HasPrefix(name, "get") {
			if r, _ := utf8.DecodeRuneInString(name[3:]); unicode.IsUpper(r) {
				name = name[3:]
			}
		}
	} else if memberPattern.MatchString(expr) {
		name = expr[strings.LastIndex(expr, ".")+1:]
	}

	name = lowerFirst(strings.ReplaceAll(name, "$", ""))
	if !identPattern.MatchString(name) {
		return "result"
	}
	return name
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

var structNamePattern = regexp.MustCompile(`^\w+$`)

// GoStructFromBlock wraps a block of field lines in a named struct type.
func GoStructFromBlock(name, block, eol string) (string, bool) {
	if !structNamePattern.MatchString(name) || IsBlank(block) {
		return "", false
	}
	return "type " + name + " struct {" + eol + block + eol + "}", true
}

// GoStructField returns the pointer field that references an extracted
// struct type.
func GoStructField(indent, name string) string {
	return indent + name + " *" + name
}

var shellAssignPattern = regexp.MustCompile(`(\w+)=`)

// ShellAssignmentName returns the variable assigned closest before the end
// of prefix, reading "name=" forms.
func ShellAssignmentName(prefix string) (string, bool) {
	all := shellAssignPattern.FindAllStringSubmatch(prefix, -1)
	if len(all) == 0 {
		return "", false
	}
	return all[len(all)-1][1], true
}

// ShellTerminate reports whether text inserted in front of rest needs a
// ";" terminator: the first non-space character of rest exists and is not
// already ";".
func ShellTerminate(rest string) bool {
	rest = strings.TrimLeft(rest, " ")
	return rest != "" && rest[0] != ';'
}
