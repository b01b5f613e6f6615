package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var (
	jsDecl     = Declaration{Keywords: []string{"const", "let"}}
	tsDecl     = Declaration{Keywords: []string{"const", "let", "type"}}
	goDecl     = Declaration{Keywords: []string{"var"}, Walrus: true}
	pyDecl     = Declaration{Bare: true}
	csDecl     = Declaration{Typed: true, Fallback: "var", Terminator: ";"}
	rustDecl   = Declaration{Keywords: []string{"let", "let mut"}, Terminator: ";"}
	cLikeDecl  = Declaration{Keywords: []string{"var"}}
	noKeywords = Declaration{}
)

func TestExtractDeclaration(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expr     string
		decl     Declaration
		wantLine string
		wantName string
		ok       bool
	}{
		{"js blank line synthesizes", "", "a + b", jsDecl, "const result = a + b", "result", true},
		{"js bare name", "  total", "a + b", jsDecl, "  const total = a + b", "total", true},
		{"js keeps let", "  let total", "a + b", jsDecl, "  let total = a + b", "total", true},
		{"ts type keyword", "type Alias", "string | number", tsDecl, "type Alias = string | number", "Alias", true},
		{"go walrus", "\tcount", "len(xs)", goDecl, "\tcount := len(xs)", "count", true},
		{"go var", "\tvar count", "len(xs)", goDecl, "\tvar count = len(xs)", "count", true},
		{"python bare", "    total", "a + b", pyDecl, "    total = a + b", "total", true},
		{"csharp fallback var", "    total", "a + b", csDecl, "    var total = a + b;", "total", true},
		{"csharp typed", "    int total", "a + b;", csDecl, "    int total = a + b;", "total", true},
		{"rust let mut", "    let mut n", "v.len()", rustDecl, "    let mut n = v.len();", "n", true},
		{"rust let", "    n", "v.len()", rustDecl, "    let n = v.len();", "n", true},
		{"default var", "x", "1 + 2", cLikeDecl, "var x = 1 + 2", "x", true},
		{"keywordless", "x", "1", noKeywords, "x = 1", "x", true},
		{"indent kept on blank", "    ", "getUserName()", jsDecl, "    const userName = getUserName()", "userName", true},
		{"no leading word", "  }", "a", jsDecl, "", "", false},
		{"empty expression", "x", "   ", jsDecl, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, name, ok := ExtractDeclaration(tt.line, tt.expr, tt.decl)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestExtractDeclarationShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		indent := rapid.StringMatching(`[ \t]{0,4}`).Draw(t, "indent")
		name := rapid.StringMatching(`[a-z][a-zA-Z0-9]{0,8}`).Draw(t, "name")
		expr := rapid.StringMatching(`[a-z0-9][a-z0-9 +*()]{0,12}[a-z0-9)]`).Draw(t, "expr")
		if name == "const" || name == "let" {
			name += "x"
		}

		line, got, ok := ExtractDeclaration(indent+name, expr, jsDecl)
		if !ok {
			t.Fatalf("no match for %q", indent+name)
		}
		if got != name {
			t.Fatalf("expected name %q, got %q", name, got)
		}
		if want := indent + "const " + name + " = " + expr; line != want {
			t.Fatalf("expected %q, got %q", want, line)
		}
	})
}

func TestSynthesizeName(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"getUserName()", "userName"},
		{"this.getTotal(a, b)", "total"},
		{"api.FetchItems()", "fetchItems"},
		{"getter()", "getter"},
		{"a.b.count", "count"},
		{"user?.profile", "profile"},
		{"await load(url)", "load"},
		{"a + b", "result"},
		{"42", "result"},
		{"$()", "result"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, SynthesizeName(tt.expr))
		})
	}
}

func TestGoStructFromBlock(t *testing.T) {
	got, ok := GoStructFromBlock("Config", "\tName string\n\tPort int", "\n")
	assert.True(t, ok)
	assert.Equal(t, "type Config struct {\n\tName string\n\tPort int\n}", got)
	assert.Equal(t, "\tConfig *Config", GoStructField("\t", "Config"))

	_, ok = GoStructFromBlock("not valid", "\tA int", "\n")
	assert.False(t, ok)
}

func TestShellHelpers(t *testing.T) {
	name, ok := ShellAssignmentName(`out=$(ls) dir=`)
	assert.True(t, ok)
	assert.Equal(t, "dir", name)

	_, ok = ShellAssignmentName("echo hi")
	assert.False(t, ok)

	assert.True(t, ShellTerminate("  echo"))
	assert.False(t, ShellTerminate(" ; echo"))
	assert.False(t, ShellTerminate("   "))
}
