package lang

import (
	"regexp"

	"github.com/dshills/wonderland/internal/rewrite"
)

// Kind selects the comment removal behavior of a strategy.
type Kind uint8

// Strategy kinds.
const (
	KindCommon Kind = iota // C-like family and token-only languages
	KindMarkup             // HTML, XML, Markdown
	KindPython             // # plus triple-quoted blocks
	KindShell              // # with shebang protection
	KindConfig             // properties and ini files
)

var kindNames = [...]string{
	KindCommon: "common",
	KindMarkup: "markup",
	KindPython: "python",
	KindShell:  "shell",
	KindConfig: "config",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Delimiters is an open/close pair of block comment tokens.
type Delimiters struct {
	Open  string
	Close string
}

// Profile holds the lexical facts of a language.
// Profiles are pure data and never change after construction.
type Profile struct {
	Language    Language
	Kind        Kind
	LineComment string

	// Block is the block comment pair, nil when the language has none.
	Block *Delimiters

	// BlockAlternates are further block comment pairs.
	BlockAlternates []Delimiters

	// DeclKeywords are the declaration keywords in emission order.
	DeclKeywords []string

	// RecognizedDecl are keywords that mark an existing declaration but are
	// never emitted.
	RecognizedDecl []string

	TypedDecl    bool
	FallbackDecl string
	Terminator   string
	Walrus       bool
	BareAssign   bool

	// StartDirective matches a first-line directive such as a shebang.
	StartDirective *regexp.Regexp

	// Markup comments wrap content in a block instead of prefixing lines.
	Markup bool
}

// Declaration returns the extract-variable rules of the language.
func (p Profile) Declaration() rewrite.Declaration {
	kws := make([]string, 0, len(p.DeclKeywords)+len(p.RecognizedDecl))
	kws = append(kws, p.DeclKeywords...)
	kws = append(kws, p.RecognizedDecl...)
	return rewrite.Declaration{
		Keywords:   kws,
		Typed:      p.TypedDecl,
		Fallback:   p.FallbackDecl,
		Terminator: p.Terminator,
		Walrus:     p.Walrus,
		Bare:       p.BareAssign,
	}
}

// DeclKeyword returns the first declaration keyword, or "".
func (p Profile) DeclKeyword() string {
	if len(p.DeclKeywords) == 0 {
		return ""
	}
	return p.DeclKeywords[0]
}

// Blocks returns every block comment pair of the language.
func (p Profile) Blocks() []Delimiters {
	var out []Delimiters
	if p.Block != nil {
		out = append(out, *p.Block)
	}
	return append(out, p.BlockAlternates...)
}

// IsStartDirective returns true if text is the language's first-line
// directive.
func (p Profile) IsStartDirective(text string) bool {
	return p.StartDirective != nil && p.StartDirective.MatchString(text)
}

// Override replaces selected facts of a profile, typically from settings.
type Override struct {
	LineComment  string
	DeclKeywords []string
}

// IsZero returns true if the override changes nothing.
func (o Override) IsZero() bool {
	return o.LineComment == "" && len(o.DeclKeywords) == 0
}

func (p Profile) withOverride(o Override) Profile {
	if o.LineComment != "" {
		p.LineComment = o.LineComment
	}
	if len(o.DeclKeywords) > 0 {
		p.DeclKeywords = append([]string(nil), o.DeclKeywords...)
	}
	return p
}

var (
	cBlock      = &Delimiters{Open: "/*", Close: "*/"}
	markupBlock = &Delimiters{Open: "<!--", Close: "-->"}

	tsCheck   = regexp.MustCompile(`^\s*//\s*@ts-check`)
	tsNoCheck = regexp.MustCompile(`^\s*//\s*@ts-nocheck`)
	shebang   = regexp.MustCompile(`^\s*#!`)
)

// profileFor builds the profile of a language.
func profileFor(l Language) Profile {
	p := Profile{
		Language:     l,
		Kind:         KindCommon,
		LineComment:  "//",
		Block:        cBlock,
		DeclKeywords: []string{"var"},
	}

	switch l {
	case JavaScript, JavaScriptReact:
		p.DeclKeywords = []string{"const", "let"}
		p.RecognizedDecl = []string{"var"}
		p.StartDirective = tsCheck
	case TypeScript, TypeScriptReact:
		p.DeclKeywords = []string{"const", "let", "type"}
		p.RecognizedDecl = []string{"var"}
		p.StartDirective = tsNoCheck
	case Vue:
		p.DeclKeywords = []string{"const", "let", "type"}
		p.RecognizedDecl = []string{"var"}
	case Rust:
		p.DeclKeywords = []string{"let"}
		p.RecognizedDecl = []string{"let mut"}
		p.Terminator = ";"
	case Java:
		p.Terminator = ";"
	case CSharp:
		p.DeclKeywords = nil
		p.TypedDecl = true
		p.FallbackDecl = "var"
		p.Terminator = ";"
	case Go:
		p.DeclKeywords = nil
		p.RecognizedDecl = []string{"var"}
		p.Walrus = true
	case SQL, MSSQL, PostgreSQL:
		p.LineComment = "--"
	case Python:
		p.Kind = KindPython
		p.LineComment = "#"
		p.Block = &Delimiters{Open: `'''`, Close: `'''`}
		p.BlockAlternates = []Delimiters{{Open: `"""`, Close: `"""`}}
		p.DeclKeywords = nil
		p.BareAssign = true
	case Shell:
		p.Kind = KindShell
		p.LineComment = "#"
		p.Block = nil
		p.StartDirective = shebang
	case YAML, DockerCompose, Dockerfile, PowerShell, Env, GraphQL:
		p.LineComment = "#"
		p.Block = nil
	case Properties:
		p.Kind = KindConfig
		p.LineComment = "#"
		p.Block = nil
	case INI:
		p.Kind = KindConfig
		p.LineComment = ";"
		p.Block = nil
	case HTML, XML, Markdown:
		p.Kind = KindMarkup
		p.LineComment = markupBlock.Open
		p.Block = markupBlock
		p.Markup = true
	}
	return p
}
