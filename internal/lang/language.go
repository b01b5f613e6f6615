package lang

// Language is the closed set of languages commands know about.
type Language uint8

// Supported languages.
const (
	Unknown Language = iota
	JavaScript
	JavaScriptReact
	TypeScript
	TypeScriptReact
	Vue
	JSON
	JSONC
	Snippets
	Rust
	Java
	CSharp
	Go
	C
	CPP
	Proto3
	Prisma
	GraphQL
	Razor
	Log
	SQL
	MSSQL
	PostgreSQL
	YAML
	DockerCompose
	Dockerfile
	PowerShell
	Env
	Python
	Shell
	Properties
	INI
	HTML
	XML
	Markdown

	languageCount
)

// hostIDs are the identifiers editors use for each language.
var hostIDs = [languageCount]string{
	Unknown:         "",
	JavaScript:      "javascript",
	JavaScriptReact: "javascriptreact",
	TypeScript:      "typescript",
	TypeScriptReact: "typescriptreact",
	Vue:             "vue",
	JSON:            "json",
	JSONC:           "jsonc",
	Snippets:        "snippets",
	Rust:            "rust",
	Java:            "java",
	CSharp:          "csharp",
	Go:              "go",
	C:               "c",
	CPP:             "cpp",
	Proto3:          "proto3",
	Prisma:          "prisma",
	GraphQL:         "graphql",
	Razor:           "aspnetcorerazor",
	Log:             "log",
	SQL:             "sql",
	MSSQL:           "msql",
	PostgreSQL:      "pg",
	YAML:            "yaml",
	DockerCompose:   "dockercompose",
	Dockerfile:      "dockerfile",
	PowerShell:      "powershell",
	Env:             "env",
	Python:          "python",
	Shell:           "shellscript",
	Properties:      "properties",
	INI:             "ini",
	HTML:            "html",
	XML:             "xml",
	Markdown:        "markdown",
}

var byHostID = func() map[string]Language {
	m := make(map[string]Language, languageCount)
	for l := JavaScript; l < languageCount; l++ {
		m[hostIDs[l]] = l
	}
	return m
}()

// Parse maps a host language identifier to a Language.
func Parse(hostID string) (Language, bool) {
	l, ok := byHostID[hostID]
	return l, ok
}

// String returns the host identifier of the language.
func (l Language) String() string {
	if l >= languageCount {
		return ""
	}
	return hostIDs[l]
}

// All returns every supported language in declaration order.
func All() []Language {
	out := make([]Language, 0, languageCount-1)
	for l := JavaScript; l < languageCount; l++ {
		out = append(out, l)
	}
	return out
}

// IsScript returns true for the JavaScript and TypeScript family.
func (l Language) IsScript() bool {
	switch l {
	case JavaScript, JavaScriptReact, TypeScript, TypeScriptReact:
		return true
	}
	return false
}

// IsTypeScript returns true for TypeScript and TSX.
func (l Language) IsTypeScript() bool {
	return l == TypeScript || l == TypeScriptReact
}
