package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
)

// Document is a buffer with its selection state and language.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	// LanguageID is the host language identifier.
	LanguageID string

	// ReadOnly rejects edits.
	ReadOnly bool

	buf *buffer.Buffer

	mu         sync.RWMutex
	selections cursor.Set

	modified atomic.Bool
}

// NewDocument creates a document from content. An empty languageID is
// detected from the path.
func NewDocument(path, content, languageID string) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	if languageID == "" {
		languageID = DetectLanguage(path)
	}
	return &Document{
		Path:       path,
		Name:       name,
		LanguageID: languageID,
		buf:        buffer.NewBufferFromString(content),
		selections: cursor.Set{cursor.NewCursor(buffer.Point{})},
	}
}

// OpenDocument reads a file into a document.
func OpenDocument(path, languageID string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(path, string(content), languageID), nil
}

// Buffer returns the document's buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Snapshot returns the current snapshot.
func (d *Document) Snapshot() *buffer.Snapshot {
	return d.buf.Snapshot()
}

// Text returns the document content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// Selections returns a copy of the selection state.
func (d *Document) Selections() cursor.Set {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append(cursor.Set(nil), d.selections...)
}

// SetSelections replaces the selection state, clamped to the buffer.
// An empty set leaves one cursor at the start of the document.
func (d *Document) SetSelections(sels ...cursor.Selection) {
	set := cursor.Set(append([]cursor.Selection(nil), sels...)).Clamp(d.buf.Snapshot())
	if len(set) == 0 {
		set = cursor.Set{cursor.NewCursor(buffer.Point{})}
	}
	d.mu.Lock()
	d.selections = set
	d.mu.Unlock()
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified.Store(modified)
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Save writes the content back to Path, keeping the file mode.
func (d *Document) Save() error {
	if d.IsScratch() {
		return NewOperationError("save", d.Name, ErrScratchDocument)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(d.Path, []byte(d.Text()), mode); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	d.SetModified(false)
	return nil
}

// languageByExt maps file extensions to host language identifiers.
var languageByExt = map[string]string{
	".js":            "javascript",
	".mjs":           "javascript",
	".cjs":           "javascript",
	".jsx":           "javascriptreact",
	".ts":            "typescript",
	".mts":           "typescript",
	".tsx":           "typescriptreact",
	".vue":           "vue",
	".json":          "json",
	".jsonc":         "jsonc",
	".code-snippets": "snippets",
	".rs":            "rust",
	".java":          "java",
	".cs":            "csharp",
	".go":            "go",
	".c":             "c",
	".h":             "c",
	".cc":            "cpp",
	".cpp":           "cpp",
	".cxx":           "cpp",
	".hpp":           "cpp",
	".proto":         "proto3",
	".prisma":        "prisma",
	".graphql":       "graphql",
	".gql":           "graphql",
	".cshtml":        "aspnetcorerazor",
	".razor":         "aspnetcorerazor",
	".log":           "log",
	".sql":           "sql",
	".yaml":          "yaml",
	".yml":           "yaml",
	".ps1":           "powershell",
	".env":           "env",
	".py":            "python",
	".sh":            "shellscript",
	".bash":          "shellscript",
	".zsh":           "shellscript",
	".properties":    "properties",
	".ini":           "ini",
	".cfg":           "ini",
	".toml":          "ini",
	".html":          "html",
	".htm":           "html",
	".xml":           "xml",
	".csproj":        "xml",
	".svg":           "xml",
	".md":            "markdown",
	".markdown":      "markdown",
}

// CheckLanguage returns ErrUnknownLanguage for an identifier that has no
// comment strategy.
func CheckLanguage(id string) error {
	if _, ok := lang.Parse(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, id)
	}
	return nil
}

// DetectLanguage returns the host language identifier for a file path,
// or "" when unknown.
func DetectLanguage(path string) string {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") || strings.HasSuffix(base, ".dockerfile"):
		return "dockerfile"
	case strings.HasPrefix(base, "docker-compose") || strings.HasPrefix(base, "compose."):
		if ext := filepath.Ext(base); ext == ".yml" || ext == ".yaml" {
			return "dockercompose"
		}
	case base == ".env" || strings.HasPrefix(base, ".env."):
		return "env"
	}
	return languageByExt[filepath.Ext(base)]
}
