package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/lang"
)

// Settings are the user-tunable values commands consult.
type Settings struct {
	// TabSize is the width of one synthesized indentation step.
	TabSize int `yaml:"tab_size"`

	// PreserveMarker protects comments from comment removal.
	PreserveMarker string `yaml:"preserve_marker"`

	// PluginDir holds *.lua line rewrites.
	PluginDir string `yaml:"plugin_dir"`

	// LogLevel is the minimum level written when logging is enabled.
	LogLevel string `yaml:"log_level"`

	// Languages overrides profile facts by host language id.
	Languages map[string]LanguageSettings `yaml:"languages"`
}

// LanguageSettings overrides the lexical facts of one language.
type LanguageSettings struct {
	LineComment  string   `yaml:"line_comment"`
	DeclKeywords []string `yaml:"decl_keywords"`
}

// Limits for TabSize.
const (
	MinTabSize = 1
	MaxTabSize = 16
)

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		TabSize:        execctx.DefaultTabSize,
		PreserveMarker: execctx.DefaultPreserveMarker,
		LogLevel:       "info",
	}
}

// defaultMap is Default as a configuration map.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"tab_size":        d.TabSize,
		"preserve_marker": d.PreserveMarker,
		"log_level":       d.LogLevel,
	}
}

// knownKeys are the top-level keys Settings decodes.
var knownKeys = map[string]bool{
	"tab_size":        true,
	"preserve_marker": true,
	"plugin_dir":      true,
	"log_level":       true,
	"languages":       true,
}

// Validate checks every setting and returns the first problem found.
func (s Settings) Validate() error {
	if s.TabSize < MinTabSize || s.TabSize > MaxTabSize {
		return &ValidationError{
			Path:    "tab_size",
			Message: fmt.Sprintf("must be between %d and %d", MinTabSize, MaxTabSize),
			Value:   s.TabSize,
		}
	}
	if s.PreserveMarker == "" || strings.ContainsAny(s.PreserveMarker, "\r\n") {
		return &ValidationError{
			Path:    "preserve_marker",
			Message: "must be a non-empty single-line string",
			Value:   s.PreserveMarker,
		}
	}
	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Message: "must be debug, info, warn or error", Value: s.LogLevel}
	}
	for _, id := range s.languageIDs() {
		if _, ok := lang.Parse(id); !ok {
			return &ValidationError{Path: "languages." + id, Message: "unknown language", Value: id}
		}
		ls := s.Languages[id]
		if strings.TrimSpace(ls.LineComment) != ls.LineComment {
			return &ValidationError{
				Path:    "languages." + id + ".line_comment",
				Message: "must not carry surrounding whitespace",
				Value:   ls.LineComment,
			}
		}
		for _, kw := range ls.DeclKeywords {
			if strings.TrimSpace(kw) == "" {
				return &ValidationError{Path: "languages." + id + ".decl_keywords", Message: "must not be blank", Value: kw}
			}
		}
	}
	return nil
}

func (s Settings) languageIDs() []string {
	ids := make([]string, 0, len(s.Languages))
	for id := range s.Languages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Exec returns the subset of settings handlers read.
func (s Settings) Exec() execctx.Settings {
	return execctx.Settings{TabSize: s.TabSize, PreserveMarker: s.PreserveMarker}
}

// Override returns the profile override configured for a language.
func (s Settings) Override(l lang.Language) lang.Override {
	ls, ok := s.Languages[l.String()]
	if !ok {
		return lang.Override{}
	}
	return lang.Override{LineComment: ls.LineComment, DeclKeywords: ls.DeclKeywords}
}

// Strategy applies the configured override to a resolved strategy.
func (s Settings) Strategy(st *lang.Strategy) *lang.Strategy {
	if st == nil {
		return nil
	}
	return st.WithOverride(s.Override(st.Language()))
}

// PluginPath returns PluginDir with a leading ~ and environment
// variables expanded.
func (s Settings) PluginPath() string {
	dir := os.ExpandEnv(s.PluginDir)
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}
