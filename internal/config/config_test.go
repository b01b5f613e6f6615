package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/lang"
)

type mapFS map[string]string

func (m mapFS) Open(string) (fs.File, error) { return nil, fs.ErrNotExist }

func (m mapFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m mapFS) Stat(path string) (fs.FileInfo, error) {
	return nil, fs.ErrNotExist
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("", WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Equal(t, 2, s.Exec().TabSize)
	assert.Equal(t, "￥", s.Exec().PreserveMarker)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load("/missing.toml", WithFS(mapFS{}), WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadTOML(t *testing.T) {
	fsys := mapFS{"/s.toml": `
tab_size = 4
plugin_dir = "/plugins"

[languages.rust]
decl_keywords = ["let", "let mut"]

[languages.python]
line_comment = ";"
`}
	s, err := Load("/s.toml", WithFS(fsys), WithEnv(nil))
	require.NoError(t, err)

	assert.Equal(t, 4, s.TabSize)
	assert.Equal(t, "￥", s.PreserveMarker)
	assert.Equal(t, "/plugins", s.PluginPath())
	assert.Equal(t, []string{"let", "let mut"}, s.Languages["rust"].DeclKeywords)

	py := s.Strategy(lang.For(lang.Python))
	assert.Equal(t, ";", py.Profile().LineComment)
	assert.Same(t, lang.For(lang.Go), s.Strategy(lang.For(lang.Go)))
	assert.Nil(t, s.Strategy(nil))
}

func TestLoadYAML(t *testing.T) {
	fsys := mapFS{"/s.yml": "preserve_marker: \"@keep\"\nlog_level: debug\n"}
	s, err := Load("/s.yml", WithFS(fsys), WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, "@keep", s.PreserveMarker)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 2, s.TabSize)
}

func TestEnvOverridesFile(t *testing.T) {
	fsys := mapFS{"/s.toml": "tab_size = 4\n"}
	s, err := Load("/s.toml", WithFS(fsys), WithEnv([]string{
		"WONDERLAND_TAB_SIZE=8",
		"WONDERLAND_PRESERVE_MARKER=keep",
		"WONDERLAND_CONFIG=/ignored",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8, s.TabSize)
	assert.Equal(t, "keep", s.PreserveMarker)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		files mapFS
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown format",
			path: "/s.json",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownFormat)
			},
		},
		{
			name:  "parse error",
			path:  "/s.toml",
			files: mapFS{"/s.toml": "tab_size = [\n"},
			check: func(t *testing.T, err error) {
				var perr *ParseError
				assert.True(t, errors.As(err, &perr))
			},
		},
		{
			name:  "unknown key",
			path:  "/s.toml",
			files: mapFS{"/s.toml": "tabsize = 4\n"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnknownSetting)
				assert.Contains(t, err.Error(), "tabsize")
			},
		},
		{
			name:  "tab size out of range",
			path:  "/s.toml",
			files: mapFS{"/s.toml": "tab_size = 0\n"},
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "tab_size", verr.Path)
				assert.ErrorIs(t, err, ErrValidationFailed)
			},
		},
		{
			name:  "unknown language",
			path:  "/s.yaml",
			files: mapFS{"/s.yaml": "languages:\n  cobol:\n    line_comment: \"*\"\n"},
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "languages.cobol", verr.Path)
			},
		},
		{
			name:  "unknown language field",
			path:  "/s.yaml",
			files: mapFS{"/s.yaml": "languages:\n  go:\n    block_comment: \"/*\"\n"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrValidationFailed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := tt.files
			if files == nil {
				files = mapFS{}
			}
			_, err := Load(tt.path, WithFS(files), WithEnv(nil))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	s.PreserveMarker = "a\nb"
	assert.ErrorIs(t, s.Validate(), ErrValidationFailed)

	s = Default()
	s.LogLevel = "loud"
	assert.ErrorIs(t, s.Validate(), ErrValidationFailed)

	s = Default()
	s.Languages = map[string]LanguageSettings{"go": {DeclKeywords: []string{" "}}}
	assert.ErrorIs(t, s.Validate(), ErrValidationFailed)
}

func TestConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab_size = 4\n"), 0o644))

	cfg, err := Open(path, WithEnv(nil))
	require.NoError(t, err)
	defer cfg.Close()
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, 4, cfg.Settings().TabSize)

	var seen atomic.Int64
	cfg.OnChange(func(s Settings) { seen.Store(int64(s.TabSize)) })

	require.NoError(t, os.WriteFile(path, []byte("tab_size = 6\n"), 0o644))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, 6, cfg.Settings().TabSize)
	assert.Equal(t, int64(6), seen.Load())

	// a broken file keeps the previous settings
	require.NoError(t, os.WriteFile(path, []byte("tab_size = \n"), 0o644))
	require.Error(t, cfg.Reload())
	assert.Equal(t, 6, cfg.Settings().TabSize)
}

func TestConfigReloadListenersAddedDuringNotify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab_size = 4\n"), 0o644))

	cfg, err := Open(path, WithEnv(nil))
	require.NoError(t, err)
	defer cfg.Close()

	var first, late atomic.Int64
	cfg.OnChange(func(s Settings) {
		first.Add(1)
		cfg.OnChange(func(Settings) { late.Add(1) })
	})

	require.NoError(t, cfg.Reload())
	assert.Equal(t, int64(1), first.Load())
	assert.Equal(t, int64(0), late.Load(), "listener added during notify waits for the next reload")

	require.NoError(t, cfg.Reload())
	assert.Equal(t, int64(2), first.Load())
	assert.Equal(t, int64(1), late.Load())
}

func TestConfigWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tab_size: 2\n"), 0o644))

	cfg, err := Open(path, WithEnv(nil))
	require.NoError(t, err)
	defer cfg.Close()
	require.NoError(t, cfg.Watch())
	require.NoError(t, cfg.Watch())

	require.NoError(t, os.WriteFile(path, []byte("tab_size: 3\n"), 0o644))
	require.Eventually(t, func() bool {
		return cfg.Settings().TabSize == 3
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, cfg.Close())
	require.NoError(t, cfg.Close())
}

func TestWatchWithoutFile(t *testing.T) {
	cfg, err := Open("", WithEnv(nil))
	require.NoError(t, err)
	assert.NoError(t, cfg.Watch())
	assert.NoError(t, cfg.Close())
}
