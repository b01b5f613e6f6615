package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dshills/wonderland/internal/config/loader"
	"github.com/dshills/wonderland/internal/config/watcher"
	"github.com/dshills/wonderland/internal/log"
)

// FileNames are the settings file names looked up in the user config dir.
var FileNames = []string{"settings.toml", "settings.yaml", "settings.yml"}

// DefaultPath returns the first existing settings file under the user
// config directory, or "" if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, "wonderland", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type options struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// Option configures loading.
type Option func(*options)

// WithFS reads settings files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv reads overrides from a KEY=VALUE list instead of the process
// environment.
func WithEnv(env []string) Option {
	return func(o *options) {
		o.env = loader.NewEnvLoaderFromList(loader.DefaultEnvPrefix, env)
	}
}

func buildOptions(opts []Option) options {
	o := options{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.env == nil {
		o.env = loader.NewEnvLoader(loader.DefaultEnvPrefix)
	}
	return o
}

// Load reads settings from path (optional) and the environment, merged
// over the defaults, and validates the result. A missing file is not an
// error.
func Load(path string, opts ...Option) (Settings, error) {
	o := buildOptions(opts)

	merged := defaultMap()
	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return Settings{}, err
		}
		file, err := l.Load()
		if err != nil {
			return Settings{}, err
		}
		if err := checkKeys(path, file); err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := o.env.Load()
	if err != nil {
		return Settings{}, err
	}
	for key := range env {
		if !knownKeys[key] {
			log.Debug(log.CatConfig, "ignoring environment override", "key", key)
			delete(env, key)
		}
	}
	merged = loader.DeepMerge(merged, env)

	s, err := decode(merged)
	if err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func checkKeys(path string, m map[string]any) error {
	var unknown []string
	for key := range m {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: %w: %v", path, ErrUnknownSetting, unknown)
}

// decode converts a merged configuration map into Settings.
func decode(m map[string]any) (Settings, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding settings: %w", err)
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return s, nil
}

// Config holds the current settings and reloads them on demand or when
// the settings file changes.
type Config struct {
	mu sync.RWMutex

	path      string
	opts      []Option
	settings  Settings
	watcher   *watcher.Watcher
	listeners []func(Settings)
	logger    log.Logger
}

// Open loads the settings at path and returns a Config holding them.
func Open(path string, opts ...Option) (*Config, error) {
	s, err := Load(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Config{
		path:     path,
		opts:     opts,
		settings: s,
		logger:   log.For(log.CatConfig),
	}, nil
}

// Path returns the settings file path, possibly empty.
func (c *Config) Path() string {
	return c.path
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// OnChange registers a callback run after every successful reload.
func (c *Config) OnChange(fn func(Settings)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Reload re-reads the settings. On failure the previous settings stay in
// effect and the error is returned.
func (c *Config) Reload() error {
	s, err := Load(c.path, c.opts...)
	if err != nil {
		c.logger.Warn("reload failed, keeping previous settings", "path", c.path, "error", err)
		return err
	}

	c.mu.Lock()
	c.settings = s
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	c.logger.Info("settings reloaded", "path", c.path, "tab_size", s.TabSize)
	for _, fn := range listeners {
		fn(s)
	}
	return nil
}

// Watch starts reloading the settings whenever the file changes. It does
// nothing when the Config has no file.
func (c *Config) Watch() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil {
		return nil
	}

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		c.logger.Warn("watch error", "error", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(c.path); err != nil {
		return errors.Join(err, w.Stop())
	}
	w.OnChange(func(ev watcher.Event) {
		c.logger.Debug("settings file changed", "path", ev.Path, "op", ev.Op.String())
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		_ = c.Reload()
	})
	w.Start()
	c.watcher = w
	return nil
}

// Close stops watching.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop()
}
