package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Operation(42).String())
}

func TestWatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	require.NoError(t, w.Watch(a))
	assert.Len(t, w.WatchedFiles(), 2)

	require.NoError(t, w.Unwatch(a))
	assert.Equal(t, []string{b}, w.WatchedFiles())
	require.NoError(t, w.Unwatch(a))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("tab_size = 2\n"), 0o644))

	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	var rec recorder
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))
	w.Start()
	assert.True(t, w.IsRunning())

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("tab_size = 4\n"), 0o644))
	}

	require.Eventually(t, func() bool { return rec.count() > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, path, rec.last().Path)
}

func TestWatcherSeesCreation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	w, err := New(WithDebounce(0))
	require.NoError(t, err)
	defer w.Stop()

	var rec recorder
	w.OnChange(rec.handle)
	require.NoError(t, w.Watch(path))
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("tab_size: 4\n"), 0o644))
	require.Eventually(t, func() bool { return rec.count() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStop(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
}
