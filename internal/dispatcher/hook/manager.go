package hook

import (
	"sort"
	"sync"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/input"
)

// Manager holds dispatch hooks ordered by priority.
type Manager struct {
	mu        sync.RWMutex
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a hook to the pre and/or post lists depending on the
// interfaces it implements. A hook with the same name is replaced.
func (m *Manager) Register(h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pre, ok := h.(PreDispatchHook); ok {
		m.preHooks = replaceOrAppend(m.preHooks, pre)
		sort.SliceStable(m.preHooks, func(i, j int) bool {
			return m.preHooks[i].Priority() > m.preHooks[j].Priority()
		})
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.postHooks = replaceOrAppend(m.postHooks, post)
		sort.SliceStable(m.postHooks, func(i, j int) bool {
			return m.postHooks[i].Priority() < m.postHooks[j].Priority()
		})
	}
}

func replaceOrAppend[T Hook](hooks []T, h T) []T {
	for i, existing := range hooks {
		if existing.Name() == h.Name() {
			hooks[i] = h
			return hooks
		}
	}
	return append(hooks, h)
}

// Unregister removes a hook by name from both lists.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed bool
	m.preHooks, removed = removeNamed(m.preHooks, name)
	var postRemoved bool
	m.postHooks, postRemoved = removeNamed(m.postHooks, name)
	return removed || postRemoved
}

func removeNamed[T Hook](hooks []T, name string) ([]T, bool) {
	for i, h := range hooks {
		if h.Name() == name {
			return append(hooks[:i], hooks[i+1:]...), true
		}
	}
	return hooks, false
}

// RunPreDispatch runs pre-dispatch hooks in priority order.
// Returns false if any hook cancels the command.
func (m *Manager) RunPreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	m.mu.RLock()
	hooks := append([]PreDispatchHook(nil), m.preHooks...)
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// RunPostDispatch runs post-dispatch hooks from lowest to highest priority.
func (m *Manager) RunPostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := append([]PostDispatchHook(nil), m.postHooks...)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// PreHookNames returns the names of the pre-dispatch hooks in run order.
func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.preHooks))
	for i, h := range m.preHooks {
		names[i] = h.Name()
	}
	return names
}

// PostHookNames returns the names of the post-dispatch hooks in run order.
func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.postHooks))
	for i, h := range m.postHooks {
		names[i] = h.Name()
	}
	return names
}
