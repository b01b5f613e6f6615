package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/dispatcher"
	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/input"
)

func testNamespace(ns string, actions ...string) *handler.BaseNamespaceHandler {
	h := handler.NewBaseNamespaceHandler(ns)
	for _, name := range actions {
		name := name
		h.Register(name, func(input.Action, *execctx.ExecutionContext) handler.Result {
			return handler.SuccessWithMessage(name)
		})
	}
	return h
}

func TestRouterRoute(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("test", testNamespace("test", "test.one"))

	h := r.Route("test.one")
	require.NotNil(t, h)
	assert.Equal(t, "test.one", h.Handle(input.Action{Name: "test.one"}, nil).Message)

	assert.Nil(t, r.Route("test.two"), "namespace does not handle the action")
	assert.Nil(t, r.Route("other.one"))
	assert.Nil(t, r.Route("plain"))
	assert.True(t, r.CanRoute("test.one"))
	assert.False(t, r.CanRoute("test.two"))
}

func TestRouterFallback(t *testing.T) {
	r := dispatcher.NewRouter()
	r.SetFallback(messageHandler("fallback", 0))

	h := r.Route("anything.at.all")
	require.NotNil(t, h)
	assert.Equal(t, "fallback", h.Handle(input.Action{}, nil).Message)
	assert.True(t, r.CanRoute("unknown"))
}

func TestRouterNamespaces(t *testing.T) {
	r := dispatcher.NewRouter()
	r.RegisterNamespace("zeta", testNamespace("zeta"))
	r.RegisterNamespace("alpha", testNamespace("alpha"))
	assert.Equal(t, []string{"alpha", "zeta"}, r.Namespaces())
	assert.NotNil(t, r.GetNamespaceHandler("zeta"))

	r.UnregisterNamespace("zeta")
	assert.Equal(t, []string{"alpha"}, r.Namespaces())
	assert.Nil(t, r.GetNamespaceHandler("zeta"))
}

func TestExtractNames(t *testing.T) {
	tests := []struct {
		full, ns, name string
	}{
		{"comment.toggle", "comment", "toggle"},
		{"lua.upper.case", "lua", "upper.case"},
		{"plain", "", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ns, dispatcher.ExtractNamespace(tt.full), tt.full)
		assert.Equal(t, tt.name, dispatcher.ExtractActionName(tt.full), tt.full)
	}
}
