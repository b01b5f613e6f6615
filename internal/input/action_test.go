package input

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAction(t *testing.T) {
	a := NewAction("comment.toggle", SourceCLI)
	b := NewAction("comment.toggle", SourceCLI)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "comment", a.Namespace())
	assert.Equal(t, "cli", a.Source.String())
}

func TestActionArgs(t *testing.T) {
	a := NewAction("refactor.extractVariable", SourceAPI).
		WithText("total").
		WithArg("tab", 4).
		WithArg("mode", "fast")

	assert.Equal(t, "total", a.Args.Text)
	assert.Equal(t, 4, a.Args.GetInt("tab"))
	assert.Equal(t, "fast", a.Args.GetString("mode"))
	assert.Equal(t, "", a.Args.GetString("missing"))
	assert.Equal(t, 0, a.Args.GetInt("mode"))
}

func TestWithArgDoesNotShareMaps(t *testing.T) {
	base := Action{Name: "x"}.WithArg("a", 1)
	derived := base.WithArg("b", 2)

	_, ok := base.Args.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, derived.Args.GetInt("b"))
}

func TestNamespaceWithoutDot(t *testing.T) {
	assert.Equal(t, "plain", Action{Name: "plain"}.Namespace())
}
