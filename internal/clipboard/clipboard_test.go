package clipboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Clipboard = System{}
	_ Clipboard = (*Memory)(nil)
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("initial")

	got, err := m.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "initial", got)

	require.NoError(t, m.WriteText(ctx, "next"))
	got, err = m.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next", got)
	assert.Equal(t, 1, m.Writes())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory("x")
	_, err := m.ReadText(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.WriteText(ctx, "y"), context.Canceled)
	assert.Equal(t, 0, m.Writes())

	_, err = NewSystem().ReadText(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, NewSystem().WriteText(ctx, "y"), context.Canceled)
}
