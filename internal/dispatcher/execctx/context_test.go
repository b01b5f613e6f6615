package execctx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/lang"
)

type stubClipboard struct {
	text string
	err  error
}

func (c stubClipboard) ReadText(ctx context.Context) (string, error) {
	return c.text, c.err
}

func TestNewDefaults(t *testing.T) {
	ctx := New()

	assert.NotNil(t, ctx.Context)
	assert.Equal(t, 2, ctx.Settings.TabSize)
	assert.Equal(t, "￥", ctx.Settings.PreserveMarker)
	assert.Equal(t, "  ", ctx.Settings.Tab())
	assert.Equal(t, "\n", ctx.EOL())
	assert.Equal(t, lang.Unknown, ctx.Language())
}

func TestValidate(t *testing.T) {
	ctx := New()
	assert.ErrorIs(t, ctx.Validate(), ErrMissingSnapshot)

	ctx.WithSnapshot(buffer.NewSnapshot("x"))
	assert.ErrorIs(t, ctx.Validate(), ErrMissingSelections)

	ctx.WithSelections(cursor.NewCursor(buffer.Point{}))
	require.NoError(t, ctx.Validate())
	assert.ErrorIs(t, ctx.ValidateForLanguage(), ErrMissingStrategy)

	ctx.ReadOnly = true
	assert.ErrorIs(t, ctx.ValidateForEdit(), ErrReadOnly)
}

func TestWithLanguage(t *testing.T) {
	ctx := New().WithLanguage("python")
	require.NotNil(t, ctx.Strategy)
	assert.Equal(t, lang.Python, ctx.Language())

	ctx = New().WithLanguage("brainfuck")
	assert.Nil(t, ctx.Strategy)
	assert.Equal(t, "brainfuck", ctx.LanguageID)
}

func TestEffectiveStrategy(t *testing.T) {
	ctx := New().
		WithLanguage("html").
		WithSnapshot(buffer.NewSnapshot("<div>\n<script>\nlet a\n</script>"))

	assert.Equal(t, lang.JavaScript, ctx.EffectiveStrategy(2).Language())
	assert.Equal(t, lang.HTML, ctx.EffectiveStrategy(0).Language())
}

func TestReadClipboard(t *testing.T) {
	ctx := New()
	_, err := ctx.ReadClipboard()
	assert.ErrorIs(t, err, ErrMissingClipboard)

	ctx.WithClipboard(stubClipboard{text: "copied"})
	text, err := ctx.ReadClipboard()
	require.NoError(t, err)
	assert.Equal(t, "copied", text)

	boom := errors.New("denied")
	ctx.WithClipboard(stubClipboard{err: boom})
	_, err = ctx.ReadClipboard()
	assert.ErrorIs(t, err, boom)
}

func TestWithSettingsDefaultsTabSize(t *testing.T) {
	ctx := New().WithSettings(Settings{TabSize: 0, PreserveMarker: "!"})
	assert.Equal(t, DefaultTabSize, ctx.Settings.TabSize)
	assert.Equal(t, "!", ctx.Settings.PreserveMarker)

	assert.Equal(t, "    ", Settings{TabSize: 4}.Tab())
}

func TestData(t *testing.T) {
	ctx := &ExecutionContext{}
	_, ok := ctx.GetData("k")
	assert.False(t, ok)

	ctx.SetData("k", 1)
	v, ok := ctx.GetData("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
