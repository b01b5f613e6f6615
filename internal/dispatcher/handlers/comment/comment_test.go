package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/dispatcher/execctx"
	"github.com/dshills/wonderland/internal/dispatcher/handler"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
)

func at(line, col int) cursor.Selection {
	return cursor.NewCursor(buffer.Point{Line: line, Column: col})
}

func span(l1, c1, l2, c2 int) cursor.Selection {
	return cursor.NewSelection(buffer.Point{Line: l1, Column: c1}, buffer.Point{Line: l2, Column: c2})
}

// run dispatches a comment action and returns the rewritten text.
func run(t *testing.T, langID, text, name string, sels ...cursor.Selection) (string, handler.Result) {
	t.Helper()
	snap := buffer.NewSnapshot(text)
	ctx := execctx.New().WithSnapshot(snap).WithSelections(sels...).WithLanguage(langID)

	res := NewHandler().HandleAction(input.NewAction(name, input.SourceAPI), ctx)
	require.False(t, res.IsError(), "unexpected error: %v", res.Error)

	after, err := snap.Apply(res.Edits)
	require.NoError(t, err)
	return after.Text(), res
}

func TestCanHandle(t *testing.T) {
	h := NewHandler()
	assert.Equal(t, "comment", h.Namespace())
	for _, name := range h.Actions() {
		assert.True(t, h.CanHandle(name), name)
	}
	assert.False(t, h.CanHandle("comment.unknown"))
	assert.False(t, h.CanHandle("editor.swap"))
}

func TestToggleScenario(t *testing.T) {
	out, res := run(t, "c", "doSomething()", ActionToggle, at(0, 0))
	assert.True(t, res.IsOK())
	assert.Equal(t, "// doSomething()", out)

	out, _ = run(t, "c", out, ActionToggle, at(0, 3))
	assert.Equal(t, "doSomething()", out)
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		lang string
		text string
		sel  cursor.Selection
		want string
	}{
		{"indented line", "go", "\tx := 1", at(0, 0), "\t// x := 1"},
		{"uncomment without space", "javascript", "  //call()", at(0, 0), "  call()"},
		{"python token", "python", "print(1)", at(0, 0), "# print(1)"},
		{"sql token", "sql", "select 1", at(0, 0), "-- select 1"},
		{"ini token", "ini", "key=1", at(0, 0), "; key=1"},
		{
			"range comments non-blank lines",
			"typescript", "  a()\n\n  // b()", span(0, 0, 2, 3),
			"  // a()\n\n  // // b()",
		},
		{
			"range uncomments by first line",
			"rust", "// a\nb\n// c", span(0, 0, 2, 1),
			"a\nb\nc",
		},
		{
			"selection ending at column 0 excludes last line",
			"go", "a\nb\nc", span(0, 0, 2, 0),
			"// a\n// b\nc",
		},
		{"html wraps", "html", "  <div>hi</div>", at(0, 0), "  <!-- <div>hi</div> -->"},
		{"html unwraps", "html", "<!-- <p>x</p> -->", at(0, 0), "<p>x</p>"},
		{
			"html range wraps joined content",
			"html", "  <p>\n  x\n  </p>", span(0, 0, 2, 6),
			"  <!-- <p>\n  x\n  </p> -->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := run(t, tt.lang, tt.text, ActionToggle, tt.sel)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestToggleEmbeddedScript(t *testing.T) {
	doc := "<template>\n<div/>\n</template>\n<script>\nlet a = 1\n</script>"

	out, _ := run(t, "vue", doc, ActionToggle, at(4, 0))
	assert.Equal(t, "<template>\n<div/>\n</template>\n<script>\n// let a = 1\n</script>", out)

	out, _ = run(t, "vue", doc, ActionToggle, at(1, 0))
	assert.Equal(t, "<template>\n<!-- <div/> -->\n</template>\n<script>\nlet a = 1\n</script>", out)
}

func TestToggleNoOps(t *testing.T) {
	_, res := run(t, "go", "a\n   \nb", ActionToggle, at(1, 1))
	assert.True(t, res.IsNoOp())

	_, res = run(t, "cobol", "MOVE A TO B", ActionToggle, at(0, 0))
	assert.True(t, res.IsNoOp())
}

func TestToggleRequiresSnapshot(t *testing.T) {
	res := NewHandler().HandleAction(input.NewAction(ActionToggle, input.SourceAPI), execctx.New())
	assert.True(t, res.IsError())
	assert.ErrorIs(t, res.Error, execctx.ErrMissingSnapshot)
}

func TestDuplicate(t *testing.T) {
	tests := []struct {
		name string
		lang string
		text string
		sels []cursor.Selection
		want string
	}{
		{"single line", "go", "  foo()\nbar", []cursor.Selection{at(0, 4)}, "  // foo()\n  foo()\nbar"},
		{"line range", "javascript", "a\n\nb\nc", []cursor.Selection{span(0, 0, 3, 0)}, "// a\n\n// b\na\n\nb\nc"},
		{"markup", "xml", "<a/>", []cursor.Selection{at(0, 0)}, "<!-- <a/> -->\n<a/>"},
		{"crlf", "python", "x = 1\r\ny = 2", []cursor.Selection{at(1, 0)}, "x = 1\r\n# y = 2\r\ny = 2"},
		{"blank line", "go", "\n", []cursor.Selection{at(0, 0)}, "\n"},
		{"two selections", "go", "a\nb", []cursor.Selection{at(0, 0), at(1, 0)}, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := run(t, tt.lang, tt.text, ActionDuplicate, tt.sels...)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRemoveShellScenario(t *testing.T) {
	out, res := run(t, "shellscript", "#!/bin/bash\n# comment\necho hi\n", ActionRemove, at(0, 0), at(2, 0))
	assert.True(t, res.IsOK())
	assert.Equal(t, 1, res.GetDataInt("removed"))
	assert.Equal(t, "#!/bin/bash\necho hi\n", out)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name string
		lang string
		text string
		sels []cursor.Selection
		want string
	}{
		{
			"preserve marker survives",
			"go", "// keep ￥\n// drop\nx := 1", []cursor.Selection{at(0, 0), at(2, 0)},
			"// keep ￥\nx := 1",
		},
		{
			"selection span",
			"c", "int a;\n/* one\n two */\nint b;", []cursor.Selection{span(0, 0, 3, 2)},
			"int a;\nint b;",
		},
		{
			"python matching delimiter",
			"python", "x = 1\n'''\ndoc\n'''\ny = 2", []cursor.Selection{at(0, 0), at(4, 0)},
			"x = 1\ny = 2",
		},
		{
			"single line span is a no-op",
			"go", "// a\nb", []cursor.Selection{at(0, 0), at(0, 2)},
			"// a\nb",
		},
		{
			"markdown never removes",
			"markdown", "<!-- a -->\ntext", []cursor.Selection{at(0, 0), at(1, 0)},
			"<!-- a -->\ntext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := run(t, tt.lang, tt.text, ActionRemove, tt.sels...)
			assert.Equal(t, tt.want, out)
		})
	}
}
