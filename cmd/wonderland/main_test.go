package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/server"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs the command line with an isolated settings file.
func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "settings.toml")
	args = append(args, "--config", cfg)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "", "version")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Wonderland dev")
}

func TestLanguages(t *testing.T) {
	r := runCLI(t, "", "languages")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "LANGUAGE")
	assert.Regexp(t, `(?m)^python\s+python\s+#`, r.stdout)
	assert.Regexp(t, `(?m)^go\s+common\s+//\s+/\* \*/`, r.stdout)
}

func TestCommandsIncludesPlugins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shout.lua"), []byte(`
description = "upper-case the line"
function rewrite(line) return string.upper(line) end
`), 0o644))

	r := runCLI(t, "", "commands", "--plugin-dir", dir)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "comment.toggle")
	assert.Regexp(t, `lua\.shout\s+upper-case the line`, r.stdout)
}

func TestApplyStdin(t *testing.T) {
	r := runCLI(t, "x := 1\n", "apply", "-", "--lang", "go", "--cmd", "comment.toggle", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "// x := 1\n", r.stdout)
}

func TestApplyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\nx := 1\n"), 0o644))

	r := runCLI(t, "", "apply", path, "--cmd", "comment.toggle", "--sel", "2:1", "--write", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Empty(t, r.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n// x := 1\n", string(data))
}

func TestApplyDiff(t *testing.T) {
	r := runCLI(t, "x := 1\n", "apply", "-", "--lang", "go", "--cmd", "comment.toggle", "--diff", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "--- a/Untitled\n+++ b/Untitled\n@@ -1,1 +1,1 @@\n-x := 1\n+// x := 1\n", r.stdout)
}

func TestApplyNoOpReported(t *testing.T) {
	r := runCLI(t, "# title\n", "apply", "-", "--lang", "markdown", "--cmd", "comment.remove", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "# title\n", r.stdout)
	assert.Contains(t, r.stderr, "comment.remove: ")
}

func TestApplyClipboardFlag(t *testing.T) {
	r := runCLI(t, "alpha beta\n\n", "apply", "-", "--lang", "javascript", "--cmd", "editor.swap",
		"--sel", "1:1-1:6", "--sel", "2:1", "--clipboard", "", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "alpha beta\nalpha\n", r.stdout)
	assert.Contains(t, r.stderr, `clipboard: "alpha"`)
}

func TestApplyShowSelectionsInCharacters(t *testing.T) {
	r := runCLI(t, "let é = 1\n", "apply", "-", "--lang", "javascript", "--cmd", "editor.lineEnd",
		"--show-selections", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stderr, "selections: 1:10\n")
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown language", []string{"apply", "-", "--lang", "cobol", "--cmd", "comment.toggle"}, "unknown language"},
		{"missing cmd", []string{"apply", "-", "--lang", "go"}, "cmd"},
		{"write and diff", []string{"apply", "-", "--cmd", "comment.toggle", "--write", "--diff"}, "write"},
		{"bad selection", []string{"apply", "-", "--lang", "go", "--cmd", "comment.toggle", "--sel", "0:1"}, "bad selection"},
		{"unknown command", []string{"apply", "-", "--lang", "go", "--cmd", "nope.nothing"}, "no handler"},
		{"scratch write", []string{"apply", "-", "--lang", "go", "--cmd", "comment.toggle", "--write"}, "no path"},
		{"bad log level", []string{"version", "--log-level", "loud"}, "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "x := 1\n", append(tt.args, "--no-plugins")...)
			assert.Equal(t, 1, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestApplyLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "wonderland.log")
	r := runCLI(t, "x := 1\n", "apply", "-", "--lang", "go", "--cmd", "comment.toggle",
		"--no-plugins", "--log-file", logPath, "--log-level", "debug")
	require.Equal(t, 0, r.code, r.stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "applied")
}

func TestServe(t *testing.T) {
	in := `{"id":"7","command":"comment.toggle","language":"go","text":"x := 1\n"}` + "\n"
	r := runCLI(t, in, "serve", "--watch=false", "--memory-clipboard", "--no-plugins")
	require.Equal(t, 0, r.code, r.stderr)

	var resp server.Response
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(r.stdout)), &resp))
	assert.Equal(t, "7", resp.ID)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Edits, 1)
	assert.Equal(t, "// x := 1", resp.Edits[0].Text)
}

func TestParseSelection(t *testing.T) {
	snap := buffer.NewSnapshot("héllo\nworld\n")
	pt := func(line, col int) buffer.Point { return buffer.Point{Line: line, Column: col} }

	sel, err := parseSelection(snap, "1:3")
	require.NoError(t, err)
	assert.Equal(t, cursor.NewCursor(pt(0, 3)), sel)

	sel, err = parseSelection(snap, "1:1-2:6")
	require.NoError(t, err)
	assert.Equal(t, cursor.NewSelection(pt(0, 0), pt(1, 5)), sel)

	for _, bad := range []string{"", "1", "a:1", "1:0", "0:1", "9:1", "1:1-x"} {
		_, err := parseSelection(snap, bad)
		assert.ErrorIs(t, err, ErrBadSelection, bad)
	}

	assert.Equal(t, "1:3 1:1-2:6", formatSelections(snap, []cursor.Selection{
		cursor.NewCursor(pt(0, 3)),
		cursor.NewSelection(pt(0, 0), pt(1, 5)),
	}))
}

func TestUnifiedDiff(t *testing.T) {
	assert.Empty(t, unifiedDiff("f", "same\n", "same\n"))

	var before, after strings.Builder
	for i := 1; i <= 20; i++ {
		line := "line " + string(rune('a'+i-1)) + "\n"
		before.WriteString(line)
		switch i {
		case 2:
			after.WriteString("changed b\n")
		case 18:
		default:
			after.WriteString(line)
		}
	}

	got := unifiedDiff("f", before.String(), after.String())
	assert.Equal(t, `--- a/f
+++ b/f
@@ -1,5 +1,5 @@
 line a
-line b
+changed b
 line c
 line d
 line e
@@ -15,6 +15,5 @@
 line o
 line p
 line q
-line r
 line s
 line t
`, got)
}
