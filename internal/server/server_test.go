package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wonderland/internal/app"
	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/config"
)

func newServer(t *testing.T, in string) (*Server, *bytes.Buffer, *clipboard.Memory) {
	t.Helper()
	mem := clipboard.NewMemory("")
	a, err := app.New(context.Background(), app.Options{
		NoPlugins:     true,
		Clipboard:     mem,
		ConfigOptions: []config.Option{config.WithEnv(nil)},
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	out := &bytes.Buffer{}
	return New(a, NewLineTransport(strings.NewReader(in), out)), out, mem
}

func pos(line, col int) Position {
	return Position{Line: line, Column: col}
}

func cur(line, col int) Selection {
	return Selection{Anchor: pos(line, col), Active: pos(line, col)}
}

func TestHandleToggleComment(t *testing.T) {
	s, _, _ := newServer(t, "")

	resp := s.Handle(context.Background(), Request{
		ID:       "1",
		Command:  "comment.toggle",
		Language: "go",
		Text:     "x := 1\n",
	})
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Edits, 1)
	assert.Equal(t, Edit{Range: Range{Start: pos(0, 0), End: pos(0, 6)}, Text: "// x := 1"}, resp.Edits[0])
	assert.Equal(t, []Selection{cur(0, 0)}, resp.Selections)
}

func TestHandleNoOp(t *testing.T) {
	s, _, _ := newServer(t, "")

	resp := s.Handle(context.Background(), Request{
		Command:  "comment.remove",
		Language: "markdown",
		Text:     "# title\n",
	})
	assert.Equal(t, "no-op", resp.Status)
	assert.Empty(t, resp.Edits)
	assert.Empty(t, resp.Error)
	assert.Len(t, resp.ID, 36)
}

func TestHandleErrors(t *testing.T) {
	s, _, _ := newServer(t, "")
	ctx := context.Background()

	resp := s.Handle(ctx, Request{ID: "a", Command: "nope.nothing", Text: "x\n"})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "no handler")

	resp = s.Handle(ctx, Request{ID: "b", Text: "x\n"})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrMissingCommand.Error(), resp.Error)

	resp = s.Handle(ctx, Request{ID: "c", Command: "editor.lineEnd", Text: "x\n", Columns: "utf16"})
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, ErrBadColumns.Error())

	resp = s.HandleLine(ctx, []byte("{not json"))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, ErrInvalidRequest.Error())
	assert.NotEmpty(t, resp.ID)
}

func TestHandleClipboardFromRequest(t *testing.T) {
	s, _, appClip := newServer(t, "")
	empty := ""

	resp := s.Handle(context.Background(), Request{
		Command:    "editor.swap",
		Language:   "javascript",
		Text:       "alpha beta\n\n",
		Selections: []Selection{{Anchor: pos(0, 0), Active: pos(0, 5)}, cur(1, 0)},
		Clipboard:  &empty,
	})
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Clipboard)
	assert.Equal(t, "alpha", *resp.Clipboard)
	assert.NotEmpty(t, resp.Edits)
	assert.Equal(t, 0, appClip.Writes())
}

func TestHandleDetectsLanguageFromPath(t *testing.T) {
	s, _, _ := newServer(t, "")

	resp := s.Handle(context.Background(), Request{
		Command: "comment.toggle",
		Path:    "/tmp/script.py",
		Text:    "x = 1\n",
	})
	require.Len(t, resp.Edits, 1)
	assert.Equal(t, "# x = 1", resp.Edits[0].Text)
}

func TestHandleCharColumns(t *testing.T) {
	s, _, _ := newServer(t, "")
	req := Request{
		Command:  "editor.lineEnd",
		Language: "javascript",
		Text:     "let é = 1\n",
	}

	resp := s.Handle(context.Background(), req)
	require.Empty(t, resp.Error)
	assert.Equal(t, []Selection{cur(0, 10)}, resp.Selections)

	req.Columns = ColumnsChar
	resp = s.Handle(context.Background(), req)
	require.Empty(t, resp.Error)
	assert.Equal(t, []Selection{cur(0, 9)}, resp.Selections)
}

func TestServeAnswersEachLine(t *testing.T) {
	in := strings.Join([]string{
		`{"id":"1","command":"comment.toggle","language":"go","text":"x := 1\n"}`,
		``,
		`garbage`,
		`{"id":"3","command":"editor.lineEnd","language":"go","text":"abc\n"}`,
	}, "\n")
	s, out, _ := newServer(t, in)

	require.NoError(t, s.Serve(context.Background()))

	var got []Response
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var r Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		got = append(got, r)
	}
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "ok", got[0].Status)
	assert.Equal(t, "error", got[1].Status)
	assert.Equal(t, "3", got[2].ID)
	assert.Equal(t, []Selection{cur(0, 3)}, got[2].Selections)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, _, _ := newServer(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.Serve(ctx))
}

func TestLineTransport(t *testing.T) {
	out := &bytes.Buffer{}
	tr := NewLineTransport(strings.NewReader("\n  \r\n{\"a\":1}\r\nlast"), out)

	line, err := tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(line))

	line, err = tr.Receive()
	require.NoError(t, err)
	assert.Equal(t, "last", string(line))

	_, err = tr.Receive()
	assert.Error(t, err)

	require.NoError(t, tr.Send(map[string]int{"b": 2}))
	assert.Equal(t, "{\"b\":2}\n", out.String())
}
