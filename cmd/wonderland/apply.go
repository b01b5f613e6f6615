package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/wonderland/internal/app"
	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/engine/buffer"
	"github.com/dshills/wonderland/internal/engine/cursor"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
)

// ErrBadSelection indicates a --sel value that is not L:C or L:C-L:C.
var ErrBadSelection = errors.New("bad selection")

type applyOptions struct {
	*rootOptions

	language       string
	command        string
	selections     []string
	write          bool
	diff           bool
	clipboard      string
	showSelections bool
}

func newApplyCmd(root *rootOptions) *cobra.Command {
	o := &applyOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Run one command against a file",
		Long: `Apply runs one command against a file and prints the result.

Selections are given as LINE:COLUMN or LINE:COLUMN-LINE:COLUMN, 1-based,
with columns counted in characters. Without --sel the cursor is at 1:1.
Use "-" to read the document from stdin.

Examples:
  # Toggle the comment on line 3 and print the file
  wonderland apply main.go --cmd comment.toggle --sel 3:1

  # Extract the selected expression into a variable, in place
  wonderland apply app.ts --cmd refactor.extractVariable --sel 10:9-10:24 --write

  # Show what removing all comments would change
  wonderland apply style.css --cmd comment.remove --sel 1:1-40:1 --diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.language, "lang", "l", "", "language identifier (default: detected from the file name)")
	flags.StringVar(&o.command, "cmd", "", "command to run, e.g. comment.toggle")
	flags.StringArrayVarP(&o.selections, "sel", "s", nil, "selection LINE:COL[-LINE:COL] (repeatable)")
	flags.BoolVarP(&o.write, "write", "w", false, "write the result back to the file")
	flags.BoolVar(&o.diff, "diff", false, "print a unified diff instead of the result")
	flags.StringVar(&o.clipboard, "clipboard", "", "use this text as the clipboard instead of the system clipboard")
	flags.BoolVar(&o.showSelections, "show-selections", false, "print the resulting selections to stderr")
	_ = cmd.MarkFlagRequired("cmd")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")
	return cmd
}

func (o *applyOptions) run(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if o.language != "" {
		if err := app.CheckLanguage(o.language); err != nil {
			return err
		}
	}

	doc, err := openDocument(cmd.InOrStdin(), path, o.language)
	if err != nil {
		return err
	}
	if len(o.selections) > 0 {
		sels, err := parseSelections(doc.Snapshot(), o.selections)
		if err != nil {
			return err
		}
		doc.SetSelections(sels...)
	}

	var mem *clipboard.Memory
	var cb clipboard.Clipboard
	if cmd.Flags().Changed("clipboard") {
		mem = clipboard.NewMemory(o.clipboard)
		cb = mem
	}

	a, err := o.newApp(ctx, cb, input.SourceCLI)
	if err != nil {
		return err
	}
	defer a.Close()

	before := doc.Text()
	out, err := a.Execute(ctx, doc, o.command)
	if err != nil {
		return err
	}
	log.Debug(log.CatCLI, "applied", "command", o.command, "language", doc.LanguageID,
		"status", out.Result.Status.String(), "edits", len(out.Applied.Edits))

	if out.Result.IsNoOp() {
		msg := out.Result.Message
		if msg == "" {
			msg = "nothing to change"
		}
		fmt.Fprintf(stderr, "%s: %s\n", o.command, msg)
	}
	if mem != nil && out.Clipboard != nil {
		fmt.Fprintf(stderr, "clipboard: %q\n", *out.Clipboard)
	}
	if o.showSelections {
		fmt.Fprintf(stderr, "selections: %s\n", formatSelections(doc.Snapshot(), out.Selections))
	}

	switch {
	case o.write:
		if !out.Changed() {
			return nil
		}
		return doc.Save()
	case o.diff:
		_, err = io.WriteString(stdout, unifiedDiff(doc.Name, before, doc.Text()))
	default:
		_, err = io.WriteString(stdout, doc.Text())
	}
	return err
}

// openDocument reads path, or stdin when path is "-".
func openDocument(stdin io.Reader, path, language string) (*app.Document, error) {
	if path != "-" {
		return app.OpenDocument(path, language)
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return app.NewDocument("", string(content), language), nil
}

func parseSelections(snap *buffer.Snapshot, specs []string) ([]cursor.Selection, error) {
	sels := make([]cursor.Selection, 0, len(specs))
	for _, s := range specs {
		sel, err := parseSelection(snap, s)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// parseSelection parses LINE:COL or LINE:COL-LINE:COL (1-based, columns in
// characters) into byte coordinates of snap.
func parseSelection(snap *buffer.Snapshot, s string) (cursor.Selection, error) {
	from, to, isRange := strings.Cut(s, "-")
	anchor, err := parsePoint(snap, from)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("%w %q: %v", ErrBadSelection, s, err)
	}
	if !isRange {
		return cursor.NewCursor(anchor), nil
	}
	active, err := parsePoint(snap, to)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("%w %q: %v", ErrBadSelection, s, err)
	}
	return cursor.NewSelection(anchor, active), nil
}

func parsePoint(snap *buffer.Snapshot, s string) (buffer.Point, error) {
	ls, cs, ok := strings.Cut(s, ":")
	if !ok {
		return buffer.Point{}, errors.New("want LINE:COLUMN")
	}
	line, err := strconv.Atoi(ls)
	if err != nil || line < 1 {
		return buffer.Point{}, fmt.Errorf("invalid line %q", ls)
	}
	col, err := strconv.Atoi(cs)
	if err != nil || col < 1 {
		return buffer.Point{}, fmt.Errorf("invalid column %q", cs)
	}
	if line > snap.LineCount() {
		return buffer.Point{}, fmt.Errorf("line %d past end of document (%d lines)", line, snap.LineCount())
	}
	text := snap.LineText(line - 1)
	return buffer.Point{Line: line - 1, Column: buffer.ByteColumn(text, col-1)}, nil
}

func formatPoint(snap *buffer.Snapshot, p buffer.Point) string {
	col := p.Column
	if p.Line < snap.LineCount() {
		col = buffer.CharColumn(snap.LineText(p.Line), p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line+1, col+1)
}

func formatSelections(snap *buffer.Snapshot, sels []cursor.Selection) string {
	parts := make([]string, 0, len(sels))
	for _, s := range sels {
		if s.IsEmpty() {
			parts = append(parts, formatPoint(snap, s.Active))
			continue
		}
		parts = append(parts, formatPoint(snap, s.Anchor)+"-"+formatPoint(snap, s.Active))
	}
	return strings.Join(parts, " ")
}
