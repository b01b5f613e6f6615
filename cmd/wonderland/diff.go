package main

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// unifiedDiff renders the line changes from before to after as a unified
// diff. It returns "" when the texts are equal.
func unifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			all = append(all, diffLine{op: d.Type, text: l})
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks(all) {
		writeHunk(&sb, all, h)
	}
	return sb.String()
}

// splitLines splits text after each line break.
func splitLines(text string) []string {
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

type hunk struct {
	from, to int // [from, to) indexes into the diff lines
}

// hunks groups changed lines with their context. Changes separated by no
// more than twice the context share a hunk.
func hunks(lines []diffLine) []hunk {
	var out []hunk
	for i := 0; i < len(lines); i++ {
		if lines[i].op == diffmatchpatch.DiffEqual {
			continue
		}
		from := max(0, i-diffContext)
		last := i
		for j := i + 1; j < len(lines) && j <= last+2*diffContext; j++ {
			if lines[j].op != diffmatchpatch.DiffEqual {
				last = j
			}
		}
		to := min(len(lines), last+diffContext+1)
		out = append(out, hunk{from: from, to: to})
		i = last
	}
	return out
}

func writeHunk(sb *strings.Builder, lines []diffLine, h hunk) {
	// Line numbers of the hunk start in the old and new text.
	oldLine, newLine := 1, 1
	for _, l := range lines[:h.from] {
		if l.op != diffmatchpatch.DiffInsert {
			oldLine++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newLine++
		}
	}

	oldCount, newCount := 0, 0
	for _, l := range lines[h.from:h.to] {
		if l.op != diffmatchpatch.DiffInsert {
			oldCount++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newCount++
		}
	}
	if oldCount == 0 {
		oldLine--
	}
	if newCount == 0 {
		newLine--
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldLine, oldCount, newLine, newCount)

	for _, l := range lines[h.from:h.to] {
		prefix := " "
		switch l.op {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		sb.WriteString(prefix)
		sb.WriteString(l.text)
		if !strings.HasSuffix(l.text, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
