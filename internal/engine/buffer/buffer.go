package buffer

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
	ErrEditsOverlap = errors.New("edits overlap")
)

// Buffer holds the current text and applies edit batches atomically.
// All methods are thread-safe.
type Buffer struct {
	mu          sync.RWMutex
	snap        *Snapshot
	lineEnding  LineEnding
	fixedEnding bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromString("", opts...)
}

// NewBufferFromString creates a buffer with initial content.
// Line endings are detected from the content unless an option fixes them;
// mixed endings are normalized to the chosen style.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{lineEnding: DetectLineEnding(s)}
	for _, opt := range opts {
		opt(b)
	}
	b.snap = newSnapshot(s, b.lineEnding)
	return b
}

// Snapshot returns the current immutable view of the buffer.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.Snapshot().Text()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.Snapshot().LineCount()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// RevisionID returns the revision of the current snapshot.
func (b *Buffer) RevisionID() RevisionID {
	return b.Snapshot().RevisionID()
}

// SetText replaces the whole content.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.fixedEnding {
		b.lineEnding = DetectLineEnding(s)
	}
	b.snap = newSnapshot(s, b.lineEnding)
}

// ApplyEdits applies a batch of edits atomically.
// Every edit is expressed in coordinates of the current snapshot. If any
// edit is invalid or two edits overlap, the buffer is left unchanged.
func (b *Buffer) ApplyEdits(edits []Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := b.snap
	after, err := before.Apply(edits)
	if err != nil {
		return EditResult{}, err
	}
	b.snap = after
	return EditResult{Before: before, After: after, Edits: edits}, nil
}

// resolve converts edits to byte offsets, sorted ascending by start.
// At equal starts narrower edits come first and equal ranges keep their
// given order, so application from the end deletes before it inserts and
// stacks same-point inserts in the given order.
func (s *Snapshot) resolve(edits []Edit) ([]resolvedEdit, error) {
	resolved := make([]resolvedEdit, 0, len(edits))
	for i, e := range edits {
		if e.IsNoOp() {
			continue
		}
		if !e.Range.IsValid() || !s.IsValidPoint(e.Range.Start) || !s.IsValidPoint(e.Range.End) {
			return nil, fmt.Errorf("%w: %s", ErrRangeInvalid, e.Range)
		}
		resolved = append(resolved, resolvedEdit{
			start: s.Offset(e.Range.Start),
			end:   s.Offset(e.Range.End),
			text:  normalizeLineEndings(e.NewText, s.lineEnding),
			order: i,
		})
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		a, b := resolved[i], resolved[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end < b.end
		}
		return a.order < b.order
	})

	maxEnd := -1
	for _, e := range resolved {
		if e.start < maxEnd {
			return nil, fmt.Errorf("%w: %s", ErrEditsOverlap, edits[e.order].Range)
		}
		if e.end > maxEnd {
			maxEnd = e.end
		}
	}
	return resolved, nil
}
