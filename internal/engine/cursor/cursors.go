package cursor

import (
	"sort"

	"github.com/dshills/wonderland/internal/engine/buffer"
)

// Set is an ordered list of selections. The first selection is primary.
type Set []Selection

// Primary returns the first selection, or a cursor at (0:0) for an empty set.
func (s Set) Primary() Selection {
	if len(s) == 0 {
		return Selection{}
	}
	return s[0]
}

// Sorted returns a copy ordered by start position.
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start().Before(out[j].Start())
	})
	return out
}

// AllEmpty returns true if every selection is a plain cursor.
func (s Set) AllEmpty() bool {
	for _, sel := range s {
		if !sel.IsEmpty() {
			return false
		}
	}
	return true
}

// Clamp returns a copy with every selection moved into the area of snap.
func (s Set) Clamp(snap *buffer.Snapshot) Set {
	out := make(Set, len(s))
	for i, sel := range s {
		out[i] = sel.Clamp(snap)
	}
	return out
}
