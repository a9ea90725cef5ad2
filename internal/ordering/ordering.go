// Package ordering implements the board's positional model: every column
// and every ticket within a column occupies a dense position 0..N-1.
// All functions are pure and operate on copies of their inputs.
package ordering

import (
	"sort"

	"github.com/google/uuid"
)

// Item is a positioned entity reference
type Item struct {
	ID       uuid.UUID
	Position int
}

// Normalize returns items sorted by position with dense positions 0..N-1.
// Ties are broken by the incoming slice order, which keeps the sort stable
// for already-normalized input.
func Normalize(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return reindex(out)
}

// Insert places id at index, clamped to [0, len(items)], and reindexes
func Insert(items []Item, id uuid.UUID, index int) []Item {
	index = clamp(index, 0, len(items))
	out := make([]Item, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, Item{ID: id})
	out = append(out, items[index:]...)
	return reindex(out)
}

// Remove deletes the item at index and reindexes. Out-of-range indices
// return the input unchanged.
func Remove(items []Item, index int) []Item {
	if index < 0 || index >= len(items) {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	out := make([]Item, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return reindex(out)
}

// RemoveID deletes the item with the given ID, if present, and reindexes
func RemoveID(items []Item, id uuid.UUID) []Item {
	return Remove(items, IndexOf(items, id))
}

// MoveWithin moves the item at from so that it occupies index to of the
// resulting sequence. The insertion happens after removal, which absorbs
// the one-slot shift a forward move causes; callers passing an insertion
// point counted over the full original list must decrement it themselves
// when from < to. MoveWithin(i, i) is the identity.
func MoveWithin(items []Item, from, to int) []Item {
	if from < 0 || from >= len(items) {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}
	moved := items[from].ID
	out := Remove(items, from)
	return Insert(out, moved, to)
}

// MoveAcross moves the item at from in src to index to in dst. Both
// resulting lists are reindexed. The moved item's new position is its
// index in the returned dst.
func MoveAcross(src, dst []Item, from, to int) ([]Item, []Item) {
	if from < 0 || from >= len(src) {
		srcOut := make([]Item, len(src))
		copy(srcOut, src)
		dstOut := make([]Item, len(dst))
		copy(dstOut, dst)
		return srcOut, dstOut
	}
	moved := src[from].ID
	srcOut := Remove(src, from)
	dstOut := Insert(dst, moved, to)
	return srcOut, dstOut
}

// IndexOf returns the index of id in items, or -1 when absent
func IndexOf(items []Item, id uuid.UUID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Diff returns the items of after whose position differs from their
// position in before, including items absent from before. This is the
// minimal set of entities whose position needs a write.
func Diff(before, after []Item) []Item {
	prev := make(map[uuid.UUID]int, len(before))
	for _, it := range before {
		prev[it.ID] = it.Position
	}
	var changed []Item
	for _, it := range after {
		if pos, ok := prev[it.ID]; !ok || pos != it.Position {
			changed = append(changed, it)
		}
	}
	return changed
}

// Contiguous reports whether positions are exactly 0..N-1 in slice order
func Contiguous(items []Item) bool {
	for i, it := range items {
		if it.Position != i {
			return false
		}
	}
	return true
}

func reindex(items []Item) []Item {
	for i := range items {
		items[i].Position = i
	}
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
