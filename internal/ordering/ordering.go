// Package ordering computes dense rank assignments for tasks within
// columns and for columns within a board. Every function is pure: it
// takes a snapshot of one or two ordered collections and returns the
// (id, order) pairs that must be persisted to keep ranks contiguous
// (0..n-1, no gaps, no duplicates). Callers persist every returned pair.
package ordering

import (
	"errors"
	"sort"
)

var (
	// ErrNotFound is returned when the referenced id is not part of the
	// snapshot it was expected in.
	ErrNotFound = errors.New("ordering: entry not found in collection")

	// ErrInvalidIndex is returned when a target index falls outside the
	// valid range for the destination collection.
	ErrInvalidIndex = errors.New("ordering: target index out of range")
)

// Entry is one element of an ordered snapshot.
type Entry struct {
	ID    uint64
	Order int
}

// Assignment is a new order value for an entity.
type Assignment struct {
	ID    uint64
	Order int
}

// MoveResult holds the assignments produced by a cross-column move.
// RemovedFromSource is nil when the move degenerated to a same-column
// reorder.
type MoveResult struct {
	RemovedFromSource       []Assignment
	InsertedIntoDestination []Assignment
}

// AppendAtEnd returns the order for an entity appended after the given
// existing orders. Under the dense-rank invariant that is simply the
// current count.
func AppendAtEnd(existing []int) int {
	return len(existing)
}

// ReorderWithinColumn moves id to targetIndex inside a single column
// and renumbers the whole column densely. Only entries whose order
// actually changed are returned, so a no-op move yields an empty list.
func ReorderWithinColumn(entries []Entry, id uint64, targetIndex int) ([]Assignment, error) {
	seq := sorted(entries)

	from := indexOf(seq, id)
	if from < 0 {
		return nil, ErrNotFound
	}
	if targetIndex < 0 || targetIndex >= len(seq) {
		return nil, ErrInvalidIndex
	}

	moved := seq[from]
	seq = append(seq[:from], seq[from+1:]...)
	seq = insertAt(seq, targetIndex, moved)

	return changed(seq), nil
}

// MoveAcrossColumns removes id from the source snapshot and inserts it
// into the destination snapshot at destinationIndex, renumbering both
// densely. destinationIndex may equal len(destination): that is an
// append. When the moved id already lives in the destination snapshot
// the call degenerates to ReorderWithinColumn on the destination and
// must produce identical assignments.
func MoveAcrossColumns(source, destination []Entry, id uint64, destinationIndex int) (MoveResult, error) {
	if destinationIndex < 0 || destinationIndex > len(destination) {
		return MoveResult{}, ErrInvalidIndex
	}

	if indexOf(sorted(destination), id) >= 0 {
		// Same column. An index of len(destination) can only mean
		// "after everything", which after removal is the last slot.
		idx := destinationIndex
		if idx == len(destination) {
			idx = len(destination) - 1
		}
		assignments, err := ReorderWithinColumn(destination, id, idx)
		if err != nil {
			return MoveResult{}, err
		}
		return MoveResult{InsertedIntoDestination: assignments}, nil
	}

	src := sorted(source)
	from := indexOf(src, id)
	if from < 0 {
		return MoveResult{}, ErrNotFound
	}
	src = append(src[:from], src[from+1:]...)

	dst := sorted(destination)
	// The moved entry gets a sentinel old order so it always shows up in
	// the destination assignments: even when its rank is unchanged, its
	// column changed.
	dst = insertAt(dst, destinationIndex, Entry{ID: id, Order: -1})

	return MoveResult{
		RemovedFromSource:       changed(src),
		InsertedIntoDestination: changed(dst),
	}, nil
}

// RemoveAndCompact drops id from the snapshot and densely renumbers the
// remaining entries. Used when a task is deleted.
func RemoveAndCompact(entries []Entry, id uint64) ([]Assignment, error) {
	seq := sorted(entries)

	from := indexOf(seq, id)
	if from < 0 {
		return nil, ErrNotFound
	}
	seq = append(seq[:from], seq[from+1:]...)

	return changed(seq), nil
}

// CompactColumnsAfterDelete is RemoveAndCompact applied to the columns
// of a board after one of them was deleted.
func CompactColumnsAfterDelete(columns []Entry, deletedColumnID uint64) ([]Assignment, error) {
	return RemoveAndCompact(columns, deletedColumnID)
}

// IsDense reports whether the snapshot already satisfies the dense-rank
// invariant. Read paths use it to detect stale or corrupted order
// values left behind by a partial write.
func IsDense(entries []Entry) bool {
	seen := make([]bool, len(entries))
	for _, e := range entries {
		if e.Order < 0 || e.Order >= len(entries) || seen[e.Order] {
			return false
		}
		seen[e.Order] = true
	}
	return true
}

// Repair returns assignments that restore dense ranks while preserving
// the relative sequence (order, then id). Returns nil when the snapshot
// is already dense.
func Repair(entries []Entry) []Assignment {
	if IsDense(entries) {
		return nil
	}
	return changed(sorted(entries))
}

// sorted copies entries ordered by (order, id). The id tie-break keeps
// results deterministic even when a stale snapshot carries duplicate
// order values.
func sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func indexOf(entries []Entry, id uint64) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func insertAt(entries []Entry, index int, e Entry) []Entry {
	if index > len(entries) {
		index = len(entries)
	}
	entries = append(entries, Entry{})
	copy(entries[index+1:], entries[index:])
	entries[index] = e
	return entries
}

// changed assigns each entry its positional index and returns the pairs
// whose order differs from the snapshot value.
func changed(seq []Entry) []Assignment {
	assignments := []Assignment{}
	for pos, e := range seq {
		if e.Order != pos {
			assignments = append(assignments, Assignment{ID: e.ID, Order: pos})
		}
	}
	return assignments
}
