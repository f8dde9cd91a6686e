package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply returns the snapshot with the assignments written back.
func apply(entries []Entry, assignments []Assignment) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for _, a := range assignments {
		for i := range out {
			if out[i].ID == a.ID {
				out[i].Order = a.Order
			}
		}
	}
	return out
}

func remove(entries []Entry, id uint64) []Entry {
	out := []Entry{}
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func TestAppendAtEnd(t *testing.T) {
	assert.Equal(t, 0, AppendAtEnd(nil))
	assert.Equal(t, 0, AppendAtEnd([]int{}))
	assert.Equal(t, 3, AppendAtEnd([]int{0, 1, 2}))
}

func TestReorderWithinColumn_MoveToEnd(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}

	assignments, err := ReorderWithinColumn(tasks, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, []Assignment{{ID: 2, Order: 0}, {ID: 3, Order: 1}, {ID: 1, Order: 2}}, assignments)
}

func TestReorderWithinColumn_MoveToFront(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}

	assignments, err := ReorderWithinColumn(tasks, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, []Assignment{{ID: 3, Order: 0}, {ID: 1, Order: 1}, {ID: 2, Order: 2}}, assignments)
}

func TestReorderWithinColumn_NoOp(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}

	assignments, err := ReorderWithinColumn(tasks, 2, 1)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// Applying the (empty) result leaves every order unchanged.
	assert.Equal(t, tasks, apply(tasks, assignments))
}

func TestReorderWithinColumn_UnknownTask(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}}

	_, err := ReorderWithinColumn(tasks, 99, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReorderWithinColumn_IndexOutOfRange(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}}

	_, err := ReorderWithinColumn(tasks, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	_, err = ReorderWithinColumn(tasks, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestReorderWithinColumn_StaleDuplicateOrders(t *testing.T) {
	// Duplicate stored orders should not happen, but stale snapshots can
	// carry them; the id tie-break keeps the result deterministic.
	tasks := []Entry{{ID: 5, Order: 0}, {ID: 2, Order: 0}, {ID: 9, Order: 1}}

	assignments, err := ReorderWithinColumn(tasks, 9, 0)
	require.NoError(t, err)

	state := apply(tasks, assignments)
	assert.True(t, IsDense(state))

	byID := map[uint64]int{}
	for _, e := range state {
		byID[e.ID] = e.Order
	}
	assert.Equal(t, 0, byID[9])
	assert.Equal(t, 1, byID[2])
	assert.Equal(t, 2, byID[5])
}

func TestMoveAcrossColumns_Concrete(t *testing.T) {
	source := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}}
	destination := []Entry{{ID: 3, Order: 0}}

	result, err := MoveAcrossColumns(source, destination, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, []Assignment{{ID: 2, Order: 0}}, result.RemovedFromSource)
	assert.Equal(t, []Assignment{{ID: 1, Order: 0}, {ID: 3, Order: 1}}, result.InsertedIntoDestination)
}

func TestMoveAcrossColumns_AppendKeepsRankButChangesColumn(t *testing.T) {
	source := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}}
	destination := []Entry{{ID: 3, Order: 0}, {ID: 4, Order: 1}}

	// Task 2 keeps rank 1 in the destination; it must still be part of
	// the assignments because its column changed.
	result, err := MoveAcrossColumns(source, destination, 2, 1)
	require.NoError(t, err)

	assert.Empty(t, result.RemovedFromSource)
	assert.Equal(t, []Assignment{{ID: 2, Order: 1}, {ID: 4, Order: 2}}, result.InsertedIntoDestination)
}

func TestMoveAcrossColumns_BoundaryIndex(t *testing.T) {
	source := []Entry{{ID: 1, Order: 0}}
	destination := []Entry{{ID: 2, Order: 0}, {ID: 3, Order: 1}}

	// Inserting at len(destination) is an append and must succeed.
	result, err := MoveAcrossColumns(source, destination, 1, len(destination))
	require.NoError(t, err)
	assert.Equal(t, []Assignment{{ID: 1, Order: 2}}, result.InsertedIntoDestination)

	// One past that is always out of range.
	_, err = MoveAcrossColumns(source, destination, 1, len(destination)+1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestMoveAcrossColumns_UnknownTask(t *testing.T) {
	source := []Entry{{ID: 1, Order: 0}}
	destination := []Entry{{ID: 2, Order: 0}}

	_, err := MoveAcrossColumns(source, destination, 42, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveAcrossColumns_SameColumnDegeneration(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}

	for idx := 0; idx < len(tasks); idx++ {
		want, err := ReorderWithinColumn(tasks, 1, idx)
		require.NoError(t, err)

		got, err := MoveAcrossColumns(tasks, tasks, 1, idx)
		require.NoError(t, err)

		assert.Nil(t, got.RemovedFromSource)
		assert.Equal(t, want, got.InsertedIntoDestination, "index %d", idx)
	}
}

func TestMoveAcrossColumns_SameColumnAppendIndex(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}

	// len(tasks) still counts the task being moved, so inserting there
	// means "after everything", i.e. the last slot once it is lifted out.
	got, err := MoveAcrossColumns(tasks, tasks, 1, len(tasks))
	require.NoError(t, err)

	want, err := ReorderWithinColumn(tasks, 1, len(tasks)-1)
	require.NoError(t, err)
	assert.Equal(t, want, got.InsertedIntoDestination)
}

func TestMoveAcrossColumns_Conservation(t *testing.T) {
	source := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}
	destination := []Entry{{ID: 4, Order: 0}, {ID: 5, Order: 1}}
	total := len(source) + len(destination)

	result, err := MoveAcrossColumns(source, destination, 2, 1)
	require.NoError(t, err)

	newSource := apply(remove(source, 2), result.RemovedFromSource)
	newDestination := apply(append(destination, Entry{ID: 2, Order: -1}), result.InsertedIntoDestination)

	assert.Equal(t, total, len(newSource)+len(newDestination))
	assert.True(t, IsDense(newSource))
	assert.True(t, IsDense(newDestination))

	moved := 0
	for _, e := range newDestination {
		if e.ID == 2 {
			moved++
			assert.Equal(t, 1, e.Order)
		}
	}
	assert.Equal(t, 1, moved)
}

func TestRemoveAndCompact(t *testing.T) {
	tasks := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}, {ID: 4, Order: 3}}

	assignments, err := RemoveAndCompact(tasks, 2)
	require.NoError(t, err)
	assert.Equal(t, []Assignment{{ID: 3, Order: 1}, {ID: 4, Order: 2}}, assignments)

	_, err = RemoveAndCompact(tasks, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompactColumnsAfterDelete(t *testing.T) {
	columns := []Entry{{ID: 10, Order: 0}, {ID: 11, Order: 1}, {ID: 12, Order: 2}, {ID: 13, Order: 3}}

	assignments, err := CompactColumnsAfterDelete(columns, 11)
	require.NoError(t, err)

	state := apply(remove(columns, 11), assignments)
	assert.True(t, IsDense(state))
	assert.Equal(t, []Entry{{ID: 10, Order: 0}, {ID: 12, Order: 1}, {ID: 13, Order: 2}}, state)
}

// Invariant preservation: any sequence of creates, deletes and moves on
// a column starting from empty keeps orders at exactly {0..n-1}.
func TestOperationSequenceKeepsDenseRanks(t *testing.T) {
	column := []Entry{}
	nextID := uint64(1)

	create := func() {
		orders := make([]int, len(column))
		for i, e := range column {
			orders[i] = e.Order
		}
		column = append(column, Entry{ID: nextID, Order: AppendAtEnd(orders)})
		nextID++
	}
	del := func(id uint64) {
		assignments, err := RemoveAndCompact(column, id)
		require.NoError(t, err)
		column = apply(remove(column, id), assignments)
	}
	move := func(id uint64, idx int) {
		assignments, err := ReorderWithinColumn(column, id, idx)
		require.NoError(t, err)
		column = apply(column, assignments)
	}

	create()             // [1]
	create()             // [1 2]
	create()             // [1 2 3]
	move(1, 2)           // [2 3 1]
	del(3)               // [2 1]
	create()             // [2 1 4]
	move(4, 0)           // [4 2 1]
	del(2)               // [4 1]
	create()             // [4 1 5]
	move(1, 2)           // [4 5 1]

	require.Len(t, column, 3)
	assert.True(t, IsDense(column))

	byOrder := map[int]uint64{}
	for _, e := range column {
		byOrder[e.Order] = e.ID
	}
	assert.Equal(t, uint64(4), byOrder[0])
	assert.Equal(t, uint64(5), byOrder[1])
	assert.Equal(t, uint64(1), byOrder[2])
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}}))
	assert.False(t, IsDense([]Entry{{ID: 1, Order: 0}, {ID: 2, Order: 2}}))
	assert.False(t, IsDense([]Entry{{ID: 1, Order: 1}, {ID: 2, Order: 1}}))
}

func TestRepair(t *testing.T) {
	assert.Nil(t, Repair([]Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}}))

	gapped := []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 3}, {ID: 3, Order: 7}}
	state := apply(gapped, Repair(gapped))
	assert.Equal(t, []Entry{{ID: 1, Order: 0}, {ID: 2, Order: 1}, {ID: 3, Order: 2}}, state)
}
