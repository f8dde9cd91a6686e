// Package boardstate is the client-side mirror of a single board. It
// applies the same ordering rules as the server immediately on user
// action, so a drag release shows its final order without waiting on
// the network, and reverts to the last server-confirmed snapshot when
// the call fails. The server response is always ground truth.
package boardstate

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/taskboard/kanban-api/internal/ordering"
)

var (
	ErrTaskNotFound   = errors.New("boardstate: task not found")
	ErrColumnNotFound = errors.New("boardstate: column not found")
)

// Task is the mirrored slice of a server task the board UI needs.
type Task struct {
	ID       uint64
	Title    string
	ColumnID uint64
	Order    int
}

// MutationAPI is the transport the store issues mutations through.
// Implementations call the server's mutation endpoints and return the
// authoritative entity.
type MutationAPI interface {
	MoveTask(taskID, destColumnID uint64, destIndex int) (Task, error)
	DeleteTask(taskID uint64) error
}

// EventType classifies store notifications.
type EventType string

const (
	EventApplied    EventType = "applied"
	EventConfirmed  EventType = "confirmed"
	EventRolledBack EventType = "rolled_back"
)

// Event is delivered to subscribers after every state transition. Err
// is set on rollbacks so the UI can surface the failure.
type EventFunc func(event EventType, err error)

// Pending is an in-flight optimistic mutation. The store resolves it
// with Confirm or Fail when the server responds.
type Pending struct {
	RequestID uuid.UUID
	TaskID    uint64
	seq       uint64
}

// Store holds the mirrored board state. All methods are safe for the
// single UI goroutine plus response callbacks.
type Store struct {
	mu sync.Mutex

	// columns maps columnID to its tasks sorted by order.
	columns   map[uint64][]Task
	confirmed map[uint64][]Task

	// lastIssued tracks the newest mutation per task so a response that
	// arrives after a newer mutation was issued is discarded.
	lastIssued map[uint64]uint64
	seq        uint64

	api         MutationAPI
	subscribers []EventFunc
}

// New creates an empty store backed by the given transport.
func New(api MutationAPI) *Store {
	return &Store{
		columns:    map[uint64][]Task{},
		confirmed:  map[uint64][]Task{},
		lastIssued: map[uint64]uint64{},
		api:        api,
	}
}

// Subscribe registers a notification callback.
func (s *Store) Subscribe(fn EventFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load replaces the mirror with a server-confirmed snapshot.
func (s *Store) Load(columns map[uint64][]Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.columns = map[uint64][]Task{}
	for columnID, tasks := range columns {
		s.columns[columnID] = sortedCopy(tasks)
	}
	s.confirmed = deepCopy(s.columns)
}

// Tasks returns the column's tasks sorted by order.
func (s *Store) Tasks(columnID uint64) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedCopy(s.columns[columnID])
}

// Snapshot returns a deep copy of the whole mirror.
func (s *Store) Snapshot() map[uint64][]Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepCopy(s.columns)
}

// MoveTask optimistically moves the task, issues the server call, and
// reconciles or rolls back depending on the outcome.
func (s *Store) MoveTask(taskID, destColumnID uint64, destIndex int) error {
	pending, err := s.StageMove(taskID, destColumnID, destIndex)
	if err != nil {
		return err
	}

	server, err := s.api.MoveTask(taskID, destColumnID, destIndex)
	if err != nil {
		s.Fail(pending, err)
		return err
	}

	s.Confirm(pending, server)
	return nil
}

// StageMove applies the move locally using the same ordering functions
// the server runs, and registers the in-flight request. The UI reflects
// the final order before the network round-trip completes.
func (s *Store) StageMove(taskID, destColumnID uint64, destIndex int) (Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sourceColumnID, ok := s.findColumn(taskID)
	if !ok {
		return Pending{}, ErrTaskNotFound
	}
	if _, ok := s.columns[destColumnID]; !ok {
		return Pending{}, ErrColumnNotFound
	}

	result, err := ordering.MoveAcrossColumns(
		entries(s.columns[sourceColumnID]),
		entries(s.columns[destColumnID]),
		taskID,
		destIndex,
	)
	if err != nil {
		return Pending{}, err
	}

	s.applyAssignments(sourceColumnID, result.RemovedFromSource)
	if sourceColumnID != destColumnID {
		s.relocate(taskID, sourceColumnID, destColumnID)
	}
	s.applyAssignments(destColumnID, result.InsertedIntoDestination)
	s.resort(sourceColumnID)
	s.resort(destColumnID)

	s.seq++
	s.lastIssued[taskID] = s.seq
	pending := Pending{RequestID: uuid.New(), TaskID: taskID, seq: s.seq}

	s.notify(EventApplied, nil)
	return pending, nil
}

// Confirm reconciles the mirror with the server response. A response
// that is not the newest mutation for its task is discarded: a later
// user action already superseded it (last-issued-wins).
func (s *Store) Confirm(pending Pending, server Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastIssued[pending.TaskID] != pending.seq {
		return
	}

	// Server order values win on divergence.
	if columnID, ok := s.findColumn(server.ID); ok && columnID != server.ColumnID {
		s.relocate(server.ID, columnID, server.ColumnID)
	}
	for i, t := range s.columns[server.ColumnID] {
		if t.ID == server.ID {
			s.columns[server.ColumnID][i].Order = server.Order
			s.columns[server.ColumnID][i].Title = server.Title
		}
	}
	s.resort(server.ColumnID)

	s.confirmed = deepCopy(s.columns)
	s.notify(EventConfirmed, nil)
}

// Fail rolls the mirror back to the last server-confirmed snapshot and
// surfaces the error, unless a newer mutation superseded the request.
func (s *Store) Fail(pending Pending, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastIssued[pending.TaskID] != pending.seq {
		return
	}

	s.columns = deepCopy(s.confirmed)
	s.notify(EventRolledBack, cause)
}

// DeleteTask optimistically removes the task and compacts its column.
func (s *Store) DeleteTask(taskID uint64) error {
	s.mu.Lock()

	columnID, ok := s.findColumn(taskID)
	if !ok {
		s.mu.Unlock()
		return ErrTaskNotFound
	}

	assignments, err := ordering.RemoveAndCompact(entries(s.columns[columnID]), taskID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.remove(taskID, columnID)
	s.applyAssignments(columnID, assignments)
	s.resort(columnID)

	s.seq++
	s.lastIssued[taskID] = s.seq
	pending := Pending{RequestID: uuid.New(), TaskID: taskID, seq: s.seq}
	s.notify(EventApplied, nil)
	s.mu.Unlock()

	if err := s.api.DeleteTask(taskID); err != nil {
		s.Fail(pending, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastIssued[taskID] != pending.seq {
		return nil
	}
	s.confirmed = deepCopy(s.columns)
	s.notify(EventConfirmed, nil)
	return nil
}

// Internal helpers. Callers hold the mutex.

func (s *Store) findColumn(taskID uint64) (uint64, bool) {
	for columnID, tasks := range s.columns {
		for _, t := range tasks {
			if t.ID == taskID {
				return columnID, true
			}
		}
	}
	return 0, false
}

func (s *Store) relocate(taskID, from, to uint64) {
	var moved Task
	for _, t := range s.columns[from] {
		if t.ID == taskID {
			moved = t
		}
	}
	s.remove(taskID, from)
	moved.ColumnID = to
	s.columns[to] = append(s.columns[to], moved)
}

func (s *Store) remove(taskID, columnID uint64) {
	tasks := s.columns[columnID]
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != taskID {
			out = append(out, t)
		}
	}
	s.columns[columnID] = out
}

func (s *Store) applyAssignments(columnID uint64, assignments []ordering.Assignment) {
	for _, a := range assignments {
		for i, t := range s.columns[columnID] {
			if t.ID == a.ID {
				s.columns[columnID][i].Order = a.Order
			}
		}
	}
}

func (s *Store) resort(columnID uint64) {
	s.columns[columnID] = sortedCopy(s.columns[columnID])
}

func (s *Store) notify(event EventType, err error) {
	for _, fn := range s.subscribers {
		fn(event, err)
	}
}

func entries(tasks []Task) []ordering.Entry {
	out := make([]ordering.Entry, len(tasks))
	for i, t := range tasks {
		out[i] = ordering.Entry{ID: t.ID, Order: t.Order}
	}
	return out
}

func sortedCopy(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func deepCopy(columns map[uint64][]Task) map[uint64][]Task {
	out := make(map[uint64][]Task, len(columns))
	for columnID, tasks := range columns {
		copied := make([]Task, len(tasks))
		copy(copied, tasks)
		out[columnID] = copied
	}
	return out
}
