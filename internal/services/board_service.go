package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"github.com/taskboard/kanban-api/internal/repository"
)

// BoardService handles board business logic, including the read-side
// aggregate: a board with its columns and each column's tasks, sorted
// by order.
type BoardService struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	taskRepo   repository.TaskRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, columnRepo repository.ColumnRepository, taskRepo repository.TaskRepository) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
	}
}

// CreateBoard creates a board inside a workspace.
func (s *BoardService) CreateBoard(name string, workspaceID uint64) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	board := &models.Board{
		Name:        name,
		WorkspaceID: workspaceID,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// ListBoards lists the boards of a workspace.
func (s *BoardService) ListBoards(workspaceID uint64) ([]models.Board, error) {
	return s.boardRepo.ListByWorkspace(workspaceID)
}

// GetBoard returns a board by ID.
func (s *BoardService) GetBoard(id uint64) (*models.Board, error) {
	return s.boardRepo.FindByID(id)
}

// RenameBoard updates the board name.
func (s *BoardService) RenameBoard(id uint64, name string) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	board.Name = name
	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// DeleteBoard deletes a board and cascades to columns, tasks and comments.
func (s *BoardService) DeleteBoard(id uint64) error {
	return s.boardRepo.Delete(id)
}

// GetBoardAggregate loads the board, its columns sorted by order and
// each column's tasks sorted by order. A column whose persisted orders
// show gaps or duplicates (a prior partial write) is served re-ranked
// instead of failing; the next mutation writes dense ranks anyway.
func (s *BoardService) GetBoardAggregate(boardID uint64) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	repairColumnOrders(boardID, columns)

	for i := range columns {
		tasks, err := s.taskRepo.ListByColumn(columns[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load tasks for column %d: %w", columns[i].ID, err)
		}
		repairTaskOrders(columns[i].ID, tasks)
		columns[i].Tasks = tasks
	}

	board.Columns = columns
	return board, nil
}

// repairTaskOrders rewrites the in-memory orders of a column's tasks to
// dense ranks when the persisted values are corrupt. The slice arrives
// sorted by (order, id), so positional index is the repaired rank.
func repairTaskOrders(columnID uint64, tasks []models.Task) {
	entries := make([]ordering.Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = ordering.Entry{ID: t.ID, Order: t.Order}
	}
	if ordering.IsDense(entries) {
		return
	}

	logrus.WithField("column_id", columnID).Warn("task orders not dense, repairing on read")
	for i := range tasks {
		tasks[i].Order = i
	}
}

// repairColumnOrders is repairTaskOrders for a board's columns.
func repairColumnOrders(boardID uint64, columns []models.Column) {
	entries := make([]ordering.Entry, len(columns))
	for i, c := range columns {
		entries[i] = ordering.Entry{ID: c.ID, Order: c.Order}
	}
	if ordering.IsDense(entries) {
		return
	}

	logrus.WithField("board_id", boardID).Warn("column orders not dense, repairing on read")
	for i := range columns {
		columns[i].Order = i
	}
}
