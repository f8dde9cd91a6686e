package services

import (
	"fmt"
	"strings"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"github.com/taskboard/kanban-api/internal/repository"
)

// ColumnService handles column business logic. Column order is always
// computed server-side; a client-supplied order is ignored.
type ColumnService struct {
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
}

// NewColumnService creates a new ColumnService.
func NewColumnService(columnRepo repository.ColumnRepository, boardRepo repository.BoardRepository) *ColumnService {
	return &ColumnService{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
	}
}

// CreateColumn appends a column at the end of the board.
func (s *ColumnService) CreateColumn(name string, boardID uint64) (*models.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		return nil, err
	}

	siblings, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	orders := make([]int, len(siblings))
	for i, c := range siblings {
		orders[i] = c.Order
	}

	column := &models.Column{
		Name:    name,
		BoardID: boardID,
		Order:   ordering.AppendAtEnd(orders),
	}
	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

// ListColumns returns the board's columns sorted by order.
func (s *ColumnService) ListColumns(boardID uint64) ([]models.Column, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		return nil, err
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, err
	}
	repairColumnOrders(boardID, columns)
	return columns, nil
}

// RenameColumn updates the column name. Order is not client-writable.
func (s *ColumnService) RenameColumn(id uint64, name string) (*models.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	column, err := s.columnRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	column.Name = name
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// DeleteColumn removes the column with its tasks and compacts the
// board's remaining column orders.
func (s *ColumnService) DeleteColumn(id uint64) error {
	return s.columnRepo.DeleteAndCompact(id)
}
