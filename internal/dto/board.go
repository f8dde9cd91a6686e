package dto

import (
	"time"

	"github.com/taskboard/kanban-api/internal/models"
)

// ColumnDTO represents a column in API responses
type ColumnDTO struct {
	ID      uint64    `json:"id"`
	Name    string    `json:"name"`
	BoardID uint64    `json:"board_id"`
	Order   int       `json:"order"`
	Tasks   []TaskDTO `json:"tasks,omitempty"`
}

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	WorkspaceID uint64      `json:"workspace_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Columns     []ColumnDTO `json:"columns,omitempty"`
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	dto := ColumnDTO{
		ID:      column.ID,
		Name:    column.Name,
		BoardID: column.BoardID,
		Order:   column.Order,
	}
	if len(column.Tasks) > 0 {
		dto.Tasks = ToTaskDTOs(column.Tasks)
	}
	return dto
}

// ToColumnDTOs converts a slice of columns
func ToColumnDTOs(columns []models.Column) []ColumnDTO {
	items := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		items[i] = ToColumnDTO(column)
	}
	return items
}

// ToBoardDTO converts a Board model to BoardDTO, including columns and
// their tasks when the aggregate loader populated them.
func ToBoardDTO(board models.Board) BoardDTO {
	dto := BoardDTO{
		ID:          board.ID,
		Name:        board.Name,
		WorkspaceID: board.WorkspaceID,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
	if len(board.Columns) > 0 {
		dto.Columns = ToColumnDTOs(board.Columns)
	}
	return dto
}
