package repository

import (
	"github.com/taskboard/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, notFound(err, ErrBoardNotFound)
	}
	return &board, nil
}

// ListByWorkspace lists the boards of a workspace
func (r *GormBoardRepository) ListByWorkspace(workspaceID uint64) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("id").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete removes the board and everything under it: columns, their
// tasks, and those tasks' comments. All-or-nothing.
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.First(&board, id).Error; err != nil {
			return notFound(err, ErrBoardNotFound)
		}

		columnIDs := tx.Model(&models.Column{}).Select("id").Where("board_id = ?", id)
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("column_id IN (?)", columnIDs)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id IN (?)", columnIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.Column{}).Error; err != nil {
			return err
		}
		return tx.Delete(&board).Error
	})
}
