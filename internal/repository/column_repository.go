package repository

import (
	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a new column
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Create(column).Error
}

// FindByID finds a column by ID
func (r *GormColumnRepository) FindByID(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, id).Error; err != nil {
		return nil, notFound(err, ErrColumnNotFound)
	}
	return &column, nil
}

// ListByBoard returns the board's columns sorted by order (ties by id)
func (r *GormColumnRepository) ListByBoard(boardID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("board_id = ?", boardID).Scopes(byRank).Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update updates a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// DeleteAndCompact removes the column, cascades to its tasks and their
// comments, and renumbers the board's remaining columns densely. The
// column snapshot is read inside the transaction so the compaction is
// based on live state.
func (r *GormColumnRepository) DeleteAndCompact(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var column models.Column
		if err := tx.First(&column, id).Error; err != nil {
			return notFound(err, ErrColumnNotFound)
		}

		var siblings []models.Column
		if err := tx.Where("board_id = ?", column.BoardID).Scopes(byRank).Find(&siblings).Error; err != nil {
			return err
		}
		assignments, err := ordering.CompactColumnsAfterDelete(columnEntries(siblings), id)
		if err != nil {
			return err
		}

		taskIDs := tx.Model(&models.Task{}).Select("id").Where("column_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&column).Error; err != nil {
			return err
		}

		for _, a := range assignments {
			err := tx.Model(&models.Column{}).Where("id = ?", a.ID).Update("order", a.Order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
