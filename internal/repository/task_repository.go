package repository

import (
	"time"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}

	return &task, nil
}

// ListByColumn returns the column's tasks sorted by order (ties by id)
func (r *GormTaskRepository) ListByColumn(columnID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("column_id = ?", columnID).Scopes(byRank).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteAndCompact removes the task with its comments and renumbers the
// column's remaining tasks densely, all in one transaction.
func (r *GormTaskRepository) DeleteAndCompact(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, id).Error; err != nil {
			return notFound(err, ErrTaskNotFound)
		}

		var siblings []models.Task
		if err := tx.Where("column_id = ?", task.ColumnID).Scopes(byRank).Find(&siblings).Error; err != nil {
			return err
		}
		assignments, err := ordering.RemoveAndCompact(taskEntries(siblings), id)
		if err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}

		for _, a := range assignments {
			err := tx.Model(&models.Task{}).Where("id = ?", a.ID).Update("order", a.Order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Move relocates the task to destColumnID at destIndex. The snapshots
// of the source and destination columns are read inside the same
// transaction that writes the new orders, so a concurrent move cannot
// interleave a partial state.
func (r *GormTaskRepository) Move(taskID, destColumnID uint64, destIndex int) (*models.Task, error) {
	var moved models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return notFound(err, ErrTaskNotFound)
		}

		var destColumn models.Column
		if err := tx.First(&destColumn, destColumnID).Error; err != nil {
			return notFound(err, ErrColumnNotFound)
		}

		var sourceTasks []models.Task
		if err := tx.Where("column_id = ?", task.ColumnID).Scopes(byRank).Find(&sourceTasks).Error; err != nil {
			return err
		}

		var destTasks []models.Task
		if task.ColumnID == destColumnID {
			destTasks = sourceTasks
		} else if err := tx.Where("column_id = ?", destColumnID).Scopes(byRank).Find(&destTasks).Error; err != nil {
			return err
		}

		result, err := ordering.MoveAcrossColumns(taskEntries(sourceTasks), taskEntries(destTasks), taskID, destIndex)
		if err != nil {
			return err
		}

		for _, a := range result.RemovedFromSource {
			err := tx.Model(&models.Task{}).Where("id = ?", a.ID).Update("order", a.Order).Error
			if err != nil {
				return err
			}
		}

		now := time.Now()
		movedUpdated := false
		for _, a := range result.InsertedIntoDestination {
			updates := map[string]interface{}{"order": a.Order}
			if a.ID == taskID {
				updates["column_id"] = destColumnID
				updates["updated_at"] = now
				movedUpdated = true
			}
			err := tx.Model(&models.Task{}).Where("id = ?", a.ID).Updates(updates).Error
			if err != nil {
				return err
			}
		}
		if !movedUpdated {
			// Same-column no-op move: still bump updated_at.
			err := tx.Model(&models.Task{}).Where("id = ?", taskID).Update("updated_at", now).Error
			if err != nil {
				return err
			}
		}

		return tx.First(&moved, taskID).Error
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}
