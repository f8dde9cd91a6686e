package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"github.com/taskboard/kanban-api/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidPriority  = errors.New("priority must be low, medium or high")
)

// TaskService handles task business logic. Task order is always
// computed server-side through the ordering package; client-supplied
// order values are advisory at best and ignored.
type TaskService struct {
	taskRepo   repository.TaskRepository
	columnRepo repository.ColumnRepository
	userRepo   repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, columnRepo repository.ColumnRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		userRepo:   userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	ColumnID    uint64
	AssigneeID  *uint64
	Priority    models.TaskPriority
	Category    string
	DueDate     *time.Time
}

// UpdateTaskInput represents a partial update. Nil fields are left
// untouched. Order and column are never updated here; moves go through
// MoveTask so both columns stay dense.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssigneeID    *uint64
	ClearAssignee bool
	Priority      *models.TaskPriority
	Category      *string
	DueDate       *time.Time
	ClearDueDate  bool
	IsCompleted   *bool
}

// MoveTaskInput represents input for moving a task.
type MoveTaskInput struct {
	TaskID              uint64
	DestinationColumnID uint64
	DestinationIndex    int
}

func validPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}

// CreateTask appends a task at the end of its column.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	if _, err := s.columnRepo.FindByID(input.ColumnID); err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			return nil, err
		}
	}

	siblings, err := s.taskRepo.ListByColumn(input.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	orders := make([]int, len(siblings))
	for i, t := range siblings {
		orders[i] = t.Order
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		ColumnID:    input.ColumnID,
		Order:       ordering.AppendAtEnd(orders),
		AssigneeID:  input.AssigneeID,
		Priority:    priority,
		Category:    category,
		DueDate:     input.DueDate,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	return s.taskRepo.FindByID(id, "Assignee")
}

// ListTasks returns the column's tasks sorted by order.
func (s *TaskService) ListTasks(columnID uint64) ([]models.Task, error) {
	if _, err := s.columnRepo.FindByID(columnID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByColumn(columnID)
	if err != nil {
		return nil, err
	}
	repairTaskOrders(columnID, tasks)
	return tasks, nil
}

// UpdateTask merges the provided fields into the task. UpdatedAt is
// bumped by the save; order invariants are untouched.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, ErrCategoryRequired
		}
		task.Category = category
	}
	if input.Priority != nil {
		if !validPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes the task with its comments and compacts the
// column's remaining task orders.
func (s *TaskService) DeleteTask(id uint64) error {
	return s.taskRepo.DeleteAndCompact(id)
}

// MoveTask relocates a task to a column position. The repository runs
// the whole thing in one transaction: both column snapshots are read
// and every affected order persisted atomically.
func (s *TaskService) MoveTask(input MoveTaskInput) (*models.Task, error) {
	return s.taskRepo.Move(input.TaskID, input.DestinationColumnID, input.DestinationIndex)
}
