package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/repository"
	"github.com/taskboard/kanban-api/internal/utils"
)

var ErrContentRequired = errors.New("content is required")

// CommentService handles comment business logic. Comments are
// append-only and served in insertion order.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// ListComments returns the task's comments ordered by creation time.
func (s *CommentService) ListComments(taskID uint64, params utils.PaginationParams) ([]models.Comment, int64, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByTask(taskID, params)
}

// CreateComment appends a comment to a task.
func (s *CommentService) CreateComment(content string, taskID, userID uint64) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		TaskID:  taskID,
		UserID:  userID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
