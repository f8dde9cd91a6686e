package repository

import (
	"errors"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/ordering"
	"github.com/taskboard/kanban-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Not-found sentinels. Repository methods translate gorm.ErrRecordNotFound
// into the entity-specific sentinel so callers that touch several
// entities in one operation (a move reads a task and a column) can tell
// which lookup failed.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrBoardNotFound     = errors.New("board not found")
	ErrColumnNotFound    = errors.New("column not found")
	ErrTaskNotFound      = errors.New("task not found")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}

// WorkspaceRepository defines the interface for workspace and team data access
type WorkspaceRepository interface {
	Create(workspace *models.Workspace) error
	FindByID(id uint64) (*models.Workspace, error)
	ListByOwner(ownerID uint64) ([]models.Workspace, error)

	CreateTeam(team *models.Team) error
	FindTeamByID(id uint64) (*models.Team, error)
	ListTeams(workspaceID uint64) ([]models.Team, error)
	UpdateTeam(team *models.Team) error
	AddUserToTeam(userTeam *models.UserTeam) error

	// IsVisibleTo reports whether the user owns the workspace or belongs
	// to one of its teams.
	IsVisibleTo(workspaceID, userID uint64) (bool, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	Create(board *models.Board) error
	FindByID(id uint64) (*models.Board, error)
	ListByWorkspace(workspaceID uint64) ([]models.Board, error)
	Update(board *models.Board) error

	// Delete removes the board and cascades to its columns, their tasks
	// and those tasks' comments within a single transaction.
	Delete(id uint64) error
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	Create(column *models.Column) error
	FindByID(id uint64) (*models.Column, error)

	// ListByBoard returns the board's columns sorted by order (ties by id).
	ListByBoard(boardID uint64) ([]models.Column, error)
	Update(column *models.Column) error

	// DeleteAndCompact removes the column with its tasks and their
	// comments, then renumbers the board's remaining columns densely.
	// All of it happens in one transaction.
	DeleteAndCompact(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByColumn returns the column's tasks sorted by order (ties by id).
	ListByColumn(columnID uint64) ([]models.Task, error)
	Update(task *models.Task) error

	// DeleteAndCompact removes the task with its comments and renumbers
	// the column's remaining tasks densely, in one transaction.
	DeleteAndCompact(id uint64) error

	// Move relocates the task to destColumnID at destIndex. Snapshots of
	// both columns are read and every affected order is written inside
	// the same transaction, so the dense-rank invariant never leaks a
	// partial state. Returns the moved task as persisted.
	Move(taskID, destColumnID uint64, destIndex int) (*models.Task, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error

	// ListByTask returns the task's comments in insertion order
	// (created_at, ties by id) with the author preloaded.
	ListByTask(taskID uint64, params utils.PaginationParams) ([]models.Comment, int64, error)
}

// byRank sorts by the dense order column with id as the defensive
// tie-break. clause.OrderByColumn quotes "order" correctly per dialect.
func byRank(db *gorm.DB) *gorm.DB {
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}

func taskEntries(tasks []models.Task) []ordering.Entry {
	entries := make([]ordering.Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = ordering.Entry{ID: t.ID, Order: t.Order}
	}
	return entries
}

func columnEntries(columns []models.Column) []ordering.Entry {
	entries := make([]ordering.Entry, len(columns))
	for i, c := range columns {
		entries[i] = ordering.Entry{ID: c.ID, Order: c.Order}
	}
	return entries
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
