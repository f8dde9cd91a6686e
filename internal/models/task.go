package models

import "time"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task carries the same dense Order contract as Column, keyed by
// ColumnID. A task belongs to exactly one column; moving it is atomic
// with respect to the orders of both the source and destination column.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ColumnID    uint64       `gorm:"not null;index" json:"column_id"`
	Order       int          `gorm:"not null" json:"order"`
	AssigneeID  *uint64      `json:"assignee_id"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Category    string       `gorm:"type:varchar(100);not null" json:"category"`
	DueDate     *time.Time   `json:"due_date"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Column   Column    `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}
