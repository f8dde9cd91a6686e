package models

// Column is a board lane. Order is a zero-based dense rank unique within
// the board: after every mutation the orders of a board's columns are
// exactly 0..n-1. Columns are hard-deleted so the uniqueness survives
// delete and recreate cycles.
type Column struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	BoardID uint64 `gorm:"not null;index" json:"board_id"`
	Order   int    `gorm:"not null" json:"order"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Tasks []Task `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}
