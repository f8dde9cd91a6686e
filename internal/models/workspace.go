package models

import (
	"time"

	"gorm.io/gorm"
)

type Workspace struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID   uint64         `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner  User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Teams  []Team  `gorm:"foreignKey:WorkspaceID" json:"teams,omitempty"`
	Boards []Board `gorm:"foreignKey:WorkspaceID" json:"boards,omitempty"`
}
