package models

import "time"

type Team struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace_id"`
	InviteCode  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Workspace Workspace  `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Members   []UserTeam `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}
