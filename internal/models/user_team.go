package models

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleMember TeamRole = "member"
)

type UserTeam struct {
	ID     uint64   `gorm:"primarykey" json:"id"`
	UserID uint64   `gorm:"not null;uniqueIndex:idx_user_teams_user_team" json:"user_id"`
	TeamID uint64   `gorm:"not null;uniqueIndex:idx_user_teams_user_team" json:"team_id"`
	Role   TeamRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
