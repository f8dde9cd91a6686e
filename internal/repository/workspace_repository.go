package repository

import (
	"github.com/taskboard/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *GormWorkspaceRepository) Create(workspace *models.Workspace) error {
	return r.db.Create(workspace).Error
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id uint64) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, id).Error; err != nil {
		return nil, notFound(err, ErrWorkspaceNotFound)
	}
	return &workspace, nil
}

// ListByOwner lists the workspaces owned by a user
func (r *GormWorkspaceRepository) ListByOwner(ownerID uint64) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	if err := r.db.Where("owner_id = ?", ownerID).Order("id").Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

// CreateTeam creates a new team
func (r *GormWorkspaceRepository) CreateTeam(team *models.Team) error {
	return r.db.Create(team).Error
}

// FindTeamByID finds a team by ID
func (r *GormWorkspaceRepository) FindTeamByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, notFound(err, ErrTeamNotFound)
	}
	return &team, nil
}

// ListTeams lists the teams of a workspace
func (r *GormWorkspaceRepository) ListTeams(workspaceID uint64) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Where("workspace_id = ?", workspaceID).Order("id").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// UpdateTeam updates a team
func (r *GormWorkspaceRepository) UpdateTeam(team *models.Team) error {
	return r.db.Save(team).Error
}

// AddUserToTeam adds a user to a team
func (r *GormWorkspaceRepository) AddUserToTeam(userTeam *models.UserTeam) error {
	return r.db.Create(userTeam).Error
}

// IsVisibleTo reports whether the user owns the workspace or belongs to
// one of its teams.
func (r *GormWorkspaceRepository) IsVisibleTo(workspaceID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Workspace{}).
		Where("id = ? AND owner_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.Model(&models.UserTeam{}).
		Joins("JOIN teams ON teams.id = user_teams.team_id").
		Where("teams.workspace_id = ? AND user_teams.user_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
