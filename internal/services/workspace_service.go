package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/kanban-api/internal/models"
	"github.com/taskboard/kanban-api/internal/repository"
	"github.com/taskboard/kanban-api/internal/utils"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidTeamRole = errors.New("invalid team role")
)

// WorkspaceService handles workspace and team business logic.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, userRepo repository.UserRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

// CreateWorkspace creates a workspace owned by the given user.
func (s *WorkspaceService) CreateWorkspace(name string, ownerID uint64) (*models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	workspace := &models.Workspace{
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.workspaceRepo.Create(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return workspace, nil
}

// ListWorkspaces lists the workspaces owned by a user.
func (s *WorkspaceService) ListWorkspaces(ownerID uint64) ([]models.Workspace, error) {
	return s.workspaceRepo.ListByOwner(ownerID)
}

// GetWorkspace returns a workspace by ID.
func (s *WorkspaceService) GetWorkspace(id uint64) (*models.Workspace, error) {
	return s.workspaceRepo.FindByID(id)
}

// CreateTeam creates a team inside a workspace with a fresh invite code.
func (s *WorkspaceService) CreateTeam(name string, workspaceID uint64) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	team := &models.Team{
		Name:        name,
		WorkspaceID: workspaceID,
		InviteCode:  inviteCode,
	}
	if err := s.workspaceRepo.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// ListTeams lists the teams of a workspace.
func (s *WorkspaceService) ListTeams(workspaceID uint64) ([]models.Team, error) {
	if _, err := s.workspaceRepo.FindByID(workspaceID); err != nil {
		return nil, err
	}
	return s.workspaceRepo.ListTeams(workspaceID)
}

// RegenerateInviteCode replaces the team's invite code. The old code
// stops working immediately.
func (s *WorkspaceService) RegenerateInviteCode(teamID uint64) (*models.Team, error) {
	team, err := s.workspaceRepo.FindTeamByID(teamID)
	if err != nil {
		return nil, err
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}
	team.InviteCode = inviteCode
	if err := s.workspaceRepo.UpdateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// AddUserToTeam adds a user to a team with the given role (defaults to
// member).
func (s *WorkspaceService) AddUserToTeam(userID, teamID uint64, role models.TeamRole) (*models.UserTeam, error) {
	if role == "" {
		role = models.TeamRoleMember
	}
	if role != models.TeamRoleOwner && role != models.TeamRoleMember {
		return nil, ErrInvalidTeamRole
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.workspaceRepo.FindTeamByID(teamID); err != nil {
		return nil, err
	}

	userTeam := &models.UserTeam{
		UserID: userID,
		TeamID: teamID,
		Role:   role,
	}
	if err := s.workspaceRepo.AddUserToTeam(userTeam); err != nil {
		return nil, fmt.Errorf("failed to add user to team: %w", err)
	}
	return userTeam, nil
}
