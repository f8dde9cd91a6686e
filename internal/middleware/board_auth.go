package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/kanban-api/internal/constants"
	"github.com/taskboard/kanban-api/internal/database"
	apierrors "github.com/taskboard/kanban-api/internal/errors"
	"github.com/taskboard/kanban-api/internal/models"
)

// RequireBoardAccess checks that the board named by the id URL
// parameter exists and that the current user can see its workspace
// (owner or team member). The board is stored in the context.
func RequireBoardAccess(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid board ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var board models.Board
		if err := database.GetDB().First(&board, boardID).Error; err != nil {
			apierrors.NotFound(c, "Board not found")
			c.Abort()
			return
		}

		if !workspaceVisibleTo(board.WorkspaceID, userID) {
			// 404 instead of 403 to avoid leaking board existence
			apierrors.NotFound(c, "Board not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBoard, board)
		c.Next()
	}
}

// GetBoard retrieves the board loaded by RequireBoardAccess.
func GetBoard(c *gin.Context) (models.Board, bool) {
	value, exists := c.Get(constants.ContextKeyBoard)
	if !exists {
		return models.Board{}, false
	}
	board, ok := value.(models.Board)
	return board, ok
}

func workspaceVisibleTo(workspaceID, userID uint64) bool {
	db := database.GetDB()

	var count int64
	db.Model(&models.Workspace{}).
		Where("id = ? AND owner_id = ?", workspaceID, userID).
		Count(&count)
	if count > 0 {
		return true
	}

	db.Model(&models.UserTeam{}).
		Joins("JOIN teams ON teams.id = user_teams.team_id").
		Where("teams.workspace_id = ? AND user_teams.user_id = ?", workspaceID, userID).
		Count(&count)
	return count > 0
}
