package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskboard/kanban-api/internal/errors"
	"github.com/taskboard/kanban-api/internal/ordering"
	"github.com/taskboard/kanban-api/internal/repository"
	"github.com/taskboard/kanban-api/internal/services"
)

// respondError maps service and repository errors onto the API error
// envelope. Validation problems become 400s, missing entities 404s,
// and anything unrecognized is a 500 so storage failures never leak a
// partial success.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrWorkspaceNotFound),
		errors.Is(err, repository.ErrTeamNotFound),
		errors.Is(err, repository.ErrBoardNotFound),
		errors.Is(err, repository.ErrColumnNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, ordering.ErrNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, ordering.ErrInvalidIndex):
		apierrors.InvalidIndex(c, "")

	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidTeamRole),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())

	default:
		apierrors.InternalError(c, "")
	}
}
