package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/kanban-api/internal/dto"
	apierrors "github.com/taskboard/kanban-api/internal/errors"
	"github.com/taskboard/kanban-api/internal/middleware"
	"github.com/taskboard/kanban-api/internal/services"
)

// ColumnHandler coordinates column HTTP handlers.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// ListColumns returns the columns of a board sorted by order.
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	board, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board not found in context")
		return
	}

	columns, err := h.columnService.ListColumns(board.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTOs(columns))
}

// CreateColumn creates a column at the end of a board. Any order value
// in the request body is ignored: the server recomputes it so the
// dense-rank invariant stays authoritative.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	type CreateColumnRequest struct {
		Name    string `json:"name" binding:"required"`
		BoardID uint64 `json:"board_id" binding:"required"`
		Order   *int   `json:"order"` // accepted but ignored
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(req.Name, req.BoardID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// UpdateColumn renames a column.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	columnID, err := strconv.ParseUint(c.Param("columnId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	type UpdateColumnRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.RenameColumn(columnID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn deletes a column, cascading to its tasks and compacting
// the board's remaining column orders.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	columnID, err := strconv.ParseUint(c.Param("columnId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	if err := h.columnService.DeleteColumn(columnID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
