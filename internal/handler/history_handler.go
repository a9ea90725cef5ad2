package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// HistoryHandler handles audit log requests
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetBoardHistory godoc
// @Summary      Board history
// @Description  Returns the caller's board-level audit lines, newest first
// @Tags         history
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.HistoryEntryResponse} "Audit lines"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /history [get]
func (h *HistoryHandler) GetBoardHistory(c *gin.Context) {
	entries, err := h.historyService.GetBoardHistory(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entries)
}

// GetCardHistory godoc
// @Summary      Card history
// @Description  Returns one ticket's audit lines, newest first
// @Tags         history
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.HistoryEntryResponse} "Audit lines"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/history [get]
func (h *HistoryHandler) GetCardHistory(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	entries, err := h.historyService.GetCardHistory(c.Request.Context(), ticketID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, entries)
}
