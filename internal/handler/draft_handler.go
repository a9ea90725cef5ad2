package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// DraftHandler handles draft recovery requests
type DraftHandler struct {
	draftService service.DraftService
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// OpenEditor godoc
// @Summary      Open a ticket editor
// @Description  Returns the editor's opening state: the ticket, its stored draft if any, and whether the draft was restored over the ticket's values
// @Tags         drafts
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.EditorStateResponse} "Editor state"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      404 {object} response.ErrorResponse "Ticket not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/editor [get]
func (h *DraftHandler) OpenEditor(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	state, err := h.draftService.OpenEditor(c.Request.Context(), ticketID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, state)
}

// GetDraft godoc
// @Summary      Get a draft
// @Description  Returns the caller's draft for a ticket
// @Tags         drafts
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.DraftResponse} "The draft"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      404 {object} response.ErrorResponse "No draft for this ticket"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/draft [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), ticketID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, draft)
}

// SaveDraft godoc
// @Summary      Save a draft
// @Description  Upserts the caller's draft for a ticket
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Param        request body dto.SaveDraftRequest true "Draft content"
// @Success      200 {object} response.SuccessResponse{data=dto.DraftResponse} "Draft saved"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Ticket not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/draft [put]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	req.TicketID = ticketID

	draft, err := h.draftService.SaveDraft(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, draft)
}

// DeleteDraft godoc
// @Summary      Delete a draft
// @Description  Discards the caller's draft for a ticket. Deleting a missing draft succeeds.
// @Tags         drafts
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Draft deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/draft [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), ticketID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Draft deleted successfully"})
}

// ListDraftedTickets godoc
// @Summary      List drafted tickets
// @Description  Lists the tickets the caller has pending drafts for, so the board can badge them
// @Tags         drafts
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.DraftedTicketsResponse} "Tickets with drafts"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /drafts [get]
func (h *DraftHandler) ListDraftedTickets(c *gin.Context) {
	drafted, err := h.draftService.TicketIDsWithDrafts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, drafted)
}
