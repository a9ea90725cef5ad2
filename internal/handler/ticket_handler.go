package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// TicketHandler handles ticket requests
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicket godoc
// @Summary      Create a ticket
// @Description  Appends a new ticket to the end of its column
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTicketRequest true "Ticket creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TicketResponse} "Ticket created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, ticket)
}

// GetTicket godoc
// @Summary      Get a ticket
// @Description  Returns one ticket with its derived expiry info
// @Tags         tickets
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TicketResponse} "The ticket"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      404 {object} response.ErrorResponse "Ticket not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, ticket)
}

// UpdateTicket godoc
// @Summary      Update a ticket
// @Description  Edits a ticket's fields. Unchanged requests are not written.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Param        request body dto.UpdateTicketRequest true "Ticket update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TicketResponse} "Ticket updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Ticket not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), ticketID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, ticket)
}

// MoveTicket godoc
// @Summary      Move a ticket
// @Description  Drops a ticket at a position inside a column. Position is the insertion index counted without the moved ticket. A drop onto the ticket's own slot is a no-op.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Param        request body dto.MoveTicketRequest true "Move request"
// @Success      200 {object} response.SuccessResponse{data=dto.MoveTicketResponse} "Move result"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Ticket or column not found"
// @Failure      500 {object} response.ErrorResponse "Move could not be persisted; refetch the board"
// @Security     BearerAuth
// @Router       /tickets/{ticketId}/move [put]
func (h *TicketHandler) MoveTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	var req dto.MoveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.ticketService.MoveTicket(c.Request.Context(), ticketID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DeleteTicket godoc
// @Summary      Delete a ticket
// @Description  Removes a ticket, compacts its column and clears any drafts left behind
// @Tags         tickets
// @Produce      json
// @Param        ticketId path string true "Ticket ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Ticket deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid ticket ID"
// @Failure      404 {object} response.ErrorResponse "Ticket not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tickets/{ticketId} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid ticket ID")
		return
	}

	if err := h.ticketService.DeleteTicket(c.Request.Context(), ticketID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Ticket deleted successfully"})
}
