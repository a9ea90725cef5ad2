package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// BoardHandler handles board read requests
type BoardHandler struct {
	boardService service.BoardService
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// GetBoard godoc
// @Summary      Get the board
// @Description  Returns every column with its tickets in display order
// @Tags         board
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "The board"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	board, err := h.boardService.GetBoard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// RefreshBoard godoc
// @Summary      Refresh the board
// @Description  Rebuilds the board from the database, bypassing the cache. Used after a failed move to recover authoritative state.
// @Tags         board
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.BoardResponse} "The refreshed board"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /board/refresh [post]
func (h *BoardHandler) RefreshBoard(c *gin.Context) {
	board, err := h.boardService.RefreshBoard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}
