package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// CategoryHandler handles board column requests
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories godoc
// @Summary      List columns
// @Description  Returns the caller's columns in board order
// @Tags         categories
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse} "Columns"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary      Create a column
// @Description  Appends a new column to the end of the board
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "Column creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CategoryResponse} "Column created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary      Update a column
// @Description  Renames or recolors a column
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpdateCategoryRequest true "Column update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse} "Column updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/{categoryId} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a column
// @Description  Removes a column and compacts the surviving columns' positions
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Column deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

// ReorderCategories godoc
// @Summary      Reorder columns
// @Description  Moves a column to a target index on the board
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.ReorderCategoriesRequest true "Reorder request"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse} "Columns in new order"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/reorder [put]
func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var req dto.ReorderCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	categories, err := h.categoryService.ReorderCategories(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}
