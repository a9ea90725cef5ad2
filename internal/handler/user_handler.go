package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// UserHandler handles profile and notification settings requests
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe godoc
// @Summary      Get profile
// @Description  Returns the caller's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Profile"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe godoc
// @Summary      Update profile
// @Description  Edits the caller's name or avatar URL
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateUserRequest true "Profile update request"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Profile updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateNotificationSettings godoc
// @Summary      Update notification settings
// @Description  Sets how many days before a ticket's expiry the caller is warned
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateNotificationSettingsRequest true "Notification settings"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Settings updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /users/me/notifications [put]
func (h *UserHandler) UpdateNotificationSettings(c *gin.Context) {
	var req dto.UpdateNotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateNotificationSettings(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// GetAvatarUploadURL godoc
// @Summary      Presign an avatar upload
// @Description  Returns a presigned S3 URL for uploading a new avatar and the URL the avatar will be served from
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body dto.AvatarPresignedURLRequest true "Upload request"
// @Success      200 {object} response.SuccessResponse{data=dto.AvatarPresignedURLResponse} "Presigned URL"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /users/me/avatar/presigned-url [post]
func (h *UserHandler) GetAvatarUploadURL(c *gin.Context) {
	var req dto.AvatarPresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.userService.GetAvatarUploadURL(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
