package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/response"
	"ticket-board-api/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp godoc
// @Summary      Create an account
// @Description  Creates an account and seeds the board with the default columns
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignUpRequest true "Sign up request"
// @Success      201 {object} response.SuccessResponse{data=dto.AuthResponse} "Account created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      409 {object} response.ErrorResponse "Email already registered"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// SignIn godoc
// @Summary      Sign in
// @Description  Authenticates by email and password and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.SignInRequest true "Sign in request"
// @Success      200 {object} response.SuccessResponse{data=dto.AuthResponse} "Signed in"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Invalid email or password"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SignOut godoc
// @Summary      Sign out
// @Description  Invalidates the presented bearer token
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Signed out"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), authData.Token); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Signed out successfully"})
}

// Session godoc
// @Summary      Current session
// @Description  Returns the profile of the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Session"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	user, err := h.authService.Session(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
