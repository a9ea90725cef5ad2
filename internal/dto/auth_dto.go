package dto

import (
	"time"

	"github.com/google/uuid"
)

// SignUpRequest represents the request to create an account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"hunter22"`
	Name     string `json:"name" binding:"required,min=1,max=100" example:"Jane Doe"`
}

// SignInRequest represents the request to authenticate
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"hunter22"`
}

// AuthResponse carries the bearer credential and the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents the user profile response
type UserResponse struct {
	ID               uuid.UUID `json:"userId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Email            string    `json:"email" example:"jane@example.com"`
	Name             string    `json:"name" example:"Jane Doe"`
	AvatarURL        string    `json:"avatarUrl,omitempty"`
	NotifyDaysBefore int       `json:"notifyDaysBefore" example:"3"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// UpdateUserRequest represents the request to update the profile
type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,url"`
}

// UpdateNotificationSettingsRequest sets the expiry notification lead
type UpdateNotificationSettingsRequest struct {
	DaysBefore int `json:"daysBefore" binding:"required,min=1,max=30" example:"3"`
}

// AvatarPresignedURLRequest asks for an upload URL for a new avatar
type AvatarPresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required" example:"avatar.png"`
	ContentType string `json:"contentType" binding:"required" example:"image/png"`
}

// AvatarPresignedURLResponse carries the upload URL and the final file URL
type AvatarPresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}
