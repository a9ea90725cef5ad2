package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCategoryRequest represents the request to add a column to the board
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100" example:"In Progress"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#3B82F6"`
}

// UpdateCategoryRequest represents the request to rename or recolor a column
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// ReorderCategoriesRequest moves a column to a new index on the board
type ReorderCategoriesRequest struct {
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	TargetIndex int       `json:"targetIndex" binding:"min=0"`
}

// CategoryResponse represents a column with its ordered tickets
type CategoryResponse struct {
	ID        uuid.UUID        `json:"categoryId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Name      string           `json:"name" example:"In Progress"`
	Color     string           `json:"color" example:"#3B82F6"`
	Position  int              `json:"position" example:"1"`
	Tickets   []TicketResponse `json:"tickets"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// BoardResponse is the full board: every column with its tickets in order
type BoardResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
