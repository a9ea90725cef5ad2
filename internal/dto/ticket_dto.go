package dto

import (
	"time"

	"github.com/google/uuid"

	"ticket-board-api/internal/expiry"
)

// CreateTicketRequest represents the request to create a ticket. The new
// ticket is appended to the end of its column.
type CreateTicketRequest struct {
	CategoryID  uuid.UUID  `json:"categoryId" binding:"required"`
	Title       string     `json:"title" binding:"required,min=1,max=255" example:"Fix login redirect"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high" example:"medium"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty" example:"2024-03-31T00:00:00Z"`
}

// UpdateTicketRequest represents the request to edit a ticket's fields.
// All fields are optional; ClearExpiryDate removes the date entirely.
type UpdateTicketRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string    `json:"description" binding:"omitempty,max=5000"`
	Priority        *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	ClearExpiryDate bool       `json:"clearExpiryDate,omitempty"`
}

// MoveTicketRequest drops a ticket at a position inside a column. Position
// is the insertion index in the target column counted without the moved
// ticket itself.
type MoveTicketRequest struct {
	TargetCategoryID uuid.UUID `json:"targetCategoryId" binding:"required"`
	Position         int       `json:"position" binding:"min=0"`
}

// TicketResponse represents a ticket with its derived expiry info
type TicketResponse struct {
	ID          uuid.UUID    `json:"ticketId" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	CategoryID  uuid.UUID    `json:"categoryId"`
	Title       string       `json:"title" example:"Fix login redirect"`
	Description string       `json:"description"`
	Priority    string       `json:"priority" example:"medium"`
	ExpiryDate  *time.Time   `json:"expiryDate,omitempty"`
	Position    int          `json:"position" example:"0"`
	Expiry      *expiry.Info `json:"expiry,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// MoveTicketResponse reports the committed move
type MoveTicketResponse struct {
	Ticket TicketResponse `json:"ticket"`
	// Moved is false when the drop was a no-op (same column, same index)
	Moved bool `json:"moved"`
}
