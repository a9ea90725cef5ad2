package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveDraftRequest upserts the caller's draft for a ticket
type SaveDraftRequest struct {
	// ID is the cached draft identifier from an earlier save, if any
	ID          *uuid.UUID `json:"draftId,omitempty"`
	TicketID    uuid.UUID  `json:"ticketId" binding:"required"`
	Title       string     `json:"title" binding:"max=255"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	// CategoryID carries a pending column move not yet committed
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
}

// DraftResponse represents a stored draft
type DraftResponse struct {
	ID          uuid.UUID  `json:"draftId"`
	TicketID    uuid.UUID  `json:"ticketId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EditorStateResponse is the state handed to a ticket editor when it
// opens: the persisted ticket, the stored draft if any, and whether the
// draft was restored over the ticket's values
type EditorStateResponse struct {
	Ticket        TicketResponse `json:"ticket"`
	Draft         *DraftResponse `json:"draft,omitempty"`
	DraftRestored bool           `json:"draftRestored"`
	Dirty         bool           `json:"dirty"`
}

// DraftedTicketsResponse lists the caller's tickets with pending drafts
type DraftedTicketsResponse struct {
	TicketIDs []uuid.UUID `json:"ticketIds"`
}
