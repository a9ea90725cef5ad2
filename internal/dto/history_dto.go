package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HistoryEntryResponse represents one audit line
type HistoryEntryResponse struct {
	ID        uuid.UUID       `json:"historyId"`
	EntryType string          `json:"entryType" example:"card"`
	Action    string          `json:"action" example:"ticket_moved"`
	TicketID  *uuid.UUID      `json:"ticketId,omitempty"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"createdAt"`
}
