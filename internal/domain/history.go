package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// History entry types
const (
	HistoryTypeBoard = "board"
	HistoryTypeCard  = "card"
)

// History actions
const (
	ActionTicketCreated       = "ticket_created"
	ActionTicketUpdated       = "ticket_updated"
	ActionTicketMoved         = "ticket_moved"
	ActionTicketDeleted       = "ticket_deleted"
	ActionCategoryCreated     = "category_created"
	ActionCategoryUpdated     = "category_updated"
	ActionCategoryDeleted     = "category_deleted"
	ActionCategoriesReordered = "categories_reordered"
)

// HistoryEntry is an append-only audit record of a board or card event
type HistoryEntry struct {
	BaseModel
	EntryType string         `gorm:"type:varchar(10);not null;index:idx_history_entry_type" json:"entry_type"`
	Action    string         `gorm:"type:varchar(50);not null" json:"action"`
	TicketID  *uuid.UUID     `gorm:"type:uuid;index:idx_history_ticket_id" json:"ticket_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_history_user_id" json:"user_id"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
}

// TableName specifies the table name for HistoryEntry
func (HistoryEntry) TableName() string {
	return "history_entries"
}
