package domain

import (
	"time"

	"github.com/google/uuid"
)

// Draft holds unsaved editor changes for one ticket and one user.
// Its UpdatedAt is compared against the ticket's UpdatedAt to decide
// whether the draft should be restored when the editor opens.
type Draft struct {
	BaseModel
	TicketID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_drafts_ticket_user,priority:1" json:"ticket_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_drafts_ticket_user,priority:2" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	ExpiryDate  *time.Time `gorm:"type:timestamp" json:"expiry_date"`
	// CategoryID is set when the draft carries a pending column move
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id"`
}

// TableName specifies the table name for Draft
func (Draft) TableName() string {
	return "drafts"
}
