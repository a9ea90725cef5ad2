package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a known priority value
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket represents a card positioned inside a category
type Ticket struct {
	BaseModel
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_tickets_category_id" json:"category_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_tickets_user_id" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	ExpiryDate  *time.Time `gorm:"type:timestamp;index:idx_tickets_expiry_date" json:"expiry_date"`
	Position    int        `gorm:"not null" json:"position"`
}

// TableName specifies the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}
