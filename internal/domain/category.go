package domain

import (
	"github.com/google/uuid"
)

// Category represents a board column holding ordered tickets
type Category struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_categories_user_id" json:"user_id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name"`
	Color    string    `gorm:"type:varchar(20);not null;default:'#6B7280'" json:"color"`
	Position int       `gorm:"not null" json:"position"`

	Tickets []Ticket `gorm:"foreignKey:CategoryID" json:"tickets,omitempty"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
