package domain

// DefaultNotifyDaysBefore is the default expiry notification lead in days
const DefaultNotifyDaysBefore = 3

// User represents an account owning a board
type User struct {
	BaseModel
	Email            string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name             string `gorm:"type:varchar(100);not null" json:"name"`
	PasswordHash     string `gorm:"type:varchar(255);not null" json:"-"`
	AvatarURL        string `gorm:"type:text" json:"avatar_url"`
	NotifyDaysBefore int    `gorm:"not null;default:3" json:"notify_days_before"`

	Categories []Category `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
