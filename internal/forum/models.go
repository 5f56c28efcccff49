package forum

import "time"

// Message is an append-only coordination forum post. Messages are never
// edited or deleted.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(50);not null" json:"user_id"`
	UserName  string    `gorm:"type:varchar(200);not null" json:"user_name"`
	ProjectID *string   `gorm:"type:varchar(50)" json:"project_id"`
	Message   string    `gorm:"not null" json:"message"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	Type      string    `gorm:"type:varchar(20);default:'general'" json:"type"`
}

// TableName overrides the default name
func (Message) TableName() string {
	return "forum_messages"
}
