package entities

import "time"

// Message represents one persisted conversation turn. Rows are append-only;
// conversation order is created_at ascending with id as tiebreaker.
type Message struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	SessionID string    `gorm:"type:varchar(40);not null;index:idx_messages_session_created"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_session_created"`
}

func (Message) TableName() string {
	return "agent_api.messages"
}
