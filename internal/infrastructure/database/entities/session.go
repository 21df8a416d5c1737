package entities

import "time"

// Session represents a persisted conversation thread under one agent.
type Session struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	AgentID   string    `gorm:"type:varchar(40);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Messages []Message `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "agent_api.sessions"
}
