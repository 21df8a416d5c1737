package entities

import "time"

// Agent represents the persisted agent configuration.
type Agent struct {
	ID        string    `gorm:"type:varchar(40);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	Prompt    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Sessions []Session `gorm:"foreignKey:AgentID;constraint:OnDelete:CASCADE"`
}

func (Agent) TableName() string {
	return "agent_api.agents"
}
