package chat

import (
	"context"
	"time"
)

// Role attributes a message to one side of the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// IsValid reports whether the role is one of the fixed set.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Session is one continuous conversation thread under a single agent.
type Session struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one turn in a conversation. Messages are append-only and are
// never updated or individually deleted.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository defines session persistence. GetByID returns (nil, nil)
// when no row matches.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines message persistence. CreatePair inserts the
// user/assistant messages atomically: either both rows land or neither does.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	CreatePair(ctx context.Context, userMsg, assistantMsg *Message) error
	ListBySession(ctx context.Context, sessionID string) ([]Message, error)
}
