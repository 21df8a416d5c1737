package responses

import (
	"time"

	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/domain/chat"
)

// AgentResponse is the JSON shape for a stored agent.
type AgentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse is the JSON shape for one conversation turn.
type MessageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is the JSON shape for a session with its ordered history.
type SessionResponse struct {
	ID        string            `json:"id"`
	AgentID   string            `json:"agent_id"`
	CreatedAt time.Time         `json:"created_at"`
	Messages  []MessageResponse `json:"messages"`
}

// TextMessageResponse pairs the stored user message with the assistant reply.
type TextMessageResponse struct {
	UserMessage      MessageResponse `json:"user_message"`
	AssistantMessage MessageResponse `json:"assistant_message"`
}

// HealthResponse reports service status and version.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// NewAgentResponse maps a domain agent to its response shape.
func NewAgentResponse(a *agent.Agent) AgentResponse {
	return AgentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Prompt:    a.Prompt,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// NewAgentListResponse maps a page of domain agents.
func NewAgentListResponse(agents []*agent.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, NewAgentResponse(a))
	}
	return out
}

// NewMessageResponse maps a domain message to its response shape.
func NewMessageResponse(m *chat.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// NewSessionResponse maps a session and its history.
func NewSessionResponse(s *chat.Session, history []chat.Message) SessionResponse {
	messages := make([]MessageResponse, 0, len(history))
	for i := range history {
		messages = append(messages, NewMessageResponse(&history[i]))
	}
	return SessionResponse{
		ID:        s.ID,
		AgentID:   s.AgentID,
		CreatedAt: s.CreatedAt,
		Messages:  messages,
	}
}
