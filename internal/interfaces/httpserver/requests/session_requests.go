package requests

// CreateSessionRequest defines the payload for opening a session.
type CreateSessionRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
}
