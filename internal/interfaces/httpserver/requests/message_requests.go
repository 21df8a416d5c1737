package requests

// TextMessageRequest defines the payload for sending a text message.
type TextMessageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Content   string `json:"content" binding:"required,min=1"`
}
