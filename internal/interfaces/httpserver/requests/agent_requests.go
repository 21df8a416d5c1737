package requests

// CreateAgentRequest defines the payload for creating an agent.
type CreateAgentRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=255"`
	Prompt string `json:"prompt" binding:"required,min=1"`
}

// UpdateAgentRequest carries a partial update; omitted fields keep their
// prior value.
type UpdateAgentRequest struct {
	Name   *string `json:"name"`
	Prompt *string `json:"prompt"`
}

// ListAgentsQuery defines pagination query parameters.
type ListAgentsQuery struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=100"`
}
