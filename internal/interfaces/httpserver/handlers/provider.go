package handlers

import (
	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/domain/chat"
)

// Provider wires HTTP handlers.
type Provider struct {
	Agent   *AgentHandler
	Session *SessionHandler
	Message *MessageHandler
}

func NewProvider(cfg *config.Config, agentService *agent.Service, chatService *chat.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Agent:   NewAgentHandler(agentService, log),
		Session: NewSessionHandler(chatService, log),
		Message: NewMessageHandler(cfg, chatService, log),
	}
}
