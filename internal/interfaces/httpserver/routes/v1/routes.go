package v1

import (
	"github.com/gin-gonic/gin"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/handlers"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	cfg      *config.Config
}

func NewRoutes(provider *handlers.Provider, cfg *config.Config) *Routes {
	return &Routes{handlers: provider, cfg: cfg}
}

// Register attaches all v1 routes under /v1 prefix. Each route group gets
// its own rate limit bucket.
func (r *Routes) Register(router gin.IRouter) {
	readLimit := middlewares.RateLimitMiddleware(r.cfg.ReadRateLimit)
	writeLimit := middlewares.RateLimitMiddleware(r.cfg.WriteRateLimit)
	sessionLimit := middlewares.RateLimitMiddleware(r.cfg.SessionRateLimit)
	voiceLimit := middlewares.RateLimitMiddleware(r.cfg.VoiceRateLimit)

	group := router.Group("/v1")

	agents := group.Group("/agents")
	agents.POST("", writeLimit, r.handlers.Agent.Create)
	agents.GET("", readLimit, r.handlers.Agent.List)
	agents.GET("/:id", readLimit, r.handlers.Agent.Get)
	agents.PUT("/:id", writeLimit, r.handlers.Agent.Update)
	agents.DELETE("/:id", writeLimit, r.handlers.Agent.Delete)

	sessions := group.Group("/sessions")
	sessions.POST("", sessionLimit, r.handlers.Session.Create)
	sessions.GET("/:id", readLimit, r.handlers.Session.Get)
	sessions.DELETE("/:id", writeLimit, r.handlers.Session.Delete)

	messages := group.Group("/messages")
	messages.POST("/text", writeLimit, r.handlers.Message.SendText)
	messages.POST("/voice", voiceLimit, r.handlers.Message.SendVoice)
}
