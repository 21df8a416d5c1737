package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/metrics"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/requests"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/responses"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

// SessionHandler exposes conversation session endpoints.
type SessionHandler struct {
	service *chat.Service
	log     zerolog.Logger
}

func NewSessionHandler(service *chat.Service, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With().Str("component", "session-handler").Logger(),
	}
}

// Create godoc
// @Summary      Start a conversation session
// @Description  Creates a session bound to an existing agent.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreateSessionRequest  true  "Session parameters"
// @Success      201      {object}  responses.SessionResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req requests.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(),
			"a7e1c5b9-3f0d-4a82-9c6e-5b1d7f3a9e06")
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), req.AgentID)
	if err != nil {
		responses.HandleError(c, err, "failed to create session")
		return
	}

	metrics.SessionsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, responses.NewSessionResponse(session, nil))
}

// Get godoc
// @Summary      Get a session with its message history
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (sess_xxx)"
// @Success      200  {object}  responses.SessionResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	session, messages, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get session")
		return
	}

	c.JSON(http.StatusOK, responses.NewSessionResponse(session, messages))
}

// Delete godoc
// @Summary      Delete a session
// @Description  Removes the session and every message in it.
// @Tags         sessions
// @Param        id   path  string  true  "Session ID (sess_xxx)"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete session")
		return
	}

	c.Status(http.StatusNoContent)
}
