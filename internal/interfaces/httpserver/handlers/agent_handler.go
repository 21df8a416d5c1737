package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/requests"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/responses"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

// AgentHandler exposes agent CRUD endpoints.
type AgentHandler struct {
	service *agent.Service
	log     zerolog.Logger
}

func NewAgentHandler(service *agent.Service, log zerolog.Logger) *AgentHandler {
	return &AgentHandler{
		service: service,
		log:     log.With().Str("component", "agent-handler").Logger(),
	}
}

// Create godoc
// @Summary      Create a new AI agent
// @Description  Creates an agent with a name and system prompt.
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreateAgentRequest  true  "Agent definition"
// @Success      201      {object}  responses.AgentResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /v1/agents [post]
func (h *AgentHandler) Create(c *gin.Context) {
	var req requests.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(),
			"e9b3d7f1-5a8c-42e6-b0d4-7f1b3d5e9c04")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.Name, req.Prompt)
	if err != nil {
		responses.HandleError(c, err, "failed to create agent")
		return
	}

	c.JSON(http.StatusCreated, responses.NewAgentResponse(a))
}

// List godoc
// @Summary      List agents
// @Description  Returns a paginated list of agents.
// @Tags         agents
// @Produce      json
// @Param        skip   query     int  false  "Rows to skip"    default(0)
// @Param        limit  query     int  false  "Max rows"        default(100)
// @Success      200    {array}   responses.AgentResponse
// @Router       /v1/agents [get]
func (h *AgentHandler) List(c *gin.Context) {
	var query requests.ListAgentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(),
			"b5d9f3a7-1e4c-48b2-a6e0-9d3f5b7e1a08")
		return
	}

	agents, err := h.service.List(c.Request.Context(), query.Skip, query.Limit)
	if err != nil {
		responses.HandleError(c, err, "failed to list agents")
		return
	}

	c.JSON(http.StatusOK, responses.NewAgentListResponse(agents))
}

// Get godoc
// @Summary      Get an agent by ID
// @Tags         agents
// @Produce      json
// @Param        id   path      string  true  "Agent ID (agent_xxx)"
// @Success      200  {object}  responses.AgentResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/agents/{id} [get]
func (h *AgentHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get agent")
		return
	}

	c.JSON(http.StatusOK, responses.NewAgentResponse(a))
}

// Update godoc
// @Summary      Update an agent
// @Description  Partially updates an agent's name and/or prompt; omitted fields are untouched.
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Agent ID (agent_xxx)"
// @Param        request  body      requests.UpdateAgentRequest  true  "Fields to update"
// @Success      200      {object}  responses.AgentResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /v1/agents/{id} [put]
func (h *AgentHandler) Update(c *gin.Context) {
	var req requests.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(),
			"f1a5c9e3-7b0d-46f4-b8c2-1d5f7b9e3a12")
		return
	}

	a, err := h.service.Update(c.Request.Context(), c.Param("id"), agent.UpdateParams{
		Name:   req.Name,
		Prompt: req.Prompt,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update agent")
		return
	}

	c.JSON(http.StatusOK, responses.NewAgentResponse(a))
}

// Delete godoc
// @Summary      Delete an agent
// @Description  Removes the agent together with its sessions and messages.
// @Tags         agents
// @Param        id   path  string  true  "Agent ID (agent_xxx)"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/agents/{id} [delete]
func (h *AgentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.HandleError(c, err, "failed to delete agent")
		return
	}

	c.Status(http.StatusNoContent)
}
