package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/handlers"
)

func setupSessionTestRouter(m chatMocks) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := chat.NewService(handlerTestConfig(), m.agents, m.sessions, m.messages, m.provider, zerolog.Nop())
	handler := handlers.NewSessionHandler(service, zerolog.Nop())

	r := gin.New()
	group := r.Group("/v1/sessions")
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.DELETE("/:id", handler.Delete)
	return r
}

func TestSessionHandler_Create(t *testing.T) {
	mocks := knownSessionMocks()
	router := setupSessionTestRouter(mocks)

	body := bytes.NewBufferString(`{"agent_id":"agent_1"}`)
	req, _ := http.NewRequest("POST", "/v1/sessions", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["agent_id"] != "agent_1" {
		t.Errorf("Expected agent_id 'agent_1', got %v", response["agent_id"])
	}
}

func TestSessionHandler_CreateUnknownAgent(t *testing.T) {
	mocks := knownSessionMocks()
	mocks.agents = &MockAgentRepo{}
	router := setupSessionTestRouter(mocks)

	body := bytes.NewBufferString(`{"agent_id":"agent_missing"}`)
	req, _ := http.NewRequest("POST", "/v1/sessions", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestSessionHandler_GetWithHistory(t *testing.T) {
	mocks := knownSessionMocks()
	mocks.messages.ListBySessionFunc = func(ctx context.Context, sessionID string) ([]chat.Message, error) {
		return []chat.Message{
			{ID: "msg_1", SessionID: sessionID, Role: chat.RoleUser, Content: "hi"},
			{ID: "msg_2", SessionID: sessionID, Role: chat.RoleAssistant, Content: "hello"},
		}, nil
	}
	router := setupSessionTestRouter(mocks)

	req, _ := http.NewRequest("GET", "/v1/sessions/sess_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		ID       string `json:"id"`
		Messages []struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(response.Messages))
	}
	if response.Messages[0].ID != "msg_1" || response.Messages[1].ID != "msg_2" {
		t.Errorf("Expected messages in creation order, got %+v", response.Messages)
	}
}

func TestSessionHandler_DeleteUnknown(t *testing.T) {
	mocks := knownSessionMocks()
	mocks.sessions = &MockSessionRepo{}
	router := setupSessionTestRouter(mocks)

	req, _ := http.NewRequest("DELETE", "/v1/sessions/sess_missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}
