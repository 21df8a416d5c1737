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

	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/handlers"
)

// MockAgentRepo is a func-field mock of agent.Repository.
type MockAgentRepo struct {
	CreateFunc  func(ctx context.Context, a *agent.Agent) error
	GetByIDFunc func(ctx context.Context, id string) (*agent.Agent, error)
	ListFunc    func(ctx context.Context, skip, limit int) ([]*agent.Agent, error)
	UpdateFunc  func(ctx context.Context, a *agent.Agent) error
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockAgentRepo) Create(ctx context.Context, a *agent.Agent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *MockAgentRepo) GetByID(ctx context.Context, id string) (*agent.Agent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAgentRepo) List(ctx context.Context, skip, limit int) ([]*agent.Agent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, skip, limit)
	}
	return nil, nil
}

func (m *MockAgentRepo) Update(ctx context.Context, a *agent.Agent) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *MockAgentRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func setupAgentTestRouter(repo agent.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := agent.NewService(repo, zerolog.Nop())
	handler := handlers.NewAgentHandler(service, zerolog.Nop())

	r := gin.New()
	group := r.Group("/v1/agents")
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return r
}

func TestAgentHandler_Create(t *testing.T) {
	router := setupAgentTestRouter(&MockAgentRepo{})

	body := bytes.NewBufferString(`{"name":"helper","prompt":"You help."}`)
	req, _ := http.NewRequest("POST", "/v1/agents", body)
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
	if response["name"] != "helper" {
		t.Errorf("Expected name 'helper', got %v", response["name"])
	}
	if id, _ := response["id"].(string); len(id) == 0 {
		t.Error("Expected a generated agent id")
	}
}

func TestAgentHandler_CreateMissingFields(t *testing.T) {
	router := setupAgentTestRouter(&MockAgentRepo{})

	body := bytes.NewBufferString(`{"name":"helper"}`)
	req, _ := http.NewRequest("POST", "/v1/agents", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestAgentHandler_GetNotFound(t *testing.T) {
	router := setupAgentTestRouter(&MockAgentRepo{})

	req, _ := http.NewRequest("GET", "/v1/agents/agent_missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestAgentHandler_UpdatePartial(t *testing.T) {
	repo := &MockAgentRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*agent.Agent, error) {
			return &agent.Agent{ID: id, Name: "helper", Prompt: "You help."}, nil
		},
	}
	router := setupAgentTestRouter(repo)

	body := bytes.NewBufferString(`{"name":"renamed"}`)
	req, _ := http.NewRequest("PUT", "/v1/agents/agent_1", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["name"] != "renamed" {
		t.Errorf("Expected name 'renamed', got %v", response["name"])
	}
	if response["prompt"] != "You help." {
		t.Errorf("Expected prompt untouched, got %v", response["prompt"])
	}
}

func TestAgentHandler_Delete(t *testing.T) {
	deleted := false
	repo := &MockAgentRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*agent.Agent, error) {
			return &agent.Agent{ID: id, Name: "helper", Prompt: "You help."}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	router := setupAgentTestRouter(repo)

	req, _ := http.NewRequest("DELETE", "/v1/agents/agent_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if !deleted {
		t.Error("Expected repository delete to be called")
	}
}
