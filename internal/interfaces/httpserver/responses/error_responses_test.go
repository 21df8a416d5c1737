package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

func recordHandleError(err error, fallback string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	HandleError(c, err, fallback)
	return w
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		errorType  platformerrors.ErrorType
		wantStatus int
	}{
		{"not found", platformerrors.ErrorTypeNotFound, http.StatusNotFound},
		{"validation", platformerrors.ErrorTypeValidation, http.StatusBadRequest},
		{"external", platformerrors.ErrorTypeExternal, http.StatusBadGateway},
		{"database", platformerrors.ErrorTypeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := platformerrors.NewError(context.Background(), platformerrors.LayerDomain,
				tt.errorType, "something went wrong", nil, "00000000-0000-0000-0000-000000000020")

			w := recordHandleError(err, "fallback")

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestHandleErrorUpstreamCauseNotSurfaced(t *testing.T) {
	cause := errors.New("provider rejected key sk-secret")
	err := platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal, "speech-to-text failed", cause,
		"00000000-0000-0000-0000-000000000021")

	w := recordHandleError(err, "voice pipeline failed")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["message"] != "speech-to-text failed" {
		t.Errorf("Expected generic message, got %v", response["message"])
	}
	if strings.Contains(w.Body.String(), "sk-secret") {
		t.Error("Upstream cause leaked into the response body")
	}
}

func TestHandleErrorFallbackMessage(t *testing.T) {
	err := platformerrors.NewError(context.Background(), platformerrors.LayerDomain,
		platformerrors.ErrorTypeValidation, "", nil, "00000000-0000-0000-0000-000000000022")

	w := recordHandleError(err, "request rejected")

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["message"] != "request rejected" {
		t.Errorf("Expected fallback message, got %v", response["message"])
	}
}

func TestHandleErrorNonPlatformError(t *testing.T) {
	w := recordHandleError(errors.New("boom"), "internal failure")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
