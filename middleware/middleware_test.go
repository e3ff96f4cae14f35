package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spinlog/server/models"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusCreated, models.WebhookAck{OK: true})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var ack models.WebhookAck
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !ack.OK {
		t.Error("Expected ok=true")
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusBadRequest, "bad input")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != http.StatusText(http.StatusBadRequest) {
		t.Errorf("Expected error %q, got %q", http.StatusText(http.StatusBadRequest), resp.Error)
	}
	if resp.Message != "bad input" {
		t.Errorf("Expected message 'bad input', got %q", resp.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	body := bytes.NewReader([]byte(`{"ok":true}`))
	req := httptest.NewRequest("POST", "/", body)

	var ack models.WebhookAck
	if err := ParseJSONBody(req, &ack); err != nil {
		t.Fatalf("Expected parse to succeed: %v", err)
	}
	if !ack.OK {
		t.Error("Expected ok=true after parse")
	}
}

func TestParseJSONBody_Invalid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("not json"))

	var ack models.WebhookAck
	if err := ParseJSONBody(req, &ack); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestCORS_Preflight(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Inner handler should not run on preflight")
	})

	req := httptest.NewRequest("OPTIONS", "/api/dashboard/stats", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()

	CORS(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dashboard.example.com" {
		t.Errorf("Expected origin echoed back, got %q", got)
	}
}
