package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewClient(t *testing.T) {
	// Test with nil config
	client := NewClient(nil)
	if client.config.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected default BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != http.DefaultClient {
		t.Error("Expected default HTTP client")
	}

	// Test with custom config
	customConfig := &Config{
		BaseURL:    "http://example.com",
		Timeout:    5 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	client = NewClient(customConfig)
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("Expected custom BaseURL, got %s", client.config.BaseURL)
	}
	if client.config.Timeout != 5*time.Second {
		t.Errorf("Expected custom timeout, got %v", client.config.Timeout)
	}
	if client.client != customConfig.HTTPClient {
		t.Error("Expected custom HTTP client")
	}
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("Expected /api/auth/login path, got %s", r.URL.Path)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			Ok:    true,
			User:  &User{ID: uuid.New(), Email: req.Email},
			Token: "test-token",
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	resp, err := client.Login(context.Background(), &LoginRequest{
		Email:    "user@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "test-token" {
		t.Errorf("Expected token test-token, got %s", resp.Token)
	}
	if client.config.Token != "test-token" {
		t.Error("Expected token to be stored on the client")
	}

	// Missing fields should fail before any request is made
	if _, err := client.Login(context.Background(), &LoginRequest{Email: "user@example.com"}); err == nil {
		t.Error("Expected error for missing password")
	}
	if _, err := client.Login(context.Background(), nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

func TestCreateConversation(t *testing.T) {
	agentID := uuid.New()
	convID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/conversations" {
			t.Errorf("Expected /api/conversations path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got %q", got)
		}

		var req CreateConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if req.AgentID != agentID {
			t.Errorf("Expected agent %s, got %s", agentID, req.AgentID)
		}

		title := "Plan A Trip To Japan"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(ConversationResponse{
			Ok: true,
			Conversation: &Conversation{
				ID:          convID,
				AgentID:     agentID,
				Title:       &title,
				TitleStatus: "provisional",
			},
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	conv, err := client.CreateConversation(context.Background(), nil, &CreateConversationRequest{
		AgentID: agentID,
		Message: "Can you help me plan a trip to Japan?",
	})
	if err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if conv.ID != convID {
		t.Errorf("Expected conversation %s, got %s", convID, conv.ID)
	}
	if conv.TitleStatus != "provisional" {
		t.Errorf("Expected provisional title status, got %s", conv.TitleStatus)
	}
}

func TestOrganizationScopedPaths(t *testing.T) {
	orgID := uuid.New()
	convID := uuid.New()
	expected := "/api/organizations/" + orgID.String() + "/conversations/" + convID.String()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != expected {
			t.Errorf("Expected %s path, got %s", expected, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ConversationResponse{
			Ok:           true,
			Conversation: &Conversation{ID: convID, OrganizationID: &orgID},
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	conv, err := client.GetConversation(context.Background(), &orgID, convID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if conv.OrganizationID == nil || *conv.OrganizationID != orgID {
		t.Error("Expected organization-scoped conversation")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "test-token"})

	_, err := client.GetConversation(context.Background(), nil, uuid.New())
	if err == nil {
		t.Fatal("Expected error from 403 response")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Forbidden" {
		t.Errorf("Expected message Forbidden, got %q", apiErr.Message)
	}
}
