package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitmanager/internal/models"
)

func TestClaudeClient_Invoke(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{
				{"type": "text", "text": "Prima parte. "},
				{"type": "text", "text": "Seconda parte."},
			},
			"usage": map[string]int{"input_tokens": 1200, "output_tokens": 800},
		})
	}))
	defer server.Close()

	client, err := NewClaudeClient(ClaudeConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "claude-sonnet-4-20250514",
	})
	if err != nil {
		t.Fatalf("NewClaudeClient failed: %v", err)
	}

	reply, err := client.Invoke(context.Background(), []models.Turn{
		{Role: models.RoleUser, Content: "ciao"},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if gotPath != "/v1/messages" {
		t.Errorf("Expected /v1/messages, got %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected API key header, got %q", gotKey)
	}
	if gotVersion != anthropicVersion {
		t.Errorf("Expected anthropic-version header, got %q", gotVersion)
	}
	if gotBody["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("Unexpected model in request: %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(8192) {
		t.Errorf("Expected default max_tokens 8192, got %v", gotBody["max_tokens"])
	}

	if reply.Text != "Prima parte. Seconda parte." {
		t.Errorf("Expected concatenated text blocks, got %q", reply.Text)
	}
	if reply.Usage.InputTokens != 1200 || reply.Usage.OutputTokens != 800 {
		t.Errorf("Unexpected usage: %+v", reply.Usage)
	}
}

func TestClaudeClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client, err := NewClaudeClient(ClaudeConfig{BaseURL: server.URL, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("NewClaudeClient failed: %v", err)
	}

	_, err = client.Invoke(context.Background(), []models.Turn{{Role: models.RoleUser, Content: "ciao"}})
	if err == nil {
		t.Fatal("Expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "API error (status 429)") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestClaudeClient_NoTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{},
			"usage":   map[string]int{"input_tokens": 10, "output_tokens": 0},
		})
	}))
	defer server.Close()

	client, err := NewClaudeClient(ClaudeConfig{BaseURL: server.URL, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("NewClaudeClient failed: %v", err)
	}

	if _, err := client.Invoke(context.Background(), []models.Turn{{Role: models.RoleUser, Content: "ciao"}}); err == nil {
		t.Error("Expected error for reply without text blocks")
	}
}

func TestNewClaudeClient_Validation(t *testing.T) {
	if _, err := NewClaudeClient(ClaudeConfig{Model: "m"}); err == nil {
		t.Error("Expected error for missing API key")
	}
	if _, err := NewClaudeClient(ClaudeConfig{APIKey: "k"}); err == nil {
		t.Error("Expected error for missing model")
	}
}
