package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/docsense/internal/core/domain"
)

func TestGenerateSendsPromptAndOptions(t *testing.T) {
	var payload generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"  The per diem is 5,000.  ","done":true}`))
	}))
	defer server.Close()

	client := New(server.URL+"/", "llama3")
	got, err := client.Generate(context.Background(), "question?", domain.GenerationOptions{
		MaxTokens:   2048,
		Temperature: 0.3,
		TopP:        0.8,
		TopK:        40,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "The per diem is 5,000." {
		t.Fatalf("unexpected response %q", got)
	}
	if payload.Model != "llama3" || payload.Prompt != "question?" || payload.Stream {
		t.Fatalf("unexpected request %+v", payload)
	}
	if payload.Options["num_predict"] != float64(2048) || payload.Options["top_k"] != float64(40) {
		t.Fatalf("unexpected options %+v", payload.Options)
	}
}

func TestGenerateReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL, "llama3").Generate(context.Background(), "hi", domain.GenerationOptions{})
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.HTTPStatus() != http.StatusBadGateway {
		t.Fatalf("expected status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}
