package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOllamaTestServer(t *testing.T, modelOutput string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("request should not be streaming")
		}

		resp := ollamaGenerateResponse{
			Model:    req.Model,
			Response: modelOutput,
			Done:     true,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOllamaGenerator_Titles(t *testing.T) {
	srv := newOllamaTestServer(t, `{"titles": ["Title One", "Title Two", "Title Three"]}`)
	defer srv.Close()

	gen := NewOllamaGenerator(OllamaConfig{BaseURL: srv.URL, Model: "llama3:8b"})

	titles, err := gen.Titles(context.Background(), "cooking", "en", "curiosity", 3)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	if len(titles) != 3 {
		t.Errorf("got %d titles, want 3", len(titles))
	}
	if titles[0] != "Title One" {
		t.Errorf("titles[0] = %q, want %q", titles[0], "Title One")
	}
}

func TestOllamaGenerator_Titles_TruncatesToCount(t *testing.T) {
	srv := newOllamaTestServer(t, `{"titles": ["A", "B", "C", "D", "E"]}`)
	defer srv.Close()

	gen := NewOllamaGenerator(OllamaConfig{BaseURL: srv.URL, Model: "llama3:8b"})

	titles, err := gen.Titles(context.Background(), "cooking", "", "", 2)
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	if len(titles) != 2 {
		t.Errorf("got %d titles, want 2", len(titles))
	}
}

func TestOllamaGenerator_Titles_InvalidModelOutput(t *testing.T) {
	srv := newOllamaTestServer(t, "not json at all")
	defer srv.Close()

	gen := NewOllamaGenerator(OllamaConfig{BaseURL: srv.URL, Model: "llama3:8b"})

	if _, err := gen.Titles(context.Background(), "cooking", "", "", 3); err == nil {
		t.Error("Titles() should fail on unparseable model output")
	}
}

func TestOllamaGenerator_Titles_EmptyKeyword(t *testing.T) {
	gen := NewOllamaGenerator(OllamaConfig{BaseURL: "http://localhost:11434"})

	if _, err := gen.Titles(context.Background(), "  ", "", "", 3); err == nil {
		t.Error("Titles() should fail without a keyword")
	}
}

func TestOllamaGenerator_Script(t *testing.T) {
	srv := newOllamaTestServer(t, "HOOK: something surprising about cooking...")
	defer srv.Close()

	gen := NewOllamaGenerator(OllamaConfig{BaseURL: srv.URL, Model: "llama3:8b"})

	script, err := gen.Script(context.Background(), "cooking", "en", "casual", 10)
	if err != nil {
		t.Fatalf("Script() error = %v", err)
	}
	if script == "" {
		t.Error("Script() returned empty output")
	}
}

func TestOllamaGenerator_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	gen := NewOllamaGenerator(OllamaConfig{BaseURL: srv.URL, Model: "missing"})

	if _, err := gen.Script(context.Background(), "cooking", "", "", 5); err == nil {
		t.Error("Script() should surface HTTP errors")
	}
}
