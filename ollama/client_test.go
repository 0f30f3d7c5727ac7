package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-model", 5*time.Second, zerolog.Nop())
}

func TestGenerate(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "better text"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Generate(context.Background(), "fix this", "be helpful", 0.3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "better text" {
		t.Errorf("response = %q", got)
	}
	if gotReq.Model != "test-model" || gotReq.Stream {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.System != "be helpful" {
		t.Errorf("system = %q", gotReq.System)
	}
}

func TestGenerateServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL)
	_, err := c.Generate(context.Background(), "hello", "", 0.5)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Generate(context.Background(), "hello", "", 0.5)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2:1b"},{"name":"mistral"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[0] != "llama3.2:1b" {
		t.Errorf("models = %v", models)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	c := newTestClient(srv.URL)
	if !c.Health(context.Background()) {
		t.Error("expected healthy")
	}

	srv.Close()
	if c.Health(context.Background()) {
		t.Error("expected unhealthy after server close")
	}
}

func TestSearchNotesParsesRanking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := `[{"index":1,"relevance_score":0.9,"snippet":"the good part"}]`
		json.NewEncoder(w).Encode(generateResponse{Response: resp})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ranked, err := c.SearchNotes(context.Background(), "good", []string{"a", "b"})
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Index != 1 || ranked[0].RelevanceScore != 0.9 {
		t.Errorf("ranked = %+v", ranked)
	}
}

func TestSearchNotesGarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "I cannot rank these notes."})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ranked, err := c.SearchNotes(context.Background(), "q", []string{"a"})
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("expected empty ranking, got %+v", ranked)
	}
}
