package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ListenAddr == "" || cfg.OllamaURL == "" {
		t.Fatalf("missing defaults: %+v", cfg)
	}
	if cfg.OllamaTimeout != 60*time.Second {
		t.Errorf("timeout = %v", cfg.OllamaTimeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PKM_LISTEN_ADDR", "0.0.0.0:9999")
	t.Setenv("PKM_OLLAMA_TIMEOUT", "10s")
	t.Setenv("PKM_NOTE_LIST_LIMIT", "25")

	cfg := Load()
	if cfg.ListenAddr != "0.0.0.0:9999" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.OllamaTimeout != 10*time.Second {
		t.Errorf("timeout = %v", cfg.OllamaTimeout)
	}
	if cfg.NoteListLimit != 25 {
		t.Errorf("note list limit = %d", cfg.NoteListLimit)
	}
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("PKM_OLLAMA_TIMEOUT", "not-a-duration")
	t.Setenv("PKM_NOTE_LIST_LIMIT", "-5")

	cfg := Load()
	if cfg.OllamaTimeout != 60*time.Second {
		t.Errorf("timeout = %v", cfg.OllamaTimeout)
	}
	if cfg.NoteListLimit != 100 {
		t.Errorf("note list limit = %d", cfg.NoteListLimit)
	}
}
