// server/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	DatabaseURL   string
	ListenAddr    string
	NotesDir      string
	OllamaURL     string
	LLMModel      string
	OllamaTimeout time.Duration
	LogLevel      string
	Environment   string
	NoteListLimit int
}

// Load reads an optional .env file, then the environment. Values already set
// in the environment win over the .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:   envOr("PKM_DATABASE_URL", "postgres://localhost:5432/pkm?sslmode=disable"),
		ListenAddr:    envOr("PKM_LISTEN_ADDR", "127.0.0.1:8000"),
		NotesDir:      envOr("PKM_NOTES_DIR", "./data/notes"),
		OllamaURL:     envOr("PKM_OLLAMA_URL", "http://localhost:11434"),
		LLMModel:      envOr("PKM_LLM_MODEL", "llama3.2:1b"),
		OllamaTimeout: durationOr("PKM_OLLAMA_TIMEOUT", 60*time.Second),
		LogLevel:      envOr("PKM_LOG_LEVEL", "info"),
		Environment:   envOr("PKM_ENVIRONMENT", "development"),
		NoteListLimit: intOr("PKM_NOTE_LIST_LIMIT", 100),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
