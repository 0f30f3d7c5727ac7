// server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ViniZap4/pkm-server/config"
	"github.com/ViniZap4/pkm-server/filesystem"
	httpserver "github.com/ViniZap4/pkm-server/http"
	"github.com/ViniZap4/pkm-server/ollama"
	"github.com/ViniZap4/pkm-server/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pkm-server",
		Short:        "Personal knowledge management backend",
		SilenceUsage: true,
		RunE:         runServe,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}

	root.AddCommand(serve, initDBCmd(), resetDBCmd(), checkLLMCmd(), rebuildMirrorCmd())
	return root
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.With().Timestamp().Logger().Level(level)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := newLogger(cfg)

	st, err := store.Open(cmd.Context(), cfg.DatabaseURL, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return err
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}

	mirror := filesystem.NewMirror(cfg.NotesDir)
	if err := mirror.Init(); err != nil {
		log.Error().Err(err).Msg("storage root init failed")
		return err
	}

	ai := ollama.NewClient(cfg.OllamaURL, cfg.LLMModel, cfg.OllamaTimeout, log)

	srv := httpserver.NewServer(httpserver.Deps{
		Workspaces:    st,
		Notes:         st,
		Tags:          st,
		Sessions:      st,
		Mirror:        mirror,
		AI:            ai,
		Log:           log,
		NoteListLimit: cfg.NoteListLimit,
	})
	app := srv.App()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("notes_dir", cfg.NotesDir).
		Str("ollama", cfg.OllamaURL).
		Msg("server starting")
	return app.Listen(cfg.ListenAddr)
}

// openStore is the shared setup for the admin commands.
func openStore(ctx context.Context) (*store.Store, config.Config, zerolog.Logger, error) {
	cfg := config.Load()
	log := newLogger(cfg)
	st, err := store.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return nil, cfg, log, err
	}
	return st, cfg, log, nil
}
