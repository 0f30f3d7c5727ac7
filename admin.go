// server/admin.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ViniZap4/pkm-server/config"
	"github.com/ViniZap4/pkm-server/filesystem"
	"github.com/ViniZap4/pkm-server/ollama"
)

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Apply schema migrations and create storage directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, log, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(); err != nil {
				return err
			}
			if err := filesystem.NewMirror(cfg.NotesDir).Init(); err != nil {
				return fmt.Errorf("create storage root: %w", err)
			}
			log.Info().Msg("database initialized")
			return nil
		},
	}
}

func resetDBCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop and recreate the schema, wiping the file mirror (destructive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("this deletes all data; re-run with --yes to confirm")
			}

			st, cfg, log, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Reset(); err != nil {
				return err
			}
			// No rows left, so the mirror tree is wiped too.
			if _, err := filesystem.NewMirror(cfg.NotesDir).Rebuild(nil); err != nil {
				return fmt.Errorf("clear storage root: %w", err)
			}
			log.Info().Msg("database reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation check")
	return cmd
}

func checkLLMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-llm",
		Short: "Check Ollama connectivity and list available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)
			client := ollama.NewClient(cfg.OllamaURL, cfg.LLMModel, cfg.OllamaTimeout, log)

			if !client.Health(cmd.Context()) {
				return fmt.Errorf("ollama is not reachable at %s", cfg.OllamaURL)
			}
			fmt.Printf("ollama is running at %s\n", cfg.OllamaURL)

			models, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Printf("no models found; pull one first, e.g.: ollama pull %s\n", cfg.LLMModel)
				return nil
			}
			fmt.Println("available models:")
			for _, m := range models {
				fmt.Printf("  %s\n", m)
			}
			return nil
		},
	}
}

func rebuildMirrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-mirror",
		Short: "Rewrite the markdown tree from database rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, log, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			notes, err := st.ListNotes(cmd.Context(), nil, 0, 0)
			if err != nil {
				return err
			}

			paths, err := filesystem.NewMirror(cfg.NotesDir).Rebuild(notes)
			if err != nil {
				return err
			}
			for id, rel := range paths {
				if err := st.SetNoteFilePath(cmd.Context(), id, rel); err != nil {
					return err
				}
			}
			log.Info().Int("notes", len(paths)).Msg("mirror rebuilt")
			return nil
		},
	}
}
