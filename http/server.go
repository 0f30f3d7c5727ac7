// server/http/server.go
package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/ViniZap4/pkm-server/domain"
	"github.com/ViniZap4/pkm-server/filesystem"
	"github.com/ViniZap4/pkm-server/ollama"
	"github.com/ViniZap4/pkm-server/store"
)

const Version = "0.1.0"

type WorkspaceStore interface {
	CreateWorkspace(ctx context.Context, req domain.WorkspaceCreate) (*domain.Workspace, error)
	GetWorkspace(ctx context.Context, id int64) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, limit, offset int) ([]domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, id int64, req domain.WorkspaceUpdate) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, id int64) error
}

type NoteStore interface {
	CreateNote(ctx context.Context, req domain.NoteCreate) (*domain.Note, error)
	GetNote(ctx context.Context, id int64) (*domain.Note, error)
	GetNotesByIDs(ctx context.Context, ids []int64) ([]domain.Note, error)
	ListNotes(ctx context.Context, workspaceID *int64, limit, offset int) ([]domain.Note, error)
	UpdateNote(ctx context.Context, id int64, req domain.NoteUpdate) (*domain.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	SetNoteFilePath(ctx context.Context, id int64, path string) error
	SearchNotes(ctx context.Context, q string, workspaceID *int64, limit int) ([]domain.SearchResult, error)
}

type TagStore interface {
	CreateTag(ctx context.Context, req domain.TagCreate) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context, limit, offset int) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, req domain.TagUpdate) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}

type SessionStore interface {
	LogSession(ctx context.Context, sess *domain.AISession) error
}

// AI is the slice of the Ollama client the handlers use.
type AI interface {
	Model() string
	CleanupText(ctx context.Context, text, cleanupType string) (string, error)
	RephraseText(ctx context.Context, text, style string) (string, error)
	ChatWithNotes(ctx context.Context, message string, noteContents, history []string) (string, error)
	SearchNotes(ctx context.Context, query string, noteContents []string) ([]ollama.RankedNote, error)
	ListModels(ctx context.Context) ([]string, error)
	Health(ctx context.Context) bool
}

type Server struct {
	workspaces WorkspaceStore
	notes      NoteStore
	tags       TagStore
	sessions   SessionStore
	mirror     *filesystem.Mirror
	ai         AI
	log        zerolog.Logger

	noteListLimit int
}

// Deps carries everything the server needs. In production all four store
// interfaces are the same *store.Store.
type Deps struct {
	Workspaces WorkspaceStore
	Notes      NoteStore
	Tags       TagStore
	Sessions   SessionStore
	Mirror     *filesystem.Mirror
	AI         AI
	Log        zerolog.Logger

	NoteListLimit int
}

func NewServer(d Deps) *Server {
	if d.NoteListLimit <= 0 {
		d.NoteListLimit = 100
	}
	return &Server{
		workspaces:    d.Workspaces,
		notes:         d.Notes,
		tags:          d.Tags,
		sessions:      d.Sessions,
		mirror:        d.Mirror,
		ai:            d.AI,
		log:           d.Log,
		noteListLimit: d.NoteListLimit,
	}
}

// App builds the Fiber application with all routes mounted.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "pkm-server",
		ErrorHandler: s.errorHandler,
	})

	app.Use(cors.New())
	app.Use(s.requestLogger)

	app.Get("/health", s.handleHealth)

	v1 := app.Group("/api/v1")

	v1.Post("/workspaces", s.handleCreateWorkspace)
	v1.Get("/workspaces", s.handleListWorkspaces)
	v1.Get("/workspaces/:id", s.handleGetWorkspace)
	v1.Put("/workspaces/:id", s.handleUpdateWorkspace)
	v1.Delete("/workspaces/:id", s.handleDeleteWorkspace)

	v1.Post("/notes", s.handleCreateNote)
	v1.Get("/notes", s.handleListNotes)
	v1.Get("/notes/:id", s.handleGetNote)
	v1.Put("/notes/:id", s.handleUpdateNote)
	v1.Delete("/notes/:id", s.handleDeleteNote)

	v1.Post("/tags", s.handleCreateTag)
	v1.Get("/tags", s.handleListTags)
	v1.Get("/tags/:id", s.handleGetTag)
	v1.Put("/tags/:id", s.handleUpdateTag)
	v1.Delete("/tags/:id", s.handleDeleteTag)

	v1.Post("/ai/cleanup", s.handleAICleanup)
	v1.Post("/ai/rephrase", s.handleAIRephrase)
	v1.Post("/ai/chat", s.handleAIChat)
	v1.Get("/ai/models", s.handleAIModels)
	v1.Get("/ai/health", s.handleAIHealth)

	v1.Post("/search", s.handleAISearch)
	v1.Get("/search/simple", s.handleSimpleSearch)

	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "version": Version})
}

// errorHandler translates sentinel errors into JSON error responses.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, store.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, ollama.ErrUnavailable):
		code = fiber.StatusServiceUnavailable
	}

	if code == fiber.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request")
	return err
}

// idParam parses the :id route segment.
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return int64(id), nil
}
