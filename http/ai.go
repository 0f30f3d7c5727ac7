// server/http/ai.go
package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ViniZap4/pkm-server/domain"
	"github.com/ViniZap4/pkm-server/ollama"
)

// aiFailure renders a structured failure body. An unreachable LLM is 503,
// anything else 502.
func (s *Server) aiFailure(c *fiber.Ctx, err error, elapsed int64) error {
	code := fiber.StatusBadGateway
	if errors.Is(err, ollama.ErrUnavailable) {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(domain.AIResponse{
		Success:          false,
		Error:            err.Error(),
		ProcessingTimeMs: elapsed,
		ModelUsed:        s.ai.Model(),
	})
}

func (s *Server) handleAICleanup(c *fiber.Ctx) error {
	var req domain.AICleanupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	note, err := s.notes.GetNote(c.Context(), req.NoteID)
	if err != nil {
		return err
	}

	start := time.Now()
	cleaned, err := s.ai.CleanupText(c.Context(), note.Content, req.CleanupType)
	elapsed := time.Since(start).Milliseconds()

	sess := &domain.AISession{
		SessionType:      "cleanup",
		Query:            "cleanup type: " + req.CleanupType,
		Response:         cleaned,
		ModelUsed:        s.ai.Model(),
		NoteIDs:          []int64{req.NoteID},
		ProcessingTimeMs: elapsed,
		Success:          err == nil,
	}
	_ = s.sessions.LogSession(c.Context(), sess)

	if err != nil {
		return s.aiFailure(c, err, elapsed)
	}
	return c.JSON(domain.AIResponse{
		Success:          true,
		Response:         cleaned,
		ProcessingTimeMs: elapsed,
		ModelUsed:        s.ai.Model(),
	})
}

func (s *Server) handleAIRephrase(c *fiber.Ctx) error {
	var req domain.AIRephraseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	start := time.Now()
	rephrased, err := s.ai.RephraseText(c.Context(), req.Text, req.Style)
	elapsed := time.Since(start).Milliseconds()

	sess := &domain.AISession{
		SessionType:      "rephrase",
		Query:            fmt.Sprintf("style: %s, text: %.100s", req.Style, req.Text),
		Response:         rephrased,
		ModelUsed:        s.ai.Model(),
		ProcessingTimeMs: elapsed,
		Success:          err == nil,
	}
	_ = s.sessions.LogSession(c.Context(), sess)

	if err != nil {
		return s.aiFailure(c, err, elapsed)
	}
	return c.JSON(domain.AIResponse{
		Success:          true,
		Response:         rephrased,
		ProcessingTimeMs: elapsed,
		ModelUsed:        s.ai.Model(),
	})
}

func (s *Server) handleAIChat(c *fiber.Ctx) error {
	var req domain.AIChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	var noteContents []string
	if len(req.NoteIDs) > 0 {
		notes, err := s.notes.GetNotesByIDs(c.Context(), req.NoteIDs)
		if err != nil {
			return err
		}
		for _, n := range notes {
			noteContents = append(noteContents, n.Title+"\n\n"+n.Content)
		}
	}

	start := time.Now()
	answer, err := s.ai.ChatWithNotes(c.Context(), req.Message, noteContents, nil)
	elapsed := time.Since(start).Milliseconds()

	sess := &domain.AISession{
		SessionType:      "chat",
		Query:            req.Message,
		Response:         answer,
		ModelUsed:        s.ai.Model(),
		NoteIDs:          req.NoteIDs,
		ProcessingTimeMs: elapsed,
		Success:          err == nil,
	}
	_ = s.sessions.LogSession(c.Context(), sess)

	if err != nil {
		return s.aiFailure(c, err, elapsed)
	}
	return c.JSON(domain.AIResponse{
		Success:          true,
		Response:         answer,
		ProcessingTimeMs: elapsed,
		ModelUsed:        s.ai.Model(),
		ConversationID:   conversationID,
	})
}

func (s *Server) handleAIModels(c *fiber.Ctx) error {
	models, err := s.ai.ListModels(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(models)
}

func (s *Server) handleAIHealth(c *fiber.Ctx) error {
	if !s.ai.Health(c.Context()) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "ollama service is not available")
	}
	return c.JSON(fiber.Map{"status": "healthy", "service": "ollama"})
}
