// server/http/notes.go
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/pkm-server/domain"
)

// mirrorNote writes the note's file copy and records its path. The database
// row is authoritative, so a failed file write only logs a warning; the
// rebuild-mirror command recovers the tree later.
func (s *Server) mirrorNote(c *fiber.Ctx, note *domain.Note) {
	rel, err := s.mirror.WriteNote(note)
	if err != nil {
		s.log.Warn().Err(err).Int64("note", note.ID).Msg("failed to write mirror file")
		return
	}
	if err := s.notes.SetNoteFilePath(c.Context(), note.ID, rel); err != nil {
		s.log.Warn().Err(err).Int64("note", note.ID).Msg("failed to record mirror path")
		return
	}
	note.FilePath = rel
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var req domain.NoteCreate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	note, err := s.notes.CreateNote(c.Context(), req)
	if err != nil {
		return err
	}
	s.mirrorNote(c, note)

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", s.noteListLimit)
	offset := c.QueryInt("offset", 0)

	var workspaceID *int64
	if v := c.QueryInt("workspace_id", 0); v > 0 {
		id := int64(v)
		workspaceID = &id
	}

	notes, err := s.notes.ListNotes(c.Context(), workspaceID, limit, offset)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return c.JSON(notes)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	note, err := s.notes.GetNote(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req domain.NoteUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	note, err := s.notes.UpdateNote(c.Context(), id, req)
	if err != nil {
		return err
	}
	s.mirrorNote(c, note)

	return c.JSON(note)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	note, err := s.notes.GetNote(c.Context(), id)
	if err != nil {
		return err
	}
	if err := s.notes.DeleteNote(c.Context(), id); err != nil {
		return err
	}
	if err := s.mirror.DeleteNote(note.FilePath); err != nil {
		s.log.Warn().Err(err).Int64("note", id).Msg("failed to delete mirror file")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
