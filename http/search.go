// server/http/search.go
package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/pkm-server/domain"
)

// handleAISearch lets the model rank all candidate notes against the query.
func (s *Server) handleAISearch(c *fiber.Ctx) error {
	var req domain.AISearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 10
	}

	var notes []domain.Note
	if len(req.WorkspaceIDs) > 0 {
		for _, wsID := range req.WorkspaceIDs {
			id := wsID
			batch, err := s.notes.ListNotes(c.Context(), &id, 0, 0)
			if err != nil {
				return err
			}
			notes = append(notes, batch...)
		}
	} else {
		var err error
		notes, err = s.notes.ListNotes(c.Context(), nil, 0, 0)
		if err != nil {
			return err
		}
	}

	if len(notes) == 0 {
		return c.JSON(domain.SearchResponse{
			Results:    []domain.SearchResult{},
			TotalCount: 0,
			Query:      req.Query,
		})
	}

	contents := make([]string, len(notes))
	for i, n := range notes {
		contents[i] = n.Title + "\n\n" + n.Content
	}

	start := time.Now()
	ranked, err := s.ai.SearchNotes(c.Context(), req.Query, contents)
	elapsed := time.Since(start).Milliseconds()

	sess := &domain.AISession{
		SessionType:      "search",
		Query:            req.Query,
		ModelUsed:        s.ai.Model(),
		ProcessingTimeMs: elapsed,
		Success:          err == nil,
	}

	if err != nil {
		_ = s.sessions.LogSession(c.Context(), sess)
		return err
	}

	wsNames, err := s.workspaceNames(c)
	if err != nil {
		return err
	}

	results := []domain.SearchResult{}
	for _, r := range ranked {
		if len(results) >= maxResults {
			break
		}
		if r.RelevanceScore <= 0.1 {
			continue
		}
		if r.Index < 0 || r.Index >= len(notes) {
			continue
		}
		note := notes[r.Index]
		snippet := r.Snippet
		if snippet == "" {
			snippet = headSnippet(note.Content)
		}
		results = append(results, domain.SearchResult{
			NoteID:         note.ID,
			NoteTitle:      note.Title,
			RelevanceScore: r.RelevanceScore,
			Snippet:        snippet,
			WorkspaceName:  wsNames[note.WorkspaceID],
		})
	}

	sess.Response = fmt.Sprintf("found %d results", len(results))
	_ = s.sessions.LogSession(c.Context(), sess)

	return c.JSON(domain.SearchResponse{
		Results:    results,
		TotalCount: len(results),
		Query:      req.Query,
	})
}

// handleSimpleSearch is the substring fallback that needs no LLM.
func (s *Server) handleSimpleSearch(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
	}
	limit := c.QueryInt("limit", 10)

	var workspaceID *int64
	if v := c.QueryInt("workspace_id", 0); v > 0 {
		id := int64(v)
		workspaceID = &id
	}

	results, err := s.notes.SearchNotes(c.Context(), q, workspaceID, limit)
	if err != nil {
		return err
	}
	return c.JSON(domain.SearchResponse{
		Results:    results,
		TotalCount: len(results),
		Query:      q,
	})
}

func (s *Server) workspaceNames(c *fiber.Ctx) (map[int64]string, error) {
	all, err := s.workspaces.ListWorkspaces(c.Context(), 0, 0)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(all))
	for _, ws := range all {
		names[ws.ID] = ws.Name
	}
	return names, nil
}

// headSnippet is the fallback excerpt when the model gives none of its own.
func headSnippet(content string) string {
	const head = 200
	if len(content) <= head {
		return content
	}
	return content[:head] + "..."
}
