// server/store/search.go
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ViniZap4/pkm-server/domain"
)

// SearchNotes does a plain substring search over titles and content. No
// relevance model; every hit scores 1.0.
func (s *Store) SearchNotes(ctx context.Context, q string, workspaceID *int64, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT n.id, n.title, n.content, w.name
	          FROM notes n JOIN workspaces w ON w.id = n.workspace_id
	          WHERE (n.title ILIKE $1 OR n.content ILIKE $1)`
	args := []any{"%" + q + "%"}
	if workspaceID != nil {
		query += ` AND n.workspace_id = $2`
		args = append(args, *workspaceID)
	}
	query += fmt.Sprintf(` ORDER BY n.id LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	results := []domain.SearchResult{}
	for rows.Next() {
		var (
			r       domain.SearchResult
			content string
		)
		if err := rows.Scan(&r.NoteID, &r.NoteTitle, &content, &r.WorkspaceName); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		r.RelevanceScore = 1.0
		r.Snippet = Snippet(content, q)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Snippet extracts a short excerpt of content around the first occurrence of
// q, or the leading 200 characters when q does not appear in the body.
func Snippet(content, q string) string {
	const (
		lead = 50
		span = 150
		head = 200
	)

	pos := strings.Index(strings.ToLower(content), strings.ToLower(q))
	if pos < 0 || q == "" {
		if len(content) <= head {
			return content
		}
		return content[:head] + "..."
	}

	start := pos - lead
	if start < 0 {
		start = 0
	}
	end := pos + span
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}
