// server/store/session.go
package store

import (
	"context"

	"github.com/ViniZap4/pkm-server/domain"
)

// LogSession records an AI interaction. It is best-effort: callers treat a
// failure as a log line, never as a request failure.
func (s *Store) LogSession(ctx context.Context, sess *domain.AISession) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO ai_sessions
		   (session_type, query, response, model_used, note_ids, processing_time_ms, success)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		 RETURNING id, created_at`,
		sess.SessionType, sess.Query, sess.Response, sess.ModelUsed,
		sess.NoteIDs, sess.ProcessingTimeMs, sess.Success,
	).Scan(&sess.ID, &sess.CreatedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("type", sess.SessionType).Msg("failed to log ai session")
	}
	return err
}
