// server/store/note.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ViniZap4/pkm-server/domain"
)

func (s *Store) CreateNote(ctx context.Context, req domain.NoteCreate) (*domain.Note, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workspaces WHERE id = $1)`, req.WorkspaceID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check workspace: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("workspace %d: %w", req.WorkspaceID, ErrNotFound)
	}

	note := &domain.Note{
		Title:       req.Title,
		Content:     req.Content,
		WorkspaceID: req.WorkspaceID,
		Tags:        []domain.Tag{},
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO notes (title, content, workspace_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		req.Title, req.Content, req.WorkspaceID,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	if len(req.TagIDs) > 0 {
		// Unknown tag ids are silently dropped rather than rejected.
		_, err = tx.Exec(ctx,
			`INSERT INTO note_tags (note_id, tag_id)
			 SELECT $1, id FROM tags WHERE id = ANY($2)`,
			note.ID, req.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("attach tags: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	tags, err := s.noteTags(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	note.Tags = tags
	return note, nil
}

func (s *Store) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	var (
		note     domain.Note
		ws       domain.Workspace
		wsDesc   *string
		filePath *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT n.id, n.title, n.content, n.file_path, n.workspace_id,
		        n.created_at, n.updated_at,
		        w.id, w.name, w.description, w.color, w.created_at, w.updated_at
		 FROM notes n
		 JOIN workspaces w ON w.id = n.workspace_id
		 WHERE n.id = $1`, id,
	).Scan(&note.ID, &note.Title, &note.Content, &filePath, &note.WorkspaceID,
		&note.CreatedAt, &note.UpdatedAt,
		&ws.ID, &ws.Name, &wsDesc, &ws.Color, &ws.CreatedAt, &ws.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if filePath != nil {
		note.FilePath = *filePath
	}
	if wsDesc != nil {
		ws.Description = *wsDesc
	}
	note.Workspace = &ws

	tags, err := s.noteTags(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Tags = tags
	return &note, nil
}

// ListNotes returns notes ordered by id, optionally scoped to one workspace.
// A limit of 0 means no limit.
func (s *Store) ListNotes(ctx context.Context, workspaceID *int64, limit, offset int) ([]domain.Note, error) {
	query := `SELECT id, title, content, file_path, workspace_id, created_at, updated_at
	          FROM notes`
	args := []any{}
	if workspaceID != nil {
		query += ` WHERE workspace_id = $1`
		args = append(args, *workspaceID)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadTags(ctx, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNotesByIDs returns the subset of ids that exist, in id order.
func (s *Store) GetNotesByIDs(ctx context.Context, ids []int64) ([]domain.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, content, file_path, workspace_id, created_at, updated_at
		 FROM notes WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("get notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (s *Store) UpdateNote(ctx context.Context, id int64, req domain.NoteUpdate) (*domain.Note, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		title, content string
		workspaceID    int64
	)
	err = tx.QueryRow(ctx,
		`SELECT title, content, workspace_id FROM notes WHERE id = $1`, id,
	).Scan(&title, &content, &workspaceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}
	if req.WorkspaceID != nil && *req.WorkspaceID != workspaceID {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM workspaces WHERE id = $1)`, *req.WorkspaceID,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check workspace: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("workspace %d: %w", *req.WorkspaceID, ErrNotFound)
		}
		workspaceID = *req.WorkspaceID
	}

	_, err = tx.Exec(ctx,
		`UPDATE notes SET title = $2, content = $3, workspace_id = $4, updated_at = now()
		 WHERE id = $1`,
		id, title, content, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	if req.TagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, id); err != nil {
			return nil, fmt.Errorf("clear tags: %w", err)
		}
		if len(*req.TagIDs) > 0 {
			_, err = tx.Exec(ctx,
				`INSERT INTO note_tags (note_id, tag_id)
				 SELECT $1, id FROM tags WHERE id = ANY($2)`,
				id, *req.TagIDs)
			if err != nil {
				return nil, fmt.Errorf("attach tags: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetNote(ctx, id)
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	return nil
}

// SetNoteFilePath records where the note's mirror file landed.
func (s *Store) SetNoteFilePath(ctx context.Context, id int64, path string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notes SET file_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("set file path: %w", err)
	}
	return nil
}

func scanNotes(rows pgx.Rows) ([]domain.Note, error) {
	var notes []domain.Note
	for rows.Next() {
		var (
			note     domain.Note
			filePath *string
		)
		err := rows.Scan(&note.ID, &note.Title, &note.Content, &filePath,
			&note.WorkspaceID, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if filePath != nil {
			note.FilePath = *filePath
		}
		note.Tags = []domain.Tag{}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *Store) noteTags(ctx context.Context, noteID int64) ([]domain.Tag, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.id, t.name, t.color, t.created_at
		 FROM tags t JOIN note_tags nt ON nt.tag_id = t.id
		 WHERE nt.note_id = $1 ORDER BY t.name`, noteID)
	if err != nil {
		return nil, fmt.Errorf("note tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) loadTags(ctx context.Context, notes []domain.Note) error {
	if len(notes) == 0 {
		return nil
	}
	ids := make([]int64, len(notes))
	byID := make(map[int64]*domain.Note, len(notes))
	for i := range notes {
		ids[i] = notes[i].ID
		byID[notes[i].ID] = &notes[i]
	}

	rows, err := s.pool.Query(ctx,
		`SELECT nt.note_id, t.id, t.name, t.color, t.created_at
		 FROM tags t JOIN note_tags nt ON nt.tag_id = t.id
		 WHERE nt.note_id = ANY($1) ORDER BY t.name`, ids)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			noteID int64
			t      domain.Tag
		)
		if err := rows.Scan(&noteID, &t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if n, ok := byID[noteID]; ok {
			n.Tags = append(n.Tags, t)
		}
	}
	return rows.Err()
}
