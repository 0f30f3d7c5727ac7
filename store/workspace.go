// server/store/workspace.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ViniZap4/pkm-server/domain"
)

func (s *Store) CreateWorkspace(ctx context.Context, req domain.WorkspaceCreate) (*domain.Workspace, error) {
	color := req.Color
	if color == "" {
		color = domain.DefaultWorkspaceColor
	}

	ws := &domain.Workspace{
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO workspaces (name, description, color)
		 VALUES ($1, NULLIF($2, ''), $3)
		 RETURNING id, created_at`,
		req.Name, req.Description, color,
	).Scan(&ws.ID, &ws.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("workspace %q: %w", req.Name, ErrConflict)
		}
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return ws, nil
}

func (s *Store) GetWorkspace(ctx context.Context, id int64) (*domain.Workspace, error) {
	ws, err := s.getWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.ListNotes(ctx, &id, 0, 0)
	if err != nil {
		return nil, err
	}
	ws.Notes = notes
	return ws, nil
}

func (s *Store) getWorkspace(ctx context.Context, id int64) (*domain.Workspace, error) {
	var (
		ws   domain.Workspace
		desc *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, color, created_at, updated_at
		 FROM workspaces WHERE id = $1`, id,
	).Scan(&ws.ID, &ws.Name, &desc, &ws.Color, &ws.CreatedAt, &ws.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("workspace %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if desc != nil {
		ws.Description = *desc
	}
	return &ws, nil
}

func (s *Store) ListWorkspaces(ctx context.Context, limit, offset int) ([]domain.Workspace, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, color, created_at, updated_at
		 FROM workspaces ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var out []domain.Workspace
	for rows.Next() {
		var (
			ws   domain.Workspace
			desc *string
		)
		if err := rows.Scan(&ws.ID, &ws.Name, &desc, &ws.Color, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		if desc != nil {
			ws.Description = *desc
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

func (s *Store) UpdateWorkspace(ctx context.Context, id int64, req domain.WorkspaceUpdate) (*domain.Workspace, error) {
	ws, err := s.getWorkspace(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.Description != nil {
		ws.Description = *req.Description
	}
	if req.Color != nil {
		ws.Color = *req.Color
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE workspaces
		 SET name = $2, description = NULLIF($3, ''), color = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		id, ws.Name, ws.Description, ws.Color,
	).Scan(&ws.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("workspace %q: %w", ws.Name, ErrConflict)
		}
		return nil, fmt.Errorf("update workspace: %w", err)
	}
	return ws, nil
}

// DeleteWorkspace removes the workspace row. Its notes and note_tags go with
// it via ON DELETE CASCADE.
func (s *Store) DeleteWorkspace(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %d: %w", id, ErrNotFound)
	}
	return nil
}
