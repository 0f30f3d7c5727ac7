// server/store/tag.go
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ViniZap4/pkm-server/domain"
)

func (s *Store) CreateTag(ctx context.Context, req domain.TagCreate) (*domain.Tag, error) {
	color := req.Color
	if color == "" {
		color = domain.DefaultTagColor
	}

	tag := &domain.Tag{Name: req.Name, Color: color}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id, created_at`,
		req.Name, color,
	).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q: %w", req.Name, ErrConflict)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, color, created_at FROM tags WHERE id = $1`, id,
	).Scan(&tag.ID, &tag.Name, &tag.Color, &tag.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

func (s *Store) ListTags(ctx context.Context, limit, offset int) ([]domain.Tag, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, color, created_at FROM tags ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTag(ctx context.Context, id int64, req domain.TagUpdate) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE tags SET name = $2, color = $3 WHERE id = $1`,
		id, tag.Name, tag.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag %q: %w", tag.Name, ErrConflict)
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	return nil
}
