package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// ErrMediaNotFound is returned when a media record does not exist.
var ErrMediaNotFound = errors.New("media not found")

var mediaSortable = map[string]bool{
	"id":         true,
	"file_name":  true,
	"size_bytes": true,
	"created_at": true,
}

// CreateMedia inserts a new media record.
func (r *Repository) CreateMedia(ctx context.Context, m *model.Media) error {
	query := `
		INSERT INTO media (id, user_id, type, file_name, stored_name, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.UserID, m.Type, m.FileName, m.StoredName, m.ContentType, m.SizeBytes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	return nil
}

// GetMedia retrieves one media record belonging to a user.
func (r *Repository) GetMedia(ctx context.Context, userID, id string) (*model.Media, error) {
	query := `
		SELECT id, user_id, type, file_name, stored_name, content_type, size_bytes, created_at
		FROM media
		WHERE id = $1 AND user_id = $2
	`

	m, err := scanMedia(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return m, nil
}

// ListMedia returns the sorted page window of a user's media records
// plus the total un-windowed count.
func (r *Repository) ListMedia(ctx context.Context, userID string, p pagination.Params) ([]*model.Media, int, error) {
	orderBy, err := p.OrderBy(mediaSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM media WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}

	query := `
		SELECT id, user_id, type, file_name, stored_name, content_type, size_bytes, created_at
		FROM media
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var items []*model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating media: %w", err)
	}

	return items, total, nil
}

// DeleteMedia removes a media record belonging to a user.
func (r *Repository) DeleteMedia(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM media WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func scanMedia(row pgx.Row) (*model.Media, error) {
	var m model.Media
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Type,
		&m.FileName,
		&m.StoredName,
		&m.ContentType,
		&m.SizeBytes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
