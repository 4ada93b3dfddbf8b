package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// ErrCloneVideoNotFound is returned when a clone video does not exist.
var ErrCloneVideoNotFound = errors.New("clone video not found")

var cloneSortable = map[string]bool{
	"id":         true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// CreateCloneVideo inserts a new clone video record.
func (r *Repository) CreateCloneVideo(ctx context.Context, v *model.AICloneVideo) error {
	query := `
		INSERT INTO ai_clone_videos (id, user_id, source_media_id, script, status, job_id, output_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.UserID, v.SourceMediaID, v.Script, v.Status, v.JobID, v.OutputURL, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clone video: %w", err)
	}

	return nil
}

// GetCloneVideo retrieves one clone video belonging to a user.
func (r *Repository) GetCloneVideo(ctx context.Context, userID, id string) (*model.AICloneVideo, error) {
	query := `
		SELECT id, user_id, source_media_id, script, status, job_id, output_url, created_at, updated_at
		FROM ai_clone_videos
		WHERE id = $1 AND user_id = $2
	`

	v, err := scanCloneVideo(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCloneVideoNotFound
		}
		return nil, fmt.Errorf("failed to get clone video: %w", err)
	}
	return v, nil
}

// ListCloneVideos returns the sorted page window of a user's clone
// videos plus the total un-windowed count.
func (r *Repository) ListCloneVideos(ctx context.Context, userID string, p pagination.Params) ([]*model.AICloneVideo, int, error) {
	orderBy, err := p.OrderBy(cloneSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ai_clone_videos WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clone videos: %w", err)
	}

	query := `
		SELECT id, user_id, source_media_id, script, status, job_id, output_url, created_at, updated_at
		FROM ai_clone_videos
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clone videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.AICloneVideo
	for rows.Next() {
		v, err := scanCloneVideo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clone video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating clone videos: %w", err)
	}

	return videos, total, nil
}

// UpdateCloneVideoStatus records a status transition reported by the
// external generation service.
func (r *Repository) UpdateCloneVideoStatus(ctx context.Context, id string, status model.CloneVideoStatus, outputURL *string) error {
	query := `
		UPDATE ai_clone_videos
		SET status = $2, output_url = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, status, outputURL)
	if err != nil {
		return fmt.Errorf("failed to update clone video status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCloneVideoNotFound
	}

	return nil
}

// DeleteCloneVideo removes a clone video belonging to a user.
func (r *Repository) DeleteCloneVideo(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM ai_clone_videos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete clone video: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCloneVideoNotFound
	}
	return nil
}

func scanCloneVideo(row pgx.Row) (*model.AICloneVideo, error) {
	var v model.AICloneVideo
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.SourceMediaID,
		&v.Script,
		&v.Status,
		&v.JobID,
		&v.OutputURL,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
