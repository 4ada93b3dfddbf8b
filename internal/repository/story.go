package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// ErrStoryNotFound is returned when a story does not exist.
var ErrStoryNotFound = errors.New("story not found")

var storySortable = map[string]bool{
	"id":         true,
	"title":      true,
	"created_at": true,
	"updated_at": true,
}

// CreateStory inserts a new story.
func (r *Repository) CreateStory(ctx context.Context, s *model.Story) error {
	query := `
		INSERT INTO stories (id, user_id, title, body, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.UserID, s.Title, s.Body, pq.Array(s.Tags), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// GetStory retrieves one story belonging to a user.
func (r *Repository) GetStory(ctx context.Context, userID, id string) (*model.Story, error) {
	query := `
		SELECT id, user_id, title, body, tags, created_at, updated_at
		FROM stories
		WHERE id = $1 AND user_id = $2
	`

	s, err := scanStory(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return s, nil
}

// ListStories returns the sorted page window of a user's stories plus
// the total un-windowed count.
func (r *Repository) ListStories(ctx context.Context, userID string, p pagination.Params) ([]*model.Story, int, error) {
	orderBy, err := p.OrderBy(storySortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stories WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stories: %w", err)
	}

	query := `
		SELECT id, user_id, title, body, tags, created_at, updated_at
		FROM stories
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []*model.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating stories: %w", err)
	}

	return stories, total, nil
}

// UpdateStory updates a story's mutable fields.
func (r *Repository) UpdateStory(ctx context.Context, s *model.Story) error {
	query := `
		UPDATE stories
		SET title = $3, body = $4, tags = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, s.ID, s.UserID, s.Title, s.Body, pq.Array(s.Tags))
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrStoryNotFound
	}

	return nil
}

// DeleteStory removes a story belonging to a user.
func (r *Repository) DeleteStory(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM stories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func scanStory(row pgx.Row) (*model.Story, error) {
	var s model.Story
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Title,
		&s.Body,
		pq.Array(&s.Tags),
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
