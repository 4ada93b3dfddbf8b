package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// Common errors for chat repository operations.
var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrMessageNotFound = errors.New("chat message not found")
)

var (
	sessionSortable = map[string]bool{
		"id":         true,
		"title":      true,
		"created_at": true,
		"updated_at": true,
	}
	messageSortable = map[string]bool{
		"id":         true,
		"created_at": true,
	}
)

// CreateSession inserts a new chat session.
func (r *Repository) CreateSession(ctx context.Context, s *model.ChatSession) error {
	query := `
		INSERT INTO chat_sessions (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, s.ID, s.UserID, s.Title, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	return nil
}

// GetSession retrieves one session belonging to a user.
func (r *Repository) GetSession(ctx context.Context, userID, id string) (*model.ChatSession, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1 AND user_id = $2
	`

	var s model.ChatSession
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &s, nil
}

// ListSessions returns the sorted page window of a user's sessions
// plus the total un-windowed count.
func (r *Repository) ListSessions(ctx context.Context, userID string, p pagination.Params) ([]*model.ChatSession, int, error) {
	orderBy, err := p.OrderBy(sessionSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_sessions WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count chat sessions: %w", err)
	}

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.ChatSession
	for rows.Next() {
		var s model.ChatSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating chat sessions: %w", err)
	}

	return sessions, total, nil
}

// DeleteSession removes a session and, via cascade, its messages.
func (r *Repository) DeleteSession(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CreateMessage inserts a message into a session and bumps the
// session's updated_at.
func (r *Repository) CreateMessage(ctx context.Context, m *model.ChatMessage) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.SessionID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE chat_sessions SET updated_at = NOW() WHERE id = $1`, m.SessionID)
	if err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}

	return tx.Commit(ctx)
}

// ListMessages returns the sorted page window of a session's messages
// plus the total un-windowed count.
func (r *Repository) ListMessages(ctx context.Context, sessionID string, p pagination.Params) ([]*model.ChatMessage, int, error) {
	orderBy, err := p.OrderBy(messageSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM chat_messages WHERE session_id = $1`, sessionID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count chat messages: %w", err)
	}

	query := `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
	` + orderBy
	args := []any{sessionID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating chat messages: %w", err)
	}

	return messages, total, nil
}
