package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
)

// ErrGameNotFound is returned when a sudoku game does not exist.
var ErrGameNotFound = errors.New("sudoku game not found")

var sudokuSortable = map[string]bool{
	"id":         true,
	"difficulty": true,
	"completed":  true,
	"created_at": true,
	"updated_at": true,
}

// CreateGame inserts a new sudoku game.
func (r *Repository) CreateGame(ctx context.Context, g *model.SudokuGame) error {
	query := `
		INSERT INTO sudoku_games (id, user_id, difficulty, puzzle, board, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		g.ID, g.UserID, g.Difficulty, g.Puzzle, g.Board, g.Completed, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sudoku game: %w", err)
	}

	return nil
}

// GetGame retrieves one game belonging to a user.
func (r *Repository) GetGame(ctx context.Context, userID, id string) (*model.SudokuGame, error) {
	query := `
		SELECT id, user_id, difficulty, puzzle, board, completed, created_at, updated_at
		FROM sudoku_games
		WHERE id = $1 AND user_id = $2
	`

	g, err := scanGame(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get sudoku game: %w", err)
	}
	return g, nil
}

// ListGames returns the sorted page window of a user's games plus the
// total un-windowed count.
func (r *Repository) ListGames(ctx context.Context, userID string, p pagination.Params) ([]*model.SudokuGame, int, error) {
	orderBy, err := p.OrderBy(sudokuSortable)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sudoku_games WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sudoku games: %w", err)
	}

	query := `
		SELECT id, user_id, difficulty, puzzle, board, completed, created_at, updated_at
		FROM sudoku_games
		WHERE user_id = $1
	` + orderBy
	args := []any{userID}

	if limit, offset, ok := p.Window(); ok {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sudoku games: %w", err)
	}
	defer rows.Close()

	var games []*model.SudokuGame
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan sudoku game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating sudoku games: %w", err)
	}

	return games, total, nil
}

// UpdateGameBoard stores the player's current board state.
func (r *Repository) UpdateGameBoard(ctx context.Context, userID, id, board string, completed bool) error {
	query := `
		UPDATE sudoku_games
		SET board = $3, completed = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID, board, completed)
	if err != nil {
		return fmt.Errorf("failed to update sudoku board: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGameNotFound
	}

	return nil
}

// DeleteGame removes a game belonging to a user.
func (r *Repository) DeleteGame(ctx context.Context, userID, id string) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM sudoku_games WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sudoku game: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

func scanGame(row pgx.Row) (*model.SudokuGame, error) {
	var g model.SudokuGame
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Difficulty,
		&g.Puzzle,
		&g.Board,
		&g.Completed,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
