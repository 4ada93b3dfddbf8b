package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/repository"
)

// Sudoku service errors.
var (
	ErrGameNotFound      = errors.New("sudoku game not found")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidBoard      = errors.New("board must be 81 digits")
	ErrClueOverwritten   = errors.New("board changes a fixed puzzle cell")
	ErrGameCompleted     = errors.New("game is already completed")
)

// puzzles is the fixed pool a new game draws from, keyed by
// difficulty. '0' marks an empty cell, row-major order.
var puzzles = map[model.SudokuDifficulty][]string{
	model.SudokuEasy: {
		"530070000600195000098000060800060003400803001700020006060000280000419005000080079",
		"200080300060070084030500209000105408000000000402706000301007040720040060004010003",
	},
	model.SudokuMedium: {
		"000000907000420180000705026100904000050000040000507009920108000034059000507000000",
		"030050040008010500460000012070502080000603000040109030250000098001020600080060020",
	},
	model.SudokuHard: {
		"020810740700003100090002805009040087400208003160030200302700060005600008076051090",
		"100007090030020008009600500005300900010080002600004000300000010040000007007000300",
	},
}

// SudokuService handles sudoku game business logic.
type SudokuService struct {
	repo *repository.Repository
}

// NewSudokuService creates a new SudokuService.
func NewSudokuService(repo *repository.Repository) *SudokuService {
	return &SudokuService{repo: repo}
}

// NewGame creates a game from a random puzzle of the requested
// difficulty. The player's board starts equal to the puzzle.
func (s *SudokuService) NewGame(ctx context.Context, userID string, difficulty model.SudokuDifficulty) (*model.SudokuGame, error) {
	if !difficulty.IsValid() {
		return nil, ErrInvalidDifficulty
	}

	pool := puzzles[difficulty]
	puzzle := pool[cryptoRandInt(len(pool))]

	now := time.Now().UTC()
	game := &model.SudokuGame{
		ID:         uuid.New().String(),
		UserID:     userID,
		Difficulty: difficulty,
		Puzzle:     puzzle,
		Board:      puzzle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create sudoku game: %w", err)
	}

	return game, nil
}

// Get returns one of the user's games.
func (s *SudokuService) Get(ctx context.Context, userID, id string) (*model.SudokuGame, error) {
	game, err := s.repo.GetGame(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// List returns the user's games with pagination metadata.
func (s *SudokuService) List(ctx context.Context, userID string, p pagination.Params) ([]*model.SudokuGame, pagination.Metadata, error) {
	games, total, err := s.repo.ListGames(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return games, pagination.NewMetadata(p, total), nil
}

// UpdateBoard stores the player's board state after validating it
// against the fixed puzzle cells, and marks the game completed when
// the grid is fully and correctly filled.
func (s *SudokuService) UpdateBoard(ctx context.Context, userID, id, board string) (*model.SudokuGame, error) {
	game, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if game.Completed {
		return nil, ErrGameCompleted
	}

	if err := validateBoard(game.Puzzle, board); err != nil {
		return nil, err
	}

	completed := isSolved(board)
	if err := s.repo.UpdateGameBoard(ctx, userID, id, board, completed); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	game.Board = board
	game.Completed = completed
	return game, nil
}

// Delete removes one of the user's games.
func (s *SudokuService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteGame(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

// validateBoard checks shape and that every fixed puzzle cell is intact.
func validateBoard(puzzle, board string) error {
	if len(board) != 81 {
		return ErrInvalidBoard
	}
	for i := 0; i < 81; i++ {
		if board[i] < '0' || board[i] > '9' {
			return ErrInvalidBoard
		}
		if puzzle[i] != '0' && board[i] != puzzle[i] {
			return ErrClueOverwritten
		}
	}
	return nil
}

// isSolved reports whether every row, column, and 3x3 box contains
// the digits 1-9 exactly once.
func isSolved(board string) bool {
	groups := [27][9]int{}
	for i := 0; i < 81; i++ {
		d := int(board[i] - '0')
		if d == 0 {
			return false
		}
		row, col := i/9, i%9
		box := (row/3)*3 + col/3
		groups[row][d-1]++
		groups[9+col][d-1]++
		groups[18+box][d-1]++
	}
	for _, g := range groups {
		for _, count := range g {
			if count != 1 {
				return false
			}
		}
	}
	return true
}

// cryptoRandInt returns a random integer in [0, max).
func cryptoRandInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
