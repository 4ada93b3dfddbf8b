package model

import "time"

// SudokuDifficulty selects the puzzle pool for a new game.
type SudokuDifficulty string

const (
	SudokuEasy   SudokuDifficulty = "easy"
	SudokuMedium SudokuDifficulty = "medium"
	SudokuHard   SudokuDifficulty = "hard"
)

// IsValid reports whether the difficulty is a known value.
func (d SudokuDifficulty) IsValid() bool {
	switch d {
	case SudokuEasy, SudokuMedium, SudokuHard:
		return true
	}
	return false
}

// SudokuGame stores one puzzle in progress. Puzzle is the immutable
// starting grid, Board the player's current state; both are 81-char
// strings of digits with '0' for empty cells, row-major order.
type SudokuGame struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	Difficulty SudokuDifficulty `json:"difficulty"`
	Puzzle     string           `json:"puzzle"`
	Board      string           `json:"board"`
	Completed  bool             `json:"completed"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
