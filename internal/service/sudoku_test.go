package service

import (
	"strings"
	"testing"

	"github.com/everkeep/everkeep/internal/model"
)

const solvedBoard = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func TestValidateBoard(t *testing.T) {
	t.Parallel()

	puzzle := puzzles[model.SudokuEasy][0]

	tests := []struct {
		name    string
		board   string
		wantErr error
	}{
		{"unchanged puzzle", puzzle, nil},
		{"solved", solvedBoard, nil},
		{"too short", "123", ErrInvalidBoard},
		{"bad character", strings.Replace(puzzle, "0", "x", 1), ErrInvalidBoard},
		{"clue overwritten", "9" + puzzle[1:], ErrClueOverwritten},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateBoard(puzzle, tt.board)
			if err != tt.wantErr {
				t.Errorf("validateBoard() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsSolved(t *testing.T) {
	t.Parallel()

	if !isSolved(solvedBoard) {
		t.Error("a correctly solved board should be recognized")
	}

	if isSolved(puzzles[model.SudokuEasy][0]) {
		t.Error("a board with empty cells is not solved")
	}

	// Full board with a duplicate in row 1.
	broken := "5" + solvedBoard[:1] + solvedBoard[2:]
	if isSolved(broken) {
		t.Error("a board with a duplicate digit is not solved")
	}
}

func TestPuzzlePool(t *testing.T) {
	t.Parallel()

	for difficulty, pool := range puzzles {
		if len(pool) == 0 {
			t.Fatalf("no puzzles for difficulty %s", difficulty)
		}
		for _, p := range pool {
			if len(p) != 81 {
				t.Errorf("%s puzzle has length %d, want 81", difficulty, len(p))
			}
			for _, c := range p {
				if c < '0' || c > '9' {
					t.Errorf("%s puzzle contains invalid char %q", difficulty, c)
				}
			}
		}
	}
}
