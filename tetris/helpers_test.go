package tetris_test

import (
	"testing"

	"github.com/plus3/gazetris/tetris"
	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from rows drawn with '.', 'P', 'A' and 'E'.
func boardFrom(t *testing.T, rows ...string) tetris.Board {
	t.Helper()
	require.NotEmpty(t, rows)

	board := tetris.NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, board.Width(), "row %d", y)
		for x, glyph := range row {
			switch glyph {
			case '.':
			case 'P':
				board = board.WithBlock(x, y, tetris.ColorPrimary)
			case 'A':
				board = board.WithBlock(x, y, tetris.ColorAccent)
			case 'E':
				board = board.WithBlock(x, y, tetris.ColorError)
			default:
				t.Fatalf("unknown glyph %q", glyph)
			}
		}
	}
	return board
}

// fillRow occupies every column of row y except those listed.
func fillRow(board tetris.Board, y int, except ...int) tetris.Board {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < board.Width(); x++ {
		if !skip[x] {
			board = board.WithBlock(x, y, tetris.ColorAccent)
		}
	}
	return board
}

func mustShape(t *testing.T, name string) tetris.Shape {
	t.Helper()
	shape, ok := tetris.ShapeByName(name)
	require.True(t, ok, "shape %s", name)
	return shape
}

func verticalI(x, y int) tetris.Piece {
	return tetris.Piece{
		Shape: []tetris.Offset{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
		Color: tetris.ColorPrimary,
		X:     x,
		Y:     y,
	}
}

func single(x, y int) tetris.Piece {
	return tetris.Piece{
		Shape: []tetris.Offset{{X: 0, Y: 0}},
		Color: tetris.ColorError,
		X:     x,
		Y:     y,
	}
}
