package tetris_test

import (
	"testing"

	"github.com/plus3/gazetris/tetris"
	"github.com/stretchr/testify/assert"
)

func TestIsValidMoveBounds(t *testing.T) {
	board := tetris.NewBoard(10, 20)

	for y := -1; y <= board.Height(); y++ {
		for x := -1; x <= board.Width(); x++ {
			want := x >= 0 && x < board.Width() && y >= 0 && y < board.Height()
			assert.Equal(t, want, tetris.IsValidMove(single(x, y), board, 0, 0), "cell (%d,%d)", x, y)
		}
	}
}

func TestIsValidMoveEdges(t *testing.T) {
	board := tetris.NewBoard(10, 20)

	tests := []struct {
		name   string
		piece  tetris.Piece
		dx, dy int
		valid  bool
	}{
		{"left wall blocks", tetris.SpawnPiece(mustShape(t, "I"), 10).Shifted(-4, 0), -1, 0, false},
		{"left wall flush", tetris.SpawnPiece(mustShape(t, "I"), 10).Shifted(-3, 0), -1, 0, true},
		{"right wall blocks", tetris.SpawnPiece(mustShape(t, "I"), 10).Shifted(2, 0), 1, 0, false},
		{"right wall flush", tetris.SpawnPiece(mustShape(t, "I"), 10).Shifted(1, 0), 1, 0, true},
		{"top blocks", tetris.SpawnPiece(mustShape(t, "O"), 10), 0, -1, false},
		{"floor blocks", verticalI(0, 16), 0, 1, false},
		{"floor flush", verticalI(0, 15), 0, 1, true},
		{"no offset", verticalI(9, 16), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tetris.IsValidMove(tt.piece, board, tt.dx, tt.dy))
		})
	}
}

func TestIsValidMoveCollision(t *testing.T) {
	board := tetris.NewBoard(10, 20).WithBlock(5, 10, tetris.ColorPrimary)

	assert.False(t, tetris.IsValidMove(single(5, 9), board, 0, 1))
	assert.False(t, tetris.IsValidMove(single(4, 10), board, 1, 0))
	assert.True(t, tetris.IsValidMove(single(4, 10), board, 0, 1))
	assert.True(t, tetris.IsValidMove(single(4, 10), board, -1, 0))
}

func TestRotate(t *testing.T) {
	for _, shape := range tetris.Catalogue {
		t.Run(shape.Name, func(t *testing.T) {
			piece := tetris.SpawnPiece(shape, 10)

			turned := piece
			for range 4 {
				turned = tetris.Rotate(turned)
			}

			assert.Equal(t, piece.Shape, turned.Shape)
			assert.Equal(t, piece.X, turned.X)
			assert.Equal(t, piece.Y, turned.Y)
			assert.Equal(t, piece.Color, turned.Color)
			assert.Equal(t, 0, turned.Rotation)
		})
	}

	t.Run("quarter turn", func(t *testing.T) {
		piece := tetris.SpawnPiece(mustShape(t, "I"), 10)
		original := append([]tetris.Offset(nil), piece.Shape...)

		turned := tetris.Rotate(piece)

		assert.Equal(t, []tetris.Offset{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}}, turned.Shape)
		assert.Equal(t, 90, turned.Rotation)
		assert.Equal(t, original, piece.Shape, "source shape must not change")
	})
}

func TestDrop(t *testing.T) {
	board := tetris.NewBoard(10, 20).WithBlock(4, 12, tetris.ColorAccent)

	landed := tetris.Drop(tetris.SpawnPiece(mustShape(t, "I"), 10), board)

	assert.Equal(t, 11, landed.Y)
	assert.Equal(t, 4, landed.X)
}

func TestCatalogue(t *testing.T) {
	assert.Len(t, tetris.Catalogue, 5)

	colors := map[tetris.Color]bool{}
	for _, shape := range tetris.Catalogue {
		assert.Len(t, shape.Offsets, 4, shape.Name)
		colors[shape.Color] = true
	}
	assert.Len(t, colors, 3)

	_, ok := tetris.ShapeByName("S")
	assert.False(t, ok)
}

func TestSpawnPiece(t *testing.T) {
	piece := tetris.SpawnPiece(mustShape(t, "O"), 10)

	assert.Equal(t, 4, piece.X)
	assert.Equal(t, 0, piece.Y)
	assert.Equal(t, 0, piece.Rotation)
	assert.Equal(t, tetris.ColorPrimary, piece.Color)
}

func TestSpawner(t *testing.T) {
	a := tetris.NewSpawner(10, 42)
	b := tetris.NewSpawner(10, 42)

	seen := map[string]bool{}
	for range 200 {
		pa, pb := a.Next(), b.Next()
		assert.Equal(t, pa, pb)
		assert.Equal(t, 4, pa.X)
		assert.Equal(t, 0, pa.Y)

		for _, shape := range tetris.Catalogue {
			if assert.ObjectsAreEqual(shape.Offsets, pa.Shape) {
				seen[shape.Name] = true
			}
		}
	}

	assert.Len(t, seen, len(tetris.Catalogue), "every shape should show up in 200 draws")
}

func TestParseActionKind(t *testing.T) {
	tests := map[string]tetris.ActionKind{
		"moveLeft":      tetris.ActionMoveLeft,
		"moveRight":     tetris.ActionMoveRight,
		"rotate":        tetris.ActionRotate,
		"rotateRight":   tetris.ActionRotate,
		"softDrop":      tetris.ActionSoftDropStart,
		"endSoftDrop":   tetris.ActionSoftDropEnd,
		"softDropStart": tetris.ActionSoftDropStart,
		"hardDrop":      tetris.ActionHardDrop,
		"commitClear":   tetris.ActionCommitClear,
	}

	for name, want := range tests {
		got, err := tetris.ParseActionKind(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := tetris.ParseActionKind("teleport")
	assert.EqualError(t, err, `tetris: unknown action "teleport"`)
}

func TestControllable(t *testing.T) {
	assert.True(t, tetris.ActionMoveLeft.Controllable())
	assert.True(t, tetris.ActionHardDrop.Controllable())
	assert.False(t, tetris.ActionSpawn.Controllable())
	assert.False(t, tetris.ActionCommitClear.Controllable())
	assert.False(t, tetris.ActionReset.Controllable())
}
