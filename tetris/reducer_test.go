package tetris_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/gazetris/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reduceAll(cfg tetris.Config, s tetris.State, actions ...tetris.Action) tetris.State {
	for _, a := range actions {
		s = tetris.Reduce(cfg, s, a)
	}
	return s
}

func withPiece(t *testing.T, cfg tetris.Config, board tetris.Board, p tetris.Piece) tetris.State {
	t.Helper()
	s := tetris.NewState(cfg)
	s.Board = board
	s = tetris.Reduce(cfg, s, tetris.Spawn(p))
	require.NotNil(t, s.Piece, "spawn rejected")
	require.False(t, s.GameOver)
	return s
}

func TestReduceFallAndLock(t *testing.T) {
	cfg := tetris.DefaultConfig()
	s := withPiece(t, cfg, tetris.NewBoard(cfg.Width, cfg.Height), tetris.SpawnPiece(mustShape(t, "I"), cfg.Width))
	assert.Equal(t, 4, s.Piece.X)
	assert.Equal(t, tetris.PhaseFalling, s.Phase())

	for range 19 {
		s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionTick))
	}
	require.NotNil(t, s.Piece)
	assert.Equal(t, 19, s.Piece.Y)

	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionTick))

	assert.Nil(t, s.Piece)
	assert.Equal(t, tetris.PhaseSpawning, s.Phase())
	assert.Equal(t, 0, s.Score)
	blocks := s.Board.Blocks()
	require.Len(t, blocks, 4)
	for i, blk := range blocks {
		assert.Equal(t, 19, blk.Y)
		assert.Equal(t, 4+i, blk.X)
		assert.Equal(t, tetris.ColorPrimary, blk.Color)
	}
}

func TestReduceLineClear(t *testing.T) {
	cfg := tetris.DefaultConfig()
	board := fillRow(tetris.NewBoard(cfg.Width, cfg.Height), 19, 9)
	s := withPiece(t, cfg, board, verticalI(9, 0))

	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionHardDrop))

	require.Equal(t, tetris.PhaseLocking, s.Phase())
	require.NotNil(t, s.Pending)
	assert.Equal(t, []int{19}, s.Pending.Rows)
	assert.Equal(t, 0, s.Score, "score waits for the commit")
	for x := range cfg.Width {
		blk, ok := s.Board.At(x, 19)
		require.True(t, ok)
		assert.True(t, blk.Clearing, "column %d", x)
	}

	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionCommitClear))

	assert.Equal(t, tetris.PhaseSpawning, s.Phase())
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, 1, s.Lines)
	for x := range cfg.Width {
		assert.False(t, s.Board.Occupied(x, 0))
	}
	for y := 17; y <= 19; y++ {
		blk, ok := s.Board.At(9, y)
		require.True(t, ok, "row %d", y)
		assert.False(t, blk.Clearing)
	}
	assert.False(t, s.Board.Occupied(9, 16))
	assert.Len(t, s.Board.Blocks(), 3)
}

func TestReduceMultiRowClear(t *testing.T) {
	cfg := tetris.DefaultConfig()
	board := tetris.NewBoard(cfg.Width, cfg.Height)
	board = fillRow(board, 19, 0)
	board = fillRow(board, 18, 0)
	board = board.WithBlock(3, 17, tetris.ColorError)
	s := withPiece(t, cfg, board, verticalI(0, 0))

	s = reduceAll(cfg, s,
		tetris.Do(tetris.ActionHardDrop),
		tetris.Do(tetris.ActionCommitClear),
	)

	assert.Equal(t, 200, s.Score)
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, "P.........", rowString(s.Board, 18))
	assert.Equal(t, "P..E......", rowString(s.Board, 19))
}

func TestReduceSpawnBlocked(t *testing.T) {
	cfg := tetris.DefaultConfig()
	board := tetris.NewBoard(cfg.Width, cfg.Height).WithBlock(4, 0, tetris.ColorAccent)
	s := tetris.NewState(cfg)
	s.Board = board

	s = tetris.Reduce(cfg, s, tetris.Spawn(tetris.SpawnPiece(mustShape(t, "I"), cfg.Width)))

	assert.True(t, s.GameOver)
	assert.Equal(t, tetris.PhaseGameOver, s.Phase())
	assert.Nil(t, s.Piece)
	assert.True(t, s.Board.Equal(board))
}

func TestReduceSpawnAboveGameOverLine(t *testing.T) {
	cfg := tetris.DefaultConfig()
	s := tetris.NewState(cfg)
	s.Board = s.Board.WithBlock(0, 1, tetris.ColorError)

	s = tetris.Reduce(cfg, s, tetris.Spawn(tetris.SpawnPiece(mustShape(t, "O"), cfg.Width)))

	assert.True(t, s.GameOver, "row 1 is above the line even when the spawn cells are free")
}

func TestReduceMoveIntensity(t *testing.T) {
	cfg := tetris.DefaultConfig()
	empty := tetris.NewBoard(cfg.Width, cfg.Height)
	start := tetris.SpawnPiece(mustShape(t, "I"), cfg.Width)

	tests := []struct {
		name   string
		board  tetris.Board
		piece  tetris.Piece
		action tetris.Action
		wantX  int
	}{
		{"wall stops the move", empty, start.Shifted(-3, 0), tetris.MoveLeft(3), 0},
		{"intensity clamps to the maximum", empty, start, tetris.MoveLeft(9), 1},
		{"zero intensity moves once", empty, start, tetris.MoveRight(0), 5},
		{"negative intensity moves once", empty, start, tetris.MoveLeft(-2), 3},
		{"full intensity right", empty, start.Shifted(-2, 0), tetris.MoveRight(3), 5},
		{"right wall", empty, start, tetris.MoveRight(3), 6},
		{"obstruction keeps partial progress", empty.WithBlock(1, 5, tetris.ColorError), start.Shifted(0, 5), tetris.MoveLeft(3), 2},
		{"blocked immediately", empty.WithBlock(3, 5, tetris.ColorError), start.Shifted(0, 5), tetris.MoveLeft(2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withPiece(t, cfg, tt.board, tt.piece)

			s = tetris.Reduce(cfg, s, tt.action)

			require.NotNil(t, s.Piece)
			assert.Equal(t, tt.wantX, s.Piece.X)
			assert.Equal(t, tt.piece.Y, s.Piece.Y)
		})
	}
}

func TestReduceRotate(t *testing.T) {
	cfg := tetris.DefaultConfig()
	empty := tetris.NewBoard(cfg.Width, cfg.Height)

	t.Run("valid rotation", func(t *testing.T) {
		piece := tetris.SpawnPiece(mustShape(t, "I"), cfg.Width).Shifted(0, 4)
		s := withPiece(t, cfg, empty, piece)

		s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionRotate))

		assert.Equal(t, 90, s.Piece.Rotation)
		for _, c := range s.Piece.Cells() {
			assert.Equal(t, 4, c.X)
		}
	})

	t.Run("rotation off the board is rejected", func(t *testing.T) {
		piece := tetris.SpawnPiece(mustShape(t, "L"), cfg.Width).Shifted(-4, 4)
		s := withPiece(t, cfg, empty, piece)

		next := tetris.Reduce(cfg, s, tetris.Do(tetris.ActionRotate))

		assert.Equal(t, s, next)
	})

	t.Run("rotation into a block is rejected", func(t *testing.T) {
		piece := tetris.SpawnPiece(mustShape(t, "I"), cfg.Width).Shifted(0, 4)
		s := withPiece(t, cfg, empty.WithBlock(4, 6, tetris.ColorAccent), piece)

		next := tetris.Reduce(cfg, s, tetris.Do(tetris.ActionRotate))

		assert.Equal(t, 0, next.Piece.Rotation)
	})
}

func TestReduceNoopsWithoutPiece(t *testing.T) {
	cfg := tetris.DefaultConfig()
	s := tetris.NewState(cfg)

	for _, a := range []tetris.Action{
		tetris.MoveLeft(2),
		tetris.MoveRight(1),
		tetris.Do(tetris.ActionRotate),
		tetris.Do(tetris.ActionTick),
		tetris.Do(tetris.ActionHardDrop),
		tetris.Do(tetris.ActionCommitClear),
		tetris.Do(tetris.ActionSpawn),
	} {
		assert.Equal(t, s, tetris.Reduce(cfg, s, a), a.Kind.String())
	}
}

func TestReduceDuringPendingClear(t *testing.T) {
	cfg := tetris.DefaultConfig()
	board := fillRow(tetris.NewBoard(cfg.Width, cfg.Height), 19, 9)
	s := withPiece(t, cfg, board, verticalI(9, 0))
	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionHardDrop))
	require.Equal(t, tetris.PhaseLocking, s.Phase())

	for _, a := range []tetris.Action{
		tetris.Do(tetris.ActionTick),
		tetris.MoveLeft(1),
		tetris.Spawn(tetris.SpawnPiece(mustShape(t, "O"), cfg.Width)),
	} {
		next := tetris.Reduce(cfg, s, a)
		assert.Equal(t, s, next, a.Kind.String())
	}
}

func TestReduceGameOverIsTerminal(t *testing.T) {
	cfg := tetris.DefaultConfig()
	s := tetris.NewState(cfg)
	s.Score = 700
	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionMarkGameOver))
	require.Equal(t, tetris.PhaseGameOver, s.Phase())

	for _, a := range []tetris.Action{
		tetris.Spawn(tetris.SpawnPiece(mustShape(t, "O"), cfg.Width)),
		tetris.Do(tetris.ActionTick),
		tetris.Do(tetris.ActionSoftDropStart),
		tetris.Do(tetris.ActionCommitClear),
	} {
		assert.Equal(t, s, tetris.Reduce(cfg, s, a), a.Kind.String())
	}

	reset := tetris.Reduce(cfg, s, tetris.Do(tetris.ActionReset))
	assert.Equal(t, tetris.PhaseSpawning, reset.Phase())
	assert.Equal(t, 0, reset.Score)
	assert.Empty(t, reset.Board.Blocks())
}

func TestReduceSoftDrop(t *testing.T) {
	cfg := tetris.DefaultConfig()
	s := tetris.NewState(cfg)

	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionSoftDropStart))
	assert.True(t, s.SoftDrop)
	s = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionSoftDropEnd))
	assert.False(t, s.SoftDrop)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	cfg := tetris.DefaultConfig()
	board := fillRow(tetris.NewBoard(cfg.Width, cfg.Height), 19, 9)
	s := withPiece(t, cfg, board, verticalI(9, 0))
	boardBefore := s.Board.String()
	pieceBefore := *s.Piece

	_ = reduceAll(cfg, s,
		tetris.Do(tetris.ActionRotate),
		tetris.MoveLeft(2),
		tetris.Do(tetris.ActionHardDrop),
		tetris.Do(tetris.ActionCommitClear),
	)
	_ = tetris.Reduce(cfg, s, tetris.Do(tetris.ActionHardDrop))

	assert.Equal(t, boardBefore, s.Board.String())
	assert.Equal(t, pieceBefore, *s.Piece)
}

func TestReduceRandomPlay(t *testing.T) {
	cfg := tetris.DefaultConfig()
	rng := rand.New(rand.NewPCG(7, 11))
	spawner := tetris.NewSpawner(cfg.Width, 3)
	kinds := []tetris.ActionKind{
		tetris.ActionMoveLeft,
		tetris.ActionMoveRight,
		tetris.ActionRotate,
		tetris.ActionTick,
		tetris.ActionTick,
		tetris.ActionHardDrop,
	}

	s := tetris.NewState(cfg)
	for step := range 5000 {
		var a tetris.Action
		switch s.Phase() {
		case tetris.PhaseGameOver:
			a = tetris.Do(tetris.ActionReset)
		case tetris.PhaseSpawning:
			a = tetris.Spawn(spawner.Next())
		case tetris.PhaseLocking:
			a = tetris.Do(tetris.ActionCommitClear)
		default:
			a = tetris.Action{Kind: kinds[rng.IntN(len(kinds))], Intensity: rng.IntN(5)}
		}

		next := tetris.Reduce(cfg, s, a)

		if a.Kind != tetris.ActionReset {
			require.GreaterOrEqual(t, next.Score, s.Score, "step %d", step)
			require.Equal(t, 0, next.Score%cfg.PointsPerRow)
		}
		require.Equal(t, cfg.Width, next.Board.Width())
		require.Equal(t, cfg.Height, next.Board.Height())
		if next.Piece != nil {
			require.True(t, tetris.IsValidMove(*next.Piece, next.Board, 0, 0), "step %d: piece overlaps", step)
		}
		if next.Pending == nil {
			require.Empty(t, next.Board.CompletedRows(), "step %d", step)
		}
		s = next
	}
}

func rowString(b tetris.Board, y int) string {
	out := make([]byte, b.Width())
	for x := range out {
		out[x] = '.'
		if blk, ok := b.At(x, y); ok {
			switch blk.Color {
			case tetris.ColorPrimary:
				out[x] = 'P'
			case tetris.ColorAccent:
				out[x] = 'A'
			case tetris.ColorError:
				out[x] = 'E'
			}
		}
	}
	return string(out)
}
