package tetris_test

import (
	"fmt"

	"github.com/plus3/gazetris/tetris"
)

func ExampleReduce() {
	cfg := tetris.DefaultConfig()
	shape, _ := tetris.ShapeByName("I")

	state := tetris.NewState(cfg)
	state = tetris.Reduce(cfg, state, tetris.Spawn(tetris.SpawnPiece(shape, cfg.Width)))
	state = tetris.Reduce(cfg, state, tetris.MoveLeft(3))
	state = tetris.Reduce(cfg, state, tetris.Do(tetris.ActionHardDrop))

	blocks := state.Board.Blocks()
	fmt.Println(state.Phase(), blocks[0].X, blocks[0].Y, state.Score)
	// Output: spawning 1 19 0
}
