package tetris

// Snapshot is the read-only view handed to presentation layers.
type Snapshot struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	GameOverLine int     `json:"gameOverLine"`
	Board        []Block `json:"board"`
	Piece        []Block `json:"piece,omitempty"`
	Ghost        []Block `json:"ghost,omitempty"`
	Score        int     `json:"score"`
	Lines        int     `json:"lines"`
	Level        int     `json:"level"`
	GameOver     bool    `json:"isGameOver"`
	Phase        Phase   `json:"phase"`
}

// TakeSnapshot renders s for display. Level is left for the caller, which
// owns the speed curve.
func TakeSnapshot(cfg Config, s State) Snapshot {
	snap := Snapshot{
		Width:        s.Board.Width(),
		Height:       s.Board.Height(),
		GameOverLine: cfg.GameOverLine,
		Board:        s.Board.Blocks(),
		Score:        s.Score,
		Lines:        s.Lines,
		GameOver:     s.GameOver,
		Phase:        s.Phase(),
	}

	if s.Piece != nil {
		snap.Piece = pieceBlocks(*s.Piece)
		snap.Ghost = pieceBlocks(Drop(*s.Piece, s.Board))
	}
	return snap
}

func pieceBlocks(p Piece) []Block {
	cells := p.Cells()
	blocks := make([]Block, len(cells))
	for i, c := range cells {
		blocks[i] = Block{X: c.X, Y: c.Y, Color: p.Color}
	}
	return blocks
}

// Cell returns the board block at (x, y) from the snapshot, if any.
func (s Snapshot) Cell(x, y int) (Block, bool) {
	for _, b := range s.Board {
		if b.X == x && b.Y == y {
			return b, true
		}
	}
	return Block{}, false
}
