package tetris

// Config holds the fixed rules of a game.
type Config struct {
	Width        int
	Height       int
	GameOverLine int // blocks in rows above this index end the game at the next spawn
	MaxIntensity int // upper bound on steps per horizontal move
	PointsPerRow int
}

// DefaultConfig is the 10x20 board used by every frontend.
func DefaultConfig() Config {
	return Config{
		Width:        10,
		Height:       20,
		GameOverLine: 2,
		MaxIntensity: 3,
		PointsPerRow: 100,
	}
}

// clampIntensity bounds a requested step count to [1, MaxIntensity].
func (c Config) clampIntensity(intensity int) int {
	if intensity < 1 {
		return 1
	}
	if c.MaxIntensity > 0 && intensity > c.MaxIntensity {
		return c.MaxIntensity
	}
	return intensity
}

// Phase is the state machine position derived from a State.
type Phase int

const (
	PhaseSpawning Phase = iota // spawning
	PhaseFalling               // falling
	PhaseLocking               // locking
	PhaseGameOver              // gameOver
)

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PendingClear is the first half of a two-phase line clear: the merged
// board and the rows waiting to be removed.
type PendingClear struct {
	Board Board
	Rows  []int
}

// State is one game. It is passed and returned by value; the reducer never
// mutates the board or piece it was given.
type State struct {
	Piece    *Piece
	Board    Board
	Score    int
	Lines    int
	GameOver bool
	SoftDrop bool
	Pending  *PendingClear
}

// NewState returns an empty board waiting for its first spawn.
func NewState(cfg Config) State {
	return State{Board: NewBoard(cfg.Width, cfg.Height)}
}

// Phase derives the state machine position.
func (s State) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Pending != nil:
		return PhaseLocking
	case s.Piece != nil:
		return PhaseFalling
	default:
		return PhaseSpawning
	}
}

// NeedsSpawn reports whether the host should request a new piece.
func (s State) NeedsSpawn() bool {
	return s.Phase() == PhaseSpawning
}
