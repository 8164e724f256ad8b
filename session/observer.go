package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/tetris"
)

// Summary describes a finished game.
type Summary struct {
	Session    uuid.UUID
	Generation uint64
	Score      int
	Lines      int
	Level      int
	Pieces     int
	Started    time.Time
	Ended      time.Time
}

// Duration is the wall time the game lasted.
func (s Summary) Duration() time.Duration { return s.Ended.Sub(s.Started) }

// Observer is notified after each frame's actions have been applied.
// Callbacks run on the session goroutine while the session is locked, so
// they must not call back into the Session.
type Observer interface {
	ActionApplied(id uuid.UUID, a tetris.Action, s tetris.State)
	LinesCleared(id uuid.UUID, rows int, s tetris.State)
	GameOver(summary Summary)
}

// FrameObserver is optionally implemented by observers that want the
// snapshot whenever it changes.
type FrameObserver interface {
	Frame(id uuid.UUID, snap tetris.Snapshot)
}

// NopObserver implements Observer with no-ops, for embedding.
type NopObserver struct{}

func (NopObserver) ActionApplied(uuid.UUID, tetris.Action, tetris.State) {}
func (NopObserver) LinesCleared(uuid.UUID, int, tetris.State)            {}
func (NopObserver) GameOver(Summary)                                     {}
