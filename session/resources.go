package session

import (
	"time"

	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/tetris"
)

// Game is the reducer state of the running game. Generation increments on
// every reset so observers can tell games apart.
type Game struct {
	State      tetris.State
	Generation uint64
	Pieces     int
	Started    time.Time
}

// ActionQueue holds actions in arrival order until ReduceSystem applies them.
type ActionQueue struct {
	items []tetris.Action
}

// NewActionQueue returns a queue holding actions, for replacing the queue
// resource wholesale.
func NewActionQueue(actions ...tetris.Action) ActionQueue {
	return ActionQueue{items: append([]tetris.Action(nil), actions...)}
}

func (q *ActionQueue) Push(a tetris.Action) { q.items = append(q.items, a) }

func (q *ActionQueue) Len() int { return len(q.items) }

// Has reports whether an action of kind is waiting.
func (q *ActionQueue) Has(kind tetris.ActionKind) bool {
	for _, a := range q.items {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Take removes and returns every queued action.
func (q *ActionQueue) Take() []tetris.Action {
	items := q.items
	q.items = nil
	return items
}

// Clear drops queued actions and reports how many were dropped.
func (q *ActionQueue) Clear() int {
	n := len(q.items)
	q.items = nil
	return n
}

// GravityTimer accumulates frame time toward the next Tick.
type GravityTimer struct {
	Elapsed time.Duration
}

// ClearTimer accumulates frame time while a line clear is pending.
type ClearTimer struct {
	Elapsed time.Duration
}

// SpawnRandom picks the next piece.
type SpawnRandom struct {
	Spawner *tetris.Spawner
}

// Input is the bus subscription the session drains each frame. Sub is nil
// for sessions driven only through Dispatch.
type Input struct {
	Sub *control.Subscription
}

// View is the latest render snapshot. Version increases whenever an action
// has been applied since the previous frame.
type View struct {
	Snapshot tetris.Snapshot
	Version  uint64
}
