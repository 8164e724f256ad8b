package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/ecs"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// IntakeSystem moves externally published actions onto the queue. Only
// controllable kinds are accepted from the bus.
type IntakeSystem struct {
	Input ecs.Singleton[Input]
	Queue ecs.Singleton[ActionQueue]

	log zerolog.Logger
}

func (s *IntakeSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	if in == nil || in.Sub == nil {
		return
	}
	queue := s.Queue.Get()
	for _, a := range in.Sub.Drain() {
		if !a.Kind.Controllable() {
			s.log.Warn().Stringer("action", a.Kind).Msg("rejected host-only action from bus")
			continue
		}
		queue.Push(a)
	}
}

// GravitySystem enqueues a Tick each time the gravity period elapses while
// a piece is falling.
type GravitySystem struct {
	Game  ecs.Singleton[Game]
	Queue ecs.Singleton[ActionQueue]
	Timer ecs.Singleton[GravityTimer]

	speed tetris.Speed
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Game.Get().State
	timer := s.Timer.Get()
	if state.Phase() != tetris.PhaseFalling {
		timer.Elapsed = 0
		return
	}

	timer.Elapsed += frame.DeltaTime
	interval := s.speed.Interval(state.Score, state.SoftDrop)
	if interval <= 0 {
		return
	}
	queue := s.Queue.Get()
	for timer.Elapsed >= interval {
		timer.Elapsed -= interval
		queue.Push(tetris.Do(tetris.ActionTick))
	}
}

// ClearDelaySystem holds a pending clear on screen for delay, then
// enqueues CommitClear.
type ClearDelaySystem struct {
	Game  ecs.Singleton[Game]
	Queue ecs.Singleton[ActionQueue]
	Timer ecs.Singleton[ClearTimer]

	delay time.Duration
}

func (s *ClearDelaySystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	if s.Game.Get().State.Phase() != tetris.PhaseLocking {
		timer.Elapsed = 0
		return
	}

	queue := s.Queue.Get()
	if queue.Has(tetris.ActionCommitClear) {
		return
	}
	timer.Elapsed += frame.DeltaTime
	if timer.Elapsed >= s.delay {
		timer.Elapsed = 0
		queue.Push(tetris.Do(tetris.ActionCommitClear))
	}
}

// SpawnSystem requests a new piece whenever the game is waiting for one.
type SpawnSystem struct {
	Game   ecs.Singleton[Game]
	Queue  ecs.Singleton[ActionQueue]
	Random ecs.Singleton[SpawnRandom]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	if !s.Game.Get().State.NeedsSpawn() || queue.Has(tetris.ActionSpawn) {
		return
	}
	queue.Push(tetris.Spawn(s.Random.Get().Spawner.Next()))
}

// ReduceSystem applies queued actions in order and refreshes the view.
// Observer callbacks are deferred until the frame's commands are flushed.
type ReduceSystem struct {
	Game    ecs.Singleton[Game]
	Queue   ecs.Singleton[ActionQueue]
	Gravity ecs.Singleton[GravityTimer]
	Clear   ecs.Singleton[ClearTimer]
	View    ecs.Singleton[View]

	id        uuid.UUID
	cfg       tetris.Config
	speed     tetris.Speed
	observers []Observer
	now       func() time.Time
	log       zerolog.Logger
}

func (s *ReduceSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()
	queue := s.Queue.Get()
	actions := queue.Take()

	for i, a := range actions {
		prev := game.State
		next := tetris.Reduce(s.cfg, prev, a)
		game.State = next

		switch {
		case a.Kind == tetris.ActionReset:
			game.Generation++
			game.Pieces = 0
			game.Started = s.now()
			s.zeroTimers()
			s.log.Info().Uint64("generation", game.Generation).Msg("game reset")
		case a.Kind == tetris.ActionSpawn && next.Piece != nil && prev.Piece == nil:
			game.Pieces++
		}

		s.notifyApplied(frame, a, next)

		if rows := next.Lines - prev.Lines; rows > 0 {
			s.log.Debug().Int("rows", rows).Int("score", next.Score).Msg("lines cleared")
			s.notifyCleared(frame, rows, next)
		}

		if next.GameOver && !prev.GameOver {
			dropped := len(actions) - i - 1
			s.zeroTimers()
			summary := s.summary(game)
			s.log.Info().
				Int("score", summary.Score).
				Int("lines", summary.Lines).
				Int("dropped", dropped).
				Msg("game over")
			s.notifyGameOver(frame, summary)
			break
		}
	}

	if len(actions) > 0 || s.View.Get().Version == 0 {
		s.refreshView(frame, game.State)
	}
}

func (s *ReduceSystem) zeroTimers() {
	s.Gravity.Get().Elapsed = 0
	s.Clear.Get().Elapsed = 0
	s.Queue.Get().Clear()
}

func (s *ReduceSystem) summary(game *Game) Summary {
	return Summary{
		Session:    s.id,
		Generation: game.Generation,
		Score:      game.State.Score,
		Lines:      game.State.Lines,
		Level:      s.speed.Level(game.State.Score),
		Pieces:     game.Pieces,
		Started:    game.Started,
		Ended:      s.now(),
	}
}

func (s *ReduceSystem) refreshView(frame *ecs.UpdateFrame, state tetris.State) {
	view := s.View.Get()
	view.Snapshot = tetris.TakeSnapshot(s.cfg, state)
	view.Snapshot.Level = s.speed.Level(state.Score)
	view.Version++

	snap := view.Snapshot
	for _, o := range s.observers {
		if fo, ok := o.(FrameObserver); ok {
			frame.Commands.Defer(func() { fo.Frame(s.id, snap) })
		}
	}
}

func (s *ReduceSystem) notifyApplied(frame *ecs.UpdateFrame, a tetris.Action, state tetris.State) {
	for _, o := range s.observers {
		frame.Commands.Defer(func() { o.ActionApplied(s.id, a, state) })
	}
}

func (s *ReduceSystem) notifyCleared(frame *ecs.UpdateFrame, rows int, state tetris.State) {
	for _, o := range s.observers {
		frame.Commands.Defer(func() { o.LinesCleared(s.id, rows, state) })
	}
}

func (s *ReduceSystem) notifyGameOver(frame *ecs.UpdateFrame, summary Summary) {
	for _, o := range s.observers {
		frame.Commands.Defer(func() { o.GameOver(summary) })
	}
}
