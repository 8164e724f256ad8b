// Package session hosts one game: it owns the reducer state and drives it
// from a scheduler frame loop fed by the action bus, gravity and the
// line-clear delay.
package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/ecs"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// DefaultClearDelay is how long completed rows stay visible before they
// are removed.
const DefaultClearDelay = 300 * time.Millisecond

type Options struct {
	Config     tetris.Config
	Speed      tetris.Speed
	ClearDelay time.Duration

	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed uint64

	// Bus, when set, is subscribed for the lifetime of the session.
	Bus       *control.Bus
	Observers []Observer
	Log       zerolog.Logger

	// Now is the wall clock used for game summaries. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Config == (tetris.Config{}) {
		o.Config = tetris.DefaultConfig()
	}
	if o.Speed == (tetris.Speed{}) {
		o.Speed = tetris.DefaultSpeed()
	}
	if o.ClearDelay <= 0 {
		o.ClearDelay = DefaultClearDelay
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session is one game instance. All methods are safe for concurrent use.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	opts      Options
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	game      *ecs.Singleton[Game]
	queue     *ecs.Singleton[ActionQueue]
	view      *ecs.Singleton[View]
	sub       *control.Subscription
	closed    bool
	log       zerolog.Logger
}

// New builds a session with an empty board. The first frame spawns a piece.
func New(opts Options) *Session {
	opts = opts.withDefaults()
	id := uuid.New()
	log := opts.Log.With().Str("session", id.String()).Logger()

	storage := ecs.NewStorage()
	s := &Session{
		ID:        id,
		opts:      opts,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		log:       log,
	}

	s.game = ecs.NewSingleton(storage, Game{
		State:   tetris.NewState(opts.Config),
		Started: opts.Now(),
	})
	s.queue = ecs.NewSingleton[ActionQueue](storage)
	s.view = ecs.NewSingleton[View](storage)
	ecs.NewSingleton[GravityTimer](storage)
	ecs.NewSingleton[ClearTimer](storage)
	ecs.NewSingleton(storage, SpawnRandom{Spawner: tetris.NewSpawner(opts.Config.Width, opts.Seed)})

	if opts.Bus != nil {
		s.sub = opts.Bus.Subscribe()
	}
	ecs.NewSingleton(storage, Input{Sub: s.sub})

	s.scheduler.Register(&IntakeSystem{log: log})
	s.scheduler.Register(&GravitySystem{speed: opts.Speed})
	s.scheduler.Register(&ClearDelaySystem{delay: opts.ClearDelay})
	s.scheduler.Register(&SpawnSystem{})
	s.scheduler.Register(&ReduceSystem{
		id:        id,
		cfg:       opts.Config,
		speed:     opts.Speed,
		observers: opts.Observers,
		now:       opts.Now,
		log:       log,
	})

	log.Info().Uint64("seed", opts.Seed).Msg("session created")
	return s
}

// Register appends a system that runs after the game systems each frame,
// such as a debug overlay.
func (s *Session) Register(system ecs.System) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Register(system)
}

// Storage exposes the session resources to extra systems.
func (s *Session) Storage() *ecs.Storage { return s.storage }

// Step advances the session by one frame of dt.
func (s *Session) Step(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.scheduler.Once(dt)
}

// Run steps the session every interval until ctx is done, then closes it.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	defer s.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Step(now.Sub(last))
			last = now
		}
	}
}

// Dispatch queues a for the next frame. Unlike bus input, host-only kinds
// are accepted.
func (s *Session) Dispatch(a tetris.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue.Get().Push(a)
}

// Reset discards anything queued and starts a new game on the next frame.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	queue := s.queue.Get()
	if n := queue.Clear(); n > 0 {
		s.log.Debug().Int("dropped", n).Msg("queue flushed for reset")
	}
	queue.Push(tetris.Do(tetris.ActionReset))
}

// Snapshot is the view produced by the last frame.
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Get().Snapshot
}

// State is the current reducer state.
func (s *Session) State() tetris.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Get().State
}

// Generation counts resets since the session started.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Get().Generation
}

// Stats reports scheduler timings. It does not take the session lock so
// overlay systems may call it mid-frame.
func (s *Session) Stats() *ecs.SchedulerStats {
	return s.scheduler.GetStats()
}

// Close unsubscribes from the bus and stops further frames. The final
// state stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.sub != nil {
		s.sub.Close()
	}
	s.queue.Get().Clear()

	var gravity *GravityTimer
	if s.storage.ReadSingleton(&gravity) {
		gravity.Elapsed = 0
	}
	var clearTimer *ClearTimer
	if s.storage.ReadSingleton(&clearTimer) {
		clearTimer.Elapsed = 0
	}
	s.log.Info().Msg("session closed")
}
