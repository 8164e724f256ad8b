package scores

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/gazetris/session"
)

const (
	// RecordTimeout bounds each write made by a Recorder.
	RecordTimeout = 2 * time.Second

	// RecorderBuffer is how many finished games may wait for the writer.
	RecorderBuffer = 16
)

// Recorder stores every finished game. GameOver runs inside the session
// frame, so it only queues the game; a writer goroutine does the insert.
// A full queue drops the game. Write errors are logged.
type Recorder struct {
	session.NopObserver

	store *Store
	games chan Game
	done  chan struct{}

	mu      sync.Mutex
	closed  bool
	dropped atomic.Uint64
}

var _ session.Observer = (*Recorder)(nil)

// NewRecorder starts the writer. Call Close to drain and stop it.
func NewRecorder(store *Store) *Recorder {
	r := &Recorder{
		store: store,
		games: make(chan Game, RecorderBuffer),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) GameOver(s session.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.games <- FromSummary(s):
	default:
		r.dropped.Add(1)
		r.store.log.Warn().Str("session", s.Session.String()).Int("score", s.Score).Msg("score queue full, game dropped")
	}
}

// Dropped counts games lost to a full queue.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Close stops accepting games and waits until queued ones are written.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.games)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for g := range r.games {
		r.write(g)
	}
}

func (r *Recorder) write(g Game) {
	ctx, cancel := context.WithTimeout(context.Background(), RecordTimeout)
	defer cancel()

	log := r.store.log.With().Str("session", g.Session.String()).Uint64("generation", g.Generation).Logger()
	id, err := r.store.Record(ctx, g)
	switch {
	case errors.Is(err, ErrDuplicate):
		log.Debug().Msg("game already recorded")
	case err != nil:
		log.Error().Err(err).Msg("record game")
	default:
		log.Info().Int64("id", id).Int("score", g.Score).Msg("game recorded")
	}
}

// FromSummary converts a session summary to a storable game.
func FromSummary(s session.Summary) Game {
	return Game{
		Session:    s.Session,
		Generation: s.Generation,
		Score:      s.Score,
		Lines:      s.Lines,
		Level:      s.Level,
		Pieces:     s.Pieces,
		Started:    s.Started,
		Ended:      s.Ended,
	}
}
