// Package control turns player input into reducer actions: the action bus
// that carries them, gaze and gesture mapping, and the on-screen touch pad.
package control

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/kamstrup/intmap"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// DefaultBuffer is the per-subscriber queue length used by NewBus when
// given a non-positive size.
const DefaultBuffer = 64

// Bus fans actions out to every subscriber. Publishing never blocks: when a
// subscriber's queue is full the action is dropped for that subscriber.
type Bus struct {
	mu     sync.RWMutex
	subs   *intmap.Map[uint64, *Subscription]
	order  []uint64
	nextId uint64
	buffer int

	published atomic.Uint64
	dropped   atomic.Uint64

	log zerolog.Logger
}

// NewBus creates a bus whose subscribers each buffer up to buffer actions.
func NewBus(buffer int, logger zerolog.Logger) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		subs:   intmap.New[uint64, *Subscription](8),
		buffer: buffer,
		log:    logger.With().Str("component", "bus").Logger(),
	}
}

// Subscription is one consumer's queue on a Bus.
type Subscription struct {
	id      uint64
	bus     *Bus
	ch      chan tetris.Action
	dropped atomic.Uint64
	once    sync.Once
}

// Subscribe registers a new consumer. The caller must Close it when done.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextId++
	sub := &Subscription{
		id:  b.nextId,
		bus: b,
		ch:  make(chan tetris.Action, b.buffer),
	}
	b.subs.Put(sub.id, sub)
	b.order = append(b.order, sub.id)

	b.log.Debug().Uint64("subscriber", sub.id).Msg("subscribed")
	return sub
}

// Publish offers a to every subscriber in subscription order and returns how
// many accepted it.
func (b *Bus) Publish(a tetris.Action) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.published.Add(1)
	delivered := 0
	for _, id := range b.order {
		sub, ok := b.subs.Get(id)
		if !ok {
			continue
		}
		select {
		case sub.ch <- a:
			delivered++
		default:
			sub.dropped.Add(1)
			b.dropped.Add(1)
			b.log.Warn().
				Uint64("subscriber", id).
				Stringer("action", a.Kind).
				Msg("subscriber queue full, action dropped")
		}
	}
	return delivered
}

// Unsubscribe removes sub and closes its channel. It is safe to call more
// than once.
func (b *Bus) Unsubscribe(sub *Subscription) {
	sub.once.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		b.subs.Del(sub.id)
		if i := slices.Index(b.order, sub.id); i >= 0 {
			b.order = slices.Delete(b.order, i, i+1)
		}
		close(sub.ch)
		b.log.Debug().Uint64("subscriber", sub.id).Msg("unsubscribed")
	})
}

// Subscribers is the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Published counts Publish calls.
func (b *Bus) Published() uint64 { return b.published.Load() }

// Dropped counts deliveries refused because a queue was full.
func (b *Bus) Dropped() uint64 { return b.dropped.Load() }

// C is the receive side of the subscription. It is closed on Close.
func (s *Subscription) C() <-chan tetris.Action { return s.ch }

// Dropped counts actions this subscriber missed.
func (s *Subscription) Dropped() uint64 { return s.dropped.Load() }

// Close unsubscribes from the bus.
func (s *Subscription) Close() { s.bus.Unsubscribe(s) }

// Drain returns every queued action without blocking.
func (s *Subscription) Drain() []tetris.Action {
	var out []tetris.Action
	for {
		select {
		case a, ok := <-s.ch:
			if !ok {
				return out
			}
			out = append(out, a)
		default:
			return out
		}
	}
}
