package main

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

type options struct {
	Sessions       int
	Frame          time.Duration
	Seed           uint64
	GCPauseMetrics bool
	Log            zerolog.Logger
}

// tally counts game events across every session.
type tally struct {
	session.NopObserver

	games     atomic.Int64
	lines     atomic.Int64
	bestScore atomic.Int64
}

func (t *tally) LinesCleared(_ uuid.UUID, rows int, _ tetris.State) {
	t.lines.Add(int64(rows))
}

func (t *tally) GameOver(s session.Summary) {
	t.games.Add(1)
	for {
		best := t.bestScore.Load()
		if int64(s.Score) <= best || t.bestScore.CompareAndSwap(best, int64(s.Score)) {
			return
		}
	}
}

var inputs = []tetris.ActionKind{
	tetris.ActionMoveLeft,
	tetris.ActionMoveRight,
	tetris.ActionRotate,
	tetris.ActionSoftDropStart,
	tetris.ActionSoftDropEnd,
	tetris.ActionHardDrop,
}

// randomAction picks a controllable action, or reports false for a frame
// without input.
func randomAction(rng *rand.Rand) (tetris.Action, bool) {
	n := rng.IntN(len(inputs) * 2)
	if n >= len(inputs) {
		return tetris.Action{}, false
	}
	kind := inputs[n]
	a := tetris.Do(kind)
	if kind == tetris.ActionMoveLeft || kind == tetris.ActionMoveRight {
		a.Intensity = rng.IntN(control.MaxIntensity) + 1
	}
	return a, true
}

// run steps opts.Sessions sessions until ctx is done. Input goes through a
// bus per session; finished games are reset.
func run(ctx context.Context, opts options) *Report {
	if opts.Sessions <= 0 {
		opts.Sessions = 1
	}
	if opts.Frame <= 0 {
		opts.Frame = 16 * time.Millisecond
	}

	counts := &tally{}
	report := &Report{
		Sessions:       opts.Sessions,
		Frame:          opts.Frame,
		GCPauseMetrics: opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	samples := make([][]time.Duration, opts.Sessions)
	var wg sync.WaitGroup
	start := time.Now()

	for i := range opts.Sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			samples[i] = runSession(ctx, opts, uint64(i), counts)
		}()
	}
	wg.Wait()

	report.TotalTime = time.Since(start)
	for _, s := range samples {
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, s...)
	}
	report.TotalUpdates = int64(len(report.UpdateTime.Samples))
	report.UpdateTime.Finalize()
	report.Games = counts.games.Load()
	report.Lines = counts.lines.Load()
	report.BestScore = counts.bestScore.Load()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report
}

func runSession(ctx context.Context, opts options, index uint64, counts *tally) []time.Duration {
	bus := control.NewBus(control.DefaultBuffer, opts.Log)
	s := session.New(session.Options{
		Seed:      opts.Seed + index + 1,
		Bus:       bus,
		Observers: []session.Observer{counts},
		Log:       opts.Log,
	})
	defer s.Close()

	rng := rand.New(rand.NewPCG(opts.Seed, index))
	var samples []time.Duration
	for ctx.Err() == nil {
		if a, ok := randomAction(rng); ok {
			bus.Publish(a)
		}
		if s.State().GameOver {
			s.Reset()
		}

		stepStart := time.Now()
		s.Step(opts.Frame)
		samples = append(samples, time.Since(stepStart))
	}
	return samples
}
