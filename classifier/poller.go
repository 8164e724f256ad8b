package classifier

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// FrameSource yields camera frames.
type FrameSource interface {
	Frame(ctx context.Context) ([]byte, error)
}

// FileFrames serves the same still image from disk on every call. The file
// is re-read each time so an external capture tool can overwrite it.
type FileFrames struct {
	Path string
}

func (f FileFrames) Frame(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return data, nil
}

// Classifier is satisfied by *Client.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Result, error)
}

// Publisher is satisfied by *control.Bus.
type Publisher interface {
	Publish(a tetris.Action) int
}

// Poller classifies a frame every Interval and publishes the resulting
// action. Failures are logged and skipped; the next cycle starts fresh.
type Poller struct {
	Source     FrameSource
	Classifier Classifier
	Bus        Publisher
	Interval   time.Duration
	Log        zerolog.Logger
}

// Poll runs one cycle and reports the action it published, if any.
func (p *Poller) Poll(ctx context.Context) (tetris.Action, bool) {
	frame, err := p.Source.Frame(ctx)
	if err != nil {
		p.Log.Warn().Err(err).Msg("frame unavailable")
		return tetris.Action{}, false
	}

	res, err := p.Classifier.Classify(ctx, frame)
	if err != nil {
		p.Log.Warn().Err(err).Msg("classification failed")
		return tetris.Action{}, false
	}

	action, ok := control.ActionFor(res.Direction, res.Intensity)
	if !ok {
		p.Log.Debug().Str("direction", string(res.Direction)).Msg("no action")
		return tetris.Action{}, false
	}

	p.Bus.Publish(action)
	p.Log.Debug().
		Str("direction", string(res.Direction)).
		Stringer("action", action.Kind).
		Int("intensity", action.Intensity).
		Msg("gesture published")
	return action, true
}

// Run polls until ctx is cancelled and returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.Log.Info().Dur("interval", interval).Msg("classifier poller started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}
