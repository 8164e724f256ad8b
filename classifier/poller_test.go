package classifier_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/gazetris/classifier"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFrames struct {
	err error
}

func (s stubFrames) Frame(context.Context) ([]byte, error) {
	return []byte("frame"), s.err
}

type stubClassifier struct {
	results []classifier.Result
	err     error
	calls   int
}

func (s *stubClassifier) Classify(context.Context, []byte) (classifier.Result, error) {
	s.calls++
	if s.err != nil {
		return classifier.Result{}, s.err
	}
	res := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return res, nil
}

func TestPollerPoll(t *testing.T) {
	bus := control.NewBus(8, zerolog.Nop())
	sub := bus.Subscribe()
	defer sub.Close()

	stub := &stubClassifier{results: []classifier.Result{
		{Direction: control.LookingRight, Intensity: 2},
		{Direction: control.LookingDown, Intensity: 3},
		{Direction: control.LookingUp, Intensity: 1},
	}}
	poller := &classifier.Poller{Source: stubFrames{}, Classifier: stub, Bus: bus, Log: zerolog.Nop()}

	a, ok := poller.Poll(context.Background())
	require.True(t, ok)
	assert.Equal(t, tetris.MoveRight(2), a)

	_, ok = poller.Poll(context.Background())
	assert.False(t, ok, "looking down maps to nothing")

	_, ok = poller.Poll(context.Background())
	assert.True(t, ok)

	got := sub.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, tetris.ActionRotate, got[1].Kind)
}

func TestPollerSwallowsErrors(t *testing.T) {
	bus := control.NewBus(8, zerolog.Nop())
	sub := bus.Subscribe()
	defer sub.Close()

	failing := &stubClassifier{err: errors.New("timeout")}
	poller := &classifier.Poller{Source: stubFrames{}, Classifier: failing, Bus: bus, Log: zerolog.Nop()}
	_, ok := poller.Poll(context.Background())
	assert.False(t, ok)

	noFrame := &classifier.Poller{Source: stubFrames{err: errors.New("camera busy")}, Classifier: failing, Bus: bus, Log: zerolog.Nop()}
	_, ok = noFrame.Poll(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 1, failing.calls, "classifier is not called without a frame")

	assert.Empty(t, sub.Drain())
}

func TestPollerRun(t *testing.T) {
	bus := control.NewBus(64, zerolog.Nop())
	sub := bus.Subscribe()
	defer sub.Close()

	stub := &stubClassifier{results: []classifier.Result{{Direction: control.LookingLeft, Intensity: 1}}}
	poller := &classifier.Poller{
		Source:     stubFrames{},
		Classifier: stub,
		Bus:        bus,
		Interval:   2 * time.Millisecond,
		Log:        zerolog.Nop(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := poller.Run(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotEmpty(t, sub.Drain())
}

func TestFileFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8}, 0o644))

	data, err := classifier.FileFrames{Path: path}.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data)

	_, err = classifier.FileFrames{Path: filepath.Join(t.TempDir(), "missing.jpg")}.Frame(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
