package main

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/plus3/gazetris/classifier"
	"github.com/plus3/gazetris/config"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/metrics"
	"github.com/plus3/gazetris/remote"
	"github.com/plus3/gazetris/scores"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
	"github.com/rs/zerolog"
)

// services is everything around the game loop: input bus, observers and
// the optional HTTP and classifier background workers.
type services struct {
	bus      *control.Bus
	metrics  *metrics.Metrics
	store    *scores.Store
	recorder *scores.Recorder
	hub      *remote.Hub
	session  *session.Session
	server   *remote.Server
	poller   *classifier.Poller

	cfg config.Config
	log zerolog.Logger
	wg  sync.WaitGroup
}

func newServices(cfg config.Config, log zerolog.Logger) (*services, error) {
	s := &services{
		bus:     control.NewBus(control.DefaultBuffer, log),
		metrics: metrics.New(),
		cfg:     cfg,
		log:     log,
	}
	s.hub = remote.NewHub(s.bus, log)

	observers := []session.Observer{s.metrics, s.hub}
	if cfg.DBPath != "" {
		store, err := scores.Open(cfg.DBPath, log)
		if err != nil {
			return nil, err
		}
		s.store = store
		s.recorder = scores.NewRecorder(store)
		observers = append(observers, s.recorder)
	}

	speed := tetris.DefaultSpeed()
	speed.Base = cfg.BaseSpeed
	s.session = session.New(session.Options{
		Speed:      speed,
		ClearDelay: cfg.ClearDelay,
		Bus:        s.bus,
		Observers:  observers,
		Log:        log,
	})

	if cfg.HTTPAddr != "" {
		opts := remote.Options{
			Hub:     s.hub,
			Metrics: s.metrics.Handler(),
			Log:     log,
		}
		if s.store != nil {
			opts.Scores = s.store
		}
		s.server = remote.New(opts)
	}

	if cfg.ClassifierEnabled() {
		s.poller = &classifier.Poller{
			Source:     classifier.FileFrames{Path: cfg.FramePath},
			Classifier: classifier.NewClient(cfg.ClassifierURL, cfg.ClassifierKey, control.UniformThresholds(cfg.GazeThreshold)),
			Bus:        s.bus,
			Interval:   cfg.ClassifierInterval,
			Log:        log.With().Str("component", "classifier").Logger(),
		}
	}
	return s, nil
}

// start launches the background workers. They stop when ctx is done.
func (s *services) start(ctx context.Context) {
	if s.server != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.server.ListenAndServe(ctx, s.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.log.Error().Err(err).Msg("http server")
			}
		}()
	}
	if s.poller != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error().Err(err).Msg("classifier poller")
			}
		}()
	}
}

// close waits for the workers, then closes the session, drains pending
// score writes and closes the store.
func (s *services) close() {
	s.wg.Wait()
	s.session.Close()
	s.hub.Close()
	if s.recorder != nil {
		s.recorder.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close score store")
		}
	}
}
