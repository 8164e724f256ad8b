// Package metrics exposes game counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple instances do not
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	actions      *prometheus.CounterVec
	linesCleared prometheus.Counter
	gamesOver    prometheus.Counter
	score        prometheus.Gauge
	finalScore   prometheus.Histogram
}

var _ session.Observer = (*Metrics)(nil)

// New registers the game collectors plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gazetris_actions_total",
			Help: "Actions applied by the reducer, by kind.",
		}, []string{"kind"}),
		linesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gazetris_lines_cleared_total",
			Help: "Rows removed by committed line clears.",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gazetris_games_over_total",
			Help: "Games that reached game over.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gazetris_score",
			Help: "Score of the most recently updated game.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gazetris_final_score",
			Help:    "Score at game over.",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.actions,
		m.linesCleared,
		m.gamesOver,
		m.score,
		m.finalScore,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry is the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ActionApplied(_ uuid.UUID, a tetris.Action, s tetris.State) {
	m.actions.WithLabelValues(a.Kind.String()).Inc()
	m.score.Set(float64(s.Score))
}

func (m *Metrics) LinesCleared(_ uuid.UUID, rows int, s tetris.State) {
	m.linesCleared.Add(float64(rows))
	m.score.Set(float64(s.Score))
}

func (m *Metrics) GameOver(summary session.Summary) {
	m.gamesOver.Inc()
	m.finalScore.Observe(float64(summary.Score))
}
