package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/plus3/gazetris/metrics"
	"github.com/plus3/gazetris/session"
	"github.com/plus3/gazetris/tetris"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverCounts(t *testing.T) {
	m := metrics.New()
	id := uuid.New()
	state := tetris.State{Score: 200}

	m.ActionApplied(id, tetris.MoveLeft(1), state)
	m.ActionApplied(id, tetris.MoveLeft(3), state)
	m.ActionApplied(id, tetris.Do(tetris.ActionTick), state)
	m.LinesCleared(id, 2, tetris.State{Score: 400})
	m.GameOver(session.Summary{Session: id, Score: 400})

	n, err := testutil.GatherAndCount(m.Registry(), "gazetris_actions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per kind")

	body := scrape(t, m)
	assert.Contains(t, body, `gazetris_actions_total{kind="moveLeft"} 2`)
	assert.Contains(t, body, `gazetris_actions_total{kind="tick"} 1`)
	assert.Contains(t, body, "gazetris_lines_cleared_total 2")
	assert.Contains(t, body, "gazetris_games_over_total 1")
	assert.Contains(t, body, "gazetris_score 400")
	assert.Contains(t, body, "gazetris_final_score_count 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestInstancesAreIndependent(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.GameOver(session.Summary{Score: 100})

	assert.Contains(t, scrape(t, a), "gazetris_games_over_total 1")
	assert.Contains(t, scrape(t, b), "gazetris_games_over_total 0")
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
