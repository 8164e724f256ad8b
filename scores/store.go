// Package scores keeps finished games in SQLite.
package scores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultLimit is used by Top when limit is not positive.
const DefaultLimit = 10

var (
	ErrNotFound  = errors.New("scores: no games recorded")
	ErrDuplicate = errors.New("scores: game already recorded")
)

// Game is one finished game.
type Game struct {
	ID         int64     `json:"id"`
	Session    uuid.UUID `json:"session"`
	Generation uint64    `json:"generation"`
	Score      int       `json:"score"`
	Lines      int       `json:"lines"`
	Level      int       `json:"level"`
	Pieces     int       `json:"pieces"`
	Started    time.Time `json:"started"`
	Ended      time.Time `json:"ended"`
}

type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens or creates the database at path and applies pending
// migrations. Parent directories are created as needed.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "scores").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		name := strings.TrimPrefix(f, "migrations/")

		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			s.log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		text, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(text)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		s.log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// Record stores g and returns its row id. Recording the same session and
// generation twice keeps the first row and returns ErrDuplicate.
func (s *Store) Record(ctx context.Context, g Game) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (session, generation, score, lines, level, pieces, started_ms, ended_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Session.String(), int64(g.Generation), g.Score, g.Lines, g.Level, g.Pieces,
		g.Started.UnixMilli(), g.Ended.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	if n == 0 {
		return 0, ErrDuplicate
	}
	return res.LastInsertId()
}

// Top returns up to limit games ordered by score, then lines, then the
// earlier finish.
func (s *Store) Top(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, session, generation, score, lines, level, pieces, started_ms, ended_ms
        FROM games
        ORDER BY score DESC, lines DESC, ended_ms ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Game, 0, limit)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Best is the highest scoring game, or ErrNotFound.
func (s *Store) Best(ctx context.Context) (Game, error) {
	top, err := s.Top(ctx, 1)
	if err != nil {
		return Game{}, err
	}
	if len(top) == 0 {
		return Game{}, ErrNotFound
	}
	return top[0], nil
}

// Count is the number of recorded games.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games`).Scan(&n)
	return n, err
}

func scanGame(rows *sql.Rows) (Game, error) {
	var (
		g                  Game
		session            string
		generation         int64
		startedMs, endedMs int64
	)
	if err := rows.Scan(&g.ID, &session, &generation, &g.Score, &g.Lines, &g.Level, &g.Pieces, &startedMs, &endedMs); err != nil {
		return Game{}, err
	}
	id, err := uuid.Parse(session)
	if err != nil {
		return Game{}, fmt.Errorf("game %d: %w", g.ID, err)
	}
	g.Session = id
	g.Generation = uint64(generation)
	g.Started = time.UnixMilli(startedMs).UTC()
	g.Ended = time.UnixMilli(endedMs).UTC()
	return g, nil
}
