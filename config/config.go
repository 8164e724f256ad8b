// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// ErrInvalid wraps every value that fails to parse.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel  zerolog.Level
	LogFormat string

	HTTPAddr string
	DBPath   string

	ClassifierURL      string
	ClassifierKey      string
	ClassifierInterval time.Duration
	GazeThreshold      float64
	FramePath          string

	ClearDelay time.Duration
	BaseSpeed  time.Duration
	DebugUI    bool
}

// Default is the configuration with no environment set.
func Default() Config {
	return Config{
		LogLevel:           zerolog.InfoLevel,
		LogFormat:          "console",
		HTTPAddr:           ":8088",
		DBPath:             "./data/gazetris.db",
		ClassifierInterval: 500 * time.Millisecond,
		GazeThreshold:      15,
		ClearDelay:         300 * time.Millisecond,
		BaseSpeed:          800 * time.Millisecond,
	}
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, falling back to Default for
// unset variables. A variable set to the empty string disables optional
// endpoints such as GAZETRIS_HTTP_ADDR and GAZETRIS_DB.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	if v, ok := p.get("LOG_LEVEL"); ok {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			p.fail("LOG_LEVEL", v, err)
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := p.get("LOG_FORMAT"); ok {
		switch v {
		case "json", "console":
			cfg.LogFormat = v
		default:
			p.fail("LOG_FORMAT", v, errors.New("want json or console"))
		}
	}

	p.str("GAZETRIS_HTTP_ADDR", &cfg.HTTPAddr)
	p.str("GAZETRIS_DB", &cfg.DBPath)
	p.str("GAZETRIS_CLASSIFIER_URL", &cfg.ClassifierURL)
	p.str("GAZETRIS_CLASSIFIER_KEY", &cfg.ClassifierKey)
	p.str("GAZETRIS_FRAME_PATH", &cfg.FramePath)
	p.duration("GAZETRIS_CLASSIFIER_INTERVAL", &cfg.ClassifierInterval)
	p.duration("GAZETRIS_CLEAR_DELAY", &cfg.ClearDelay)
	p.duration("GAZETRIS_BASE_SPEED", &cfg.BaseSpeed)
	p.float("GAZETRIS_GAZE_THRESHOLD", &cfg.GazeThreshold)
	p.boolean("GAZETRIS_DEBUG_UI", &cfg.DebugUI)

	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

// ClassifierEnabled reports whether gaze control should run.
func (c Config) ClassifierEnabled() bool {
	return c.ClassifierURL != "" && c.FramePath != ""
}

// NewLogger builds the root logger: human-readable unless LogFormat is json.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	if c.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(c.LogLevel).With().Timestamp().Logger()
}

type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	return strings.TrimSpace(v), ok
}

func (p *parser) fail(key, value string, cause error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, value, cause)
	}
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	switch {
	case err != nil:
		p.fail(key, v, err)
	case d <= 0:
		p.fail(key, v, errors.New("must be positive"))
	default:
		*dst = d
	}
}

func (p *parser) float(key string, dst *float64) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	switch {
	case err != nil:
		p.fail(key, v, err)
	case f <= 0:
		p.fail(key, v, errors.New("must be positive"))
	default:
		*dst = f
	}
}

func (p *parser) boolean(key string, dst *bool) {
	v, ok := p.get(key)
	if !ok || v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}
