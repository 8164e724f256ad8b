// Command gazetris-stress runs many headless sessions with random input
// and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	sessions := flag.Int("sessions", 8, "The number of concurrent sessions.")
	frame := flag.Duration("frame", 16*time.Millisecond, "The simulated time each step advances.")
	seed := flag.Uint64("seed", 1, "Seed for piece sequences and random input.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log session events.")
	flag.Parse()

	level := zerolog.InfoLevel
	if !*verbose {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	log.Warn().Int("sessions", *sessions).Dur("duration", *duration).Msg("starting stress test")

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report := run(ctx, options{
		Sessions:       *sessions,
		Frame:          *frame,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		Log:            log,
	})
	report.Duration = *duration

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("generate report")
	}
	fmt.Println("--- End of Report ---")
}
