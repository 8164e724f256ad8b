// Command gazetris runs the game in a window. Keyboard, touch, remote
// websocket players and the optional gaze classifier all drive the same
// session through the action bus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gazetris/config"
	debugui_ebiten "github.com/plus3/gazetris/ecs/debugui/ebiten"
	"github.com/rs/zerolog"
)

const title = "gazetris"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := cfg.NewLogger(os.Stderr)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("gazetris exited")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(cfg, log)
	if err != nil {
		return err
	}
	bg, cancel := context.WithCancel(ctx)
	svc.start(bg)
	defer func() {
		cancel()
		svc.close()
	}()

	var backend *debugui_ebiten.ImguiBackend
	if cfg.DebugUI {
		backend = debugui_ebiten.NewImguiBackend(title, screenWidth, screenHeight)
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info().
		Str("session", svc.session.ID.String()).
		Str("http", cfg.HTTPAddr).
		Bool("classifier", cfg.ClassifierEnabled()).
		Bool("debug_ui", cfg.DebugUI).
		Msg("starting")

	return ebiten.RunGame(newGame(ctx, svc, backend, log))
}
