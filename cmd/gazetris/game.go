package main

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/ecs"
	"github.com/plus3/gazetris/ecs/debugui"
	debugui_ebiten "github.com/plus3/gazetris/ecs/debugui/ebiten"
	"github.com/rs/zerolog"
)

// Game implements ebiten.Game around one session. Local input is published
// on the bus like any other source, so the session sees it next Step.
type Game struct {
	ctx      context.Context
	svc      *services
	keyboard *keyboard
	pointers *pointers
	keys     keyReader

	imgui  *debugui_ebiten.ImguiBackend
	panels *debugui.Panels
	input  *ecs.Singleton[debugui.ImguiInputState]

	log zerolog.Logger
}

func newGame(ctx context.Context, svc *services, imgui *debugui_ebiten.ImguiBackend, log zerolog.Logger) *Game {
	g := &Game{
		ctx:      ctx,
		svc:      svc,
		keyboard: newKeyboard(),
		pointers: &pointers{pad: control.NewTouchPad(padArea(), 8)},
		keys:     ebitenKeys{},
		imgui:    imgui,
		log:      log,
	}
	if imgui != nil {
		storage := svc.session.Storage()
		g.panels = debugui.Install(svc.session, nil)
		g.panels.Add(
			gamePanel(storage, svc.bus, svc.hub),
			debugui.SchedulerPanel(storage, svc.session.Stats),
			debugui.ResourceInspector(storage),
		)
		g.input = ecs.NewSingleton[debugui.ImguiInputState](storage)
	}
	return g
}

func (g *Game) capture() debugui.ImguiInputState {
	if g.input == nil {
		return debugui.ImguiInputState{}
	}
	if state := g.input.Get(); state != nil {
		return *state
	}
	return debugui.ImguiInputState{}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	capture := g.capture()

	actions, cmd := g.keyboard.update(g.keys, dt, capture.WantCaptureKeyboard)
	actions = append(actions, g.pointers.update(capture.WantCaptureMouse)...)
	for _, a := range actions {
		g.svc.bus.Publish(a)
	}

	switch {
	case cmd.quit:
		return ebiten.Termination
	case cmd.reset:
		g.svc.session.Reset()
	}
	if cmd.toggleDebug && g.panels != nil {
		visible := g.panels.Toggle()
		g.log.Debug().Bool("visible", visible).Msg("debug overlay toggled")
	}

	step := func() { g.svc.session.Step(dt) }
	if g.imgui != nil {
		g.imgui.Frame(step)
	} else {
		step()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.svc.session.Snapshot()
	drawBoard(screen, snap)
	drawHUD(screen, snap, g.svc.hub.Clients())
	drawPad(screen, g.pointers.pad)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(screenWidth, screenHeight)
	}
	return screenWidth, screenHeight
}
