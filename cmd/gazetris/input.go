package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/gazetris/control"
	"github.com/plus3/gazetris/tetris"
)

const (
	repeatDelay = 170 * time.Millisecond
	repeatRate  = 50 * time.Millisecond

	mouseTouchID = -1
)

// keyReader is the slice of ebiten's keyboard API the controls need.
type keyReader interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// repeat turns a held key into moves: one on press, then one every rate
// once the key has been held for delay.
type repeat struct {
	delay, rate time.Duration
	held        time.Duration
	down        bool
}

func (r *repeat) update(down bool, dt time.Duration) bool {
	if !down {
		r.down = false
		r.held = 0
		return false
	}
	if !r.down {
		r.down = true
		r.held = 0
		return true
	}
	r.held += dt
	if r.held > r.delay {
		r.held -= r.rate
		return true
	}
	return false
}

// hostCommands are key presses handled by the frontend instead of the bus.
type hostCommands struct {
	quit        bool
	reset       bool
	toggleDebug bool
}

type keyboard struct {
	left, right repeat
}

func newKeyboard() *keyboard {
	return &keyboard{
		left:  repeat{delay: repeatDelay, rate: repeatRate},
		right: repeat{delay: repeatDelay, rate: repeatRate},
	}
}

// update reads one frame of keys. When capture is set ImGui owns the
// keyboard and only the overlay toggle is honoured.
func (k *keyboard) update(keys keyReader, dt time.Duration, capture bool) ([]tetris.Action, hostCommands) {
	var cmd hostCommands
	cmd.toggleDebug = keys.JustPressed(ebiten.KeyF1)
	if capture {
		k.left.update(false, dt)
		k.right.update(false, dt)
		return nil, cmd
	}

	cmd.quit = keys.JustPressed(ebiten.KeyEscape) || keys.JustPressed(ebiten.KeyQ)
	cmd.reset = keys.JustPressed(ebiten.KeyR)

	var actions []tetris.Action
	if k.left.update(keys.Pressed(ebiten.KeyArrowLeft), dt) {
		actions = append(actions, tetris.MoveLeft(1))
	}
	if k.right.update(keys.Pressed(ebiten.KeyArrowRight), dt) {
		actions = append(actions, tetris.MoveRight(1))
	}
	if keys.JustPressed(ebiten.KeyArrowUp) || keys.JustPressed(ebiten.KeyZ) {
		actions = append(actions, tetris.Do(tetris.ActionRotate))
	}
	if keys.JustPressed(ebiten.KeyArrowDown) {
		actions = append(actions, tetris.Do(tetris.ActionSoftDropStart))
	}
	if keys.JustReleased(ebiten.KeyArrowDown) {
		actions = append(actions, tetris.Do(tetris.ActionSoftDropEnd))
	}
	if keys.JustPressed(ebiten.KeySpace) {
		actions = append(actions, tetris.Do(tetris.ActionHardDrop))
	}
	return actions, cmd
}

// pointers feeds touches and the left mouse button into the touch pad.
type pointers struct {
	pad     *control.TouchPad
	touches []ebiten.TouchID
}

func (p *pointers) update(capture bool) []tetris.Action {
	var actions []tetris.Action
	emit := func(a tetris.Action, ok bool) {
		if ok {
			actions = append(actions, a)
		}
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		emit(p.pad.Press(int(id), float64(x), float64(y)))
		p.touches = append(p.touches, id)
	}
	kept := p.touches[:0]
	for _, id := range p.touches {
		if inpututil.IsTouchJustReleased(id) {
			emit(p.pad.Release(int(id)))
			continue
		}
		kept = append(kept, id)
	}
	p.touches = kept

	if !capture && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		emit(p.pad.Press(mouseTouchID, float64(x), float64(y)))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		emit(p.pad.Release(mouseTouchID))
	}
	return actions
}
