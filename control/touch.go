package control

import "github.com/plus3/gazetris/tetris"

// Button is one control on the touch pad.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonRotate
	ButtonSoftDrop
	ButtonHardDrop
)

var buttonLabels = [...]string{"<", ">", "R", "v", "V"}

// Label is the glyph drawn on the button.
func (b Button) Label() string {
	if b < 0 || int(b) >= len(buttonLabels) {
		return "?"
	}
	return buttonLabels[b]
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PadButton is a placed button.
type PadButton struct {
	Button Button
	Bounds Rect
}

// TouchPad lays out the five game buttons in a row and tracks which touch
// holds which button.
type TouchPad struct {
	buttons []PadButton
	held    map[int]Button
}

// NewTouchPad lays the buttons out left to right inside area, separated by gap.
func NewTouchPad(area Rect, gap float64) *TouchPad {
	order := []Button{ButtonLeft, ButtonRight, ButtonRotate, ButtonSoftDrop, ButtonHardDrop}
	w := (area.W - gap*float64(len(order)-1)) / float64(len(order))

	pad := &TouchPad{held: make(map[int]Button)}
	for i, b := range order {
		pad.buttons = append(pad.buttons, PadButton{
			Button: b,
			Bounds: Rect{X: area.X + float64(i)*(w+gap), Y: area.Y, W: w, H: area.H},
		})
	}
	return pad
}

func (p *TouchPad) Buttons() []PadButton { return p.buttons }

// HitTest finds the button under (x, y).
func (p *TouchPad) HitTest(x, y float64) (Button, bool) {
	for _, pb := range p.buttons {
		if pb.Bounds.Contains(x, y) {
			return pb.Button, true
		}
	}
	return 0, false
}

// Press records touch id at (x, y) and returns the action for the button
// under it. A touch that already holds a button is ignored.
func (p *TouchPad) Press(id int, x, y float64) (tetris.Action, bool) {
	if _, ok := p.held[id]; ok {
		return tetris.Action{}, false
	}
	b, ok := p.HitTest(x, y)
	if !ok {
		return tetris.Action{}, false
	}
	p.held[id] = b

	switch b {
	case ButtonLeft:
		return tetris.MoveLeft(1), true
	case ButtonRight:
		return tetris.MoveRight(1), true
	case ButtonRotate:
		return tetris.Do(tetris.ActionRotate), true
	case ButtonSoftDrop:
		return tetris.Do(tetris.ActionSoftDropStart), true
	case ButtonHardDrop:
		return tetris.Do(tetris.ActionHardDrop), true
	}
	return tetris.Action{}, false
}

// Release ends touch id. Lifting the soft drop button ends the soft drop;
// other buttons produce nothing on release.
func (p *TouchPad) Release(id int) (tetris.Action, bool) {
	b, ok := p.held[id]
	if !ok {
		return tetris.Action{}, false
	}
	delete(p.held, id)
	if b == ButtonSoftDrop {
		return tetris.Do(tetris.ActionSoftDropEnd), true
	}
	return tetris.Action{}, false
}

// Held reports whether any touch is holding b.
func (p *TouchPad) Held(b Button) bool {
	for _, h := range p.held {
		if h == b {
			return true
		}
	}
	return false
}
