package control

import (
	"math"

	"github.com/plus3/gazetris/tetris"
)

// Direction is a classified head or gaze pose.
type Direction string

const (
	LookingLeft  Direction = "looking_left"
	LookingRight Direction = "looking_right"
	LookingUp    Direction = "looking_up"
	LookingDown  Direction = "looking_down"
	Center       Direction = "center"
)

// ParseDirection accepts the classifier's labels. Anything unrecognised,
// including the "unknown-*" labels some models emit, reads as Center.
func ParseDirection(label string) Direction {
	switch d := Direction(label); d {
	case LookingLeft, LookingRight, LookingUp, LookingDown:
		return d
	}
	return Center
}

// PitchCorrection is added to every pitch sample. Players hold phones below
// eye level, so a neutral pose reads as looking down.
const PitchCorrection = 10.0

// MaxIntensity is the largest step count a gesture can request.
const MaxIntensity = 3

// Thresholds are the angles, in degrees, a pose must exceed per direction.
type Thresholds struct {
	Left  float64
	Right float64
	Up    float64
	Down  float64
}

// UniformThresholds uses the same angle for every direction.
func UniformThresholds(deg float64) Thresholds {
	return Thresholds{Left: deg, Right: deg, Up: deg, Down: deg}
}

// Gaze is a classified pose with the angle that triggered it.
type Gaze struct {
	Direction Direction
	Deviation float64 // absolute angle along the triggering axis
	Threshold float64 // threshold that was exceeded
}

// Intensity maps the pose to a step count, or 0 for Center.
func (g Gaze) Intensity() int {
	if g.Direction == Center {
		return 0
	}
	return Intensity(RawIntensity(g.Deviation, g.Threshold))
}

// GazeDirection classifies yaw and pitch angles in degrees. Yaw is checked
// before pitch; positive yaw is right and positive pitch is up.
func GazeDirection(yaw, pitch float64, th Thresholds) Gaze {
	pitch += PitchCorrection

	switch {
	case yaw > 0 && yaw > th.Right:
		return Gaze{Direction: LookingRight, Deviation: yaw, Threshold: th.Right}
	case yaw < 0 && yaw < -th.Left:
		return Gaze{Direction: LookingLeft, Deviation: -yaw, Threshold: th.Left}
	case pitch > 0 && pitch > th.Up:
		return Gaze{Direction: LookingUp, Deviation: pitch, Threshold: th.Up}
	case pitch < 0 && pitch < -th.Down:
		return Gaze{Direction: LookingDown, Deviation: -pitch, Threshold: th.Down}
	}
	return Gaze{Direction: Center}
}

// RawIntensity is how far past its threshold a deviation is, in multiples
// of the threshold.
func RawIntensity(deviation, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return (deviation - threshold) / threshold
}

// Intensity buckets a raw intensity into 1..MaxIntensity.
func Intensity(raw float64) int {
	if math.IsNaN(raw) {
		return 1
	}
	steps := math.Ceil(raw * MaxIntensity)
	switch {
	case steps < 1:
		return 1
	case steps > MaxIntensity:
		return MaxIntensity
	}
	return int(steps)
}

// ActionFor maps a direction to a reducer action. Looking down and Center
// produce none.
func ActionFor(d Direction, intensity int) (tetris.Action, bool) {
	switch d {
	case LookingLeft:
		return tetris.MoveLeft(intensity), true
	case LookingRight:
		return tetris.MoveRight(intensity), true
	case LookingUp:
		return tetris.Do(tetris.ActionRotate), true
	}
	return tetris.Action{}, false
}
