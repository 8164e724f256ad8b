package tetris

import (
	"math"
	"time"
)

// Speed derives the gravity period from the score.
type Speed struct {
	Base           time.Duration // period at score 0
	Growth         float64       // multiplier applied per level, below 1 to speed up
	LevelThreshold int           // points per level
	Floor          time.Duration // fastest period allowed
}

func DefaultSpeed() Speed {
	return Speed{
		Base:           800 * time.Millisecond,
		Growth:         0.85,
		LevelThreshold: 500,
		Floor:          100 * time.Millisecond,
	}
}

// Level is 1 at score 0 and rises by one every LevelThreshold points.
func (sp Speed) Level(score int) int {
	if sp.LevelThreshold <= 0 || score < 0 {
		return 1
	}
	return score/sp.LevelThreshold + 1
}

// Interval is max(Base * Growth^floor(score/LevelThreshold), Floor),
// halved while soft drop is held.
func (sp Speed) Interval(score int, softDrop bool) time.Duration {
	period := time.Duration(float64(sp.Base) * math.Pow(sp.Growth, float64(sp.Level(score)-1)))
	if period < sp.Floor {
		period = sp.Floor
	}
	if softDrop {
		period /= 2
	}
	return period
}
