package game

import (
	"fmt"
	"math"
)

// MissKind says which way a power shot missed.
type MissKind string

const (
	MissNone  MissKind = ""
	MissShort MissKind = "short"
	MissLong  MissKind = "long"
	MissOut   MissKind = "out"
)

// ShotResult describes one resolved shot.
type ShotResult struct {
	Shot    int      `json:"shot"` // 1-based index of the shot taken
	Made    bool     `json:"made"`
	Power   float64  `json:"power,omitempty"`
	Miss    MissKind `json:"miss,omitempty"`
	Ticks   int      `json:"ticks,omitempty"` // flight length of a drag shot
	Message string   `json:"message"`
}

// Resolve judges a locked-in power value against the sweet spot.
func Resolve(power float64, t Tuning) ShotResult {
	diff := math.Abs(power - t.SweetSpotCenter)
	if diff <= t.SweetSpotTolerance {
		return ShotResult{
			Made:    true,
			Power:   power,
			Message: fmt.Sprintf("SWISH! Power: %.0f%%", power),
		}
	}
	miss := MissLong
	if power < t.SweetSpotCenter {
		miss = MissShort
	}
	return ShotResult{
		Power:   power,
		Miss:    miss,
		Message: fmt.Sprintf("MISS! Too %s. Power: %.0f%%", miss, power),
	}
}

// shotTarget is where the ball flies for a resolved power shot, relative to
// its start: into the hoop on a make, off to the side on a miss.
func shotTarget(r ShotResult, t Tuning) (x, y float64) {
	if r.Made {
		return t.Court.HoopCenter()
	}
	dx := -50.0
	if r.Power > t.SweetSpotCenter {
		dx = 50
	}
	dy := -200 + math.Abs(r.Power-t.SweetSpotCenter)*2
	return t.Court.BallX + dx, t.Court.BallY + dy
}
