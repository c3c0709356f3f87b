package game

import "math"

// FlightState is where a projectile stands after a step.
type FlightState uint8

const (
	InFlight FlightState = iota
	Scored
	OutOfBounds
)

// Projectile is a ball launched with a fixed speed and angle. Positions are
// evaluated at integer ticks from the launch point; gravity is a fixed
// per-tick constant rather than elapsed wall time.
type Projectile struct {
	X0, Y0   float64
	Velocity float64
	Angle    float64 // radians, measured with y up

	X, Y float64
	T    int
}

func NewProjectile(x0, y0, velocity, angle float64) *Projectile {
	return &Projectile{
		X0:       x0,
		Y0:       y0,
		Velocity: velocity,
		Angle:    angle,
		X:        x0,
		Y:        y0,
	}
}

// Step advances one tick and reports whether the flight is over.
// The hoop check runs before the bounds check.
func (p *Projectile) Step(g float64, c Court) FlightState {
	p.T++
	t := float64(p.T)
	p.X = p.X0 + p.Velocity*math.Cos(p.Angle)*t
	p.Y = p.Y0 - (p.Velocity*math.Sin(p.Angle)*t - g*t*t)

	if p.X >= c.HoopMinX && p.X <= c.HoopMaxX && p.Y >= c.RimMinY && p.Y <= c.RimMaxY {
		return Scored
	}
	if !c.contains(p.X, p.Y) {
		return OutOfBounds
	}
	return InFlight
}
