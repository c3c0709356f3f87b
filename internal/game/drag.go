package game

import "math"

// Aim is the feedback indicator drawn while dragging.
type Aim struct {
	Active bool    `json:"active"`
	Length float64 `json:"length"`
	Angle  float64 `json:"angle"` // launch direction, radians with y up
}

// Drag tracks one pointer or touch drag from press to release.
type Drag struct {
	active         bool
	startX, startY float64
	curX, curY     float64
}

func (d *Drag) Begin(x, y float64) {
	d.active = true
	d.startX, d.startY = x, y
	d.curX, d.curY = x, y
}

func (d *Drag) Move(x, y float64) {
	if !d.active {
		return
	}
	d.curX, d.curY = x, y
}

func (d *Drag) Active() bool {
	return d.active
}

// Vector is current minus start. The vertical component is clamped to zero
// or more so the drag can only pull away from the hoop.
func (d *Drag) Vector() (dx, dy float64) {
	dx = d.curX - d.startX
	dy = math.Max(0, d.curY-d.startY)
	return dx, dy
}

func (d *Drag) Distance() float64 {
	return math.Hypot(d.Vector())
}

// LaunchAngle points opposite to the pull, with y up.
func (d *Drag) LaunchAngle() float64 {
	dx, dy := d.Vector()
	return math.Atan2(dy, -dx)
}

func (d *Drag) Aim(maxLength float64) Aim {
	if !d.active {
		return Aim{}
	}
	return Aim{
		Active: true,
		Length: math.Min(d.Distance(), maxLength),
		Angle:  d.LaunchAngle(),
	}
}

// Launch is the velocity and angle a released drag turns into.
type Launch struct {
	Velocity float64
	Angle    float64
}

// End releases the drag. ok is false when the pull was too short to count
// as a shot.
func (d *Drag) End(t Tuning) (l Launch, ok bool) {
	if !d.active {
		return Launch{}, false
	}
	dist := d.Distance()
	angle := d.LaunchAngle()
	d.active = false
	if dist < t.DragThreshold {
		return Launch{}, false
	}
	return Launch{
		Velocity: math.Min(dist*t.VelocityScale, t.MaxVelocity),
		Angle:    angle,
	}, true
}

func (d *Drag) Cancel() {
	*d = Drag{}
}
