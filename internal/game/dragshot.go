package game

import "time"

const (
	dragPrompt = "Drag back and release to shoot"
	dragAiming = "Release to shoot!"
)

// DragGame is the slingshot variant: pull back from the ball, release to
// launch it along a parabola.
type DragGame struct {
	tuning   Tuning
	hooks    Hooks
	timeline Timeline
	session  *Session

	drag Drag
	proj *Projectile
	ball BallState
	tick uint32
}

func NewDragGame(t Tuning, hooks Hooks) *DragGame {
	g := &DragGame{tuning: t, hooks: hooks}
	g.session = newSession(t, hooks, &g.timeline, dragPrompt, g.resetShot)
	g.resetShot()
	return g
}

func (g *DragGame) Mode() Mode { return ModeDrag }

func (g *DragGame) Session() *Session { return g.session }

func (g *DragGame) Handle(in Input) {
	s := g.session
	switch in.Kind {
	case InputPointerDown:
		if !s.canAim() {
			return
		}
		g.drag.Begin(in.X, in.Y)
		s.phase = PhaseAiming
		s.message = dragAiming
	case InputPointerMove:
		if s.phase == PhaseAiming {
			g.drag.Move(in.X, in.Y)
		}
	case InputPointerUp:
		if s.phase == PhaseAiming {
			g.release()
		}
	case InputRestart:
		g.Restart()
	}
}

func (g *DragGame) release() {
	launch, ok := g.drag.End(g.tuning)
	if !ok {
		g.session.cancel()
		return
	}
	c := g.tuning.Court
	g.proj = NewProjectile(c.BallX, c.BallY, launch.Velocity, launch.Angle)
	g.ball.InFlight = true
	g.session.phase = PhaseResolving
	g.session.message = ""
}

// Tick advances the ball one step, then fires due timers.
func (g *DragGame) Tick(dt time.Duration) {
	g.tick++
	if g.proj != nil {
		st := g.proj.Step(g.tuning.Gravity, g.tuning.Court)
		g.ball.X, g.ball.Y = g.proj.X, g.proj.Y
		if st != InFlight {
			g.land(st)
		}
	}
	g.timeline.Advance(dt)
}

func (g *DragGame) land(st FlightState) {
	r := ShotResult{
		Made:    st == Scored,
		Ticks:   g.proj.T,
		Message: "SWISH!",
	}
	if !r.Made {
		r.Miss = MissOut
		r.Message = "MISS!"
	}
	g.proj = nil
	g.ball.InFlight = false
	g.session.record(r)
}

func (g *DragGame) resetShot() {
	g.drag.Cancel()
	g.proj = nil
	g.ball = BallState{X: g.tuning.Court.BallX, Y: g.tuning.Court.BallY}
}

func (g *DragGame) Restart() {
	if g.session.phase != PhaseEnded {
		return
	}
	g.timeline.Clear()
	g.session = newSession(g.tuning, g.hooks, &g.timeline, dragPrompt, g.resetShot)
	g.resetShot()
}

func (g *DragGame) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: g.tick,
		Mode: ModeDrag,
		Ball: g.ball,
		Aim:  g.drag.Aim(g.tuning.MaxAimLength),
	}
	g.session.fill(&snap)
	return snap
}
