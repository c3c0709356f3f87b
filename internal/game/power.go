package game

import "time"

const (
	powerPrompt = "Press SPACE to Start"
	powerAiming = "Press SPACE to Shoot!"
)

// tween moves the ball between two points over a fixed duration.
type tween struct {
	fromX, fromY float64
	toX, toY     float64
	elapsed      time.Duration
	duration     time.Duration
}

func (tw *tween) advance(dt time.Duration) (x, y float64, done bool) {
	tw.elapsed += dt
	if tw.duration <= 0 || tw.elapsed >= tw.duration {
		return tw.toX, tw.toY, true
	}
	k := easeOut(float64(tw.elapsed) / float64(tw.duration))
	return lerp(tw.fromX, tw.toX, k), lerp(tw.fromY, tw.toY, k), false
}

// PowerGame is the power-meter variant: Space starts the meter, Space again
// locks the value in and shoots.
type PowerGame struct {
	tuning   Tuning
	hooks    Hooks
	timeline Timeline
	session  *Session

	osc      *Oscillator
	charging bool
	ball     BallState
	flight   *tween
	tick     uint32
}

func NewPowerGame(t Tuning, hooks Hooks) *PowerGame {
	g := &PowerGame{
		tuning: t,
		hooks:  hooks,
		osc:    NewOscillator(t.PowerSpeed),
	}
	g.session = newSession(t, hooks, &g.timeline, powerPrompt, g.resetShot)
	g.resetShot()
	return g
}

func (g *PowerGame) Mode() Mode { return ModePower }

func (g *PowerGame) Session() *Session { return g.session }

func (g *PowerGame) Handle(in Input) {
	switch in.Kind {
	case InputKey:
		g.pressKey()
	case InputRestart:
		g.Restart()
	}
}

func (g *PowerGame) pressKey() {
	s := g.session
	if !s.Active() {
		return
	}
	switch s.phase {
	case PhaseIdle:
		g.charging = true
		s.phase = PhaseAiming
		s.message = powerAiming
		// the meter moves on the same frame the key goes down
		g.osc.Step()
	case PhaseAiming:
		g.charging = false
		g.shoot(g.osc.Value())
	}
}

func (g *PowerGame) shoot(power float64) {
	r := Resolve(power, g.tuning)
	tx, ty := shotTarget(r, g.tuning)
	g.flight = &tween{
		fromX:    g.tuning.Court.BallX,
		fromY:    g.tuning.Court.BallY,
		toX:      tx,
		toY:      ty,
		duration: g.tuning.ShotAnimDuration,
	}
	g.ball.InFlight = true
	g.session.record(r)
}

// Tick runs one frame: meter, ball animation, then due timers.
func (g *PowerGame) Tick(dt time.Duration) {
	g.tick++
	if g.charging {
		g.osc.Step()
	}
	if g.flight != nil {
		x, y, done := g.flight.advance(dt)
		g.ball.X, g.ball.Y = x, y
		if done {
			g.flight = nil
			g.ball.InFlight = false
		}
	}
	g.timeline.Advance(dt)
}

func (g *PowerGame) resetShot() {
	g.charging = false
	g.osc.Reset()
	g.flight = nil
	g.ball = BallState{X: g.tuning.Court.BallX, Y: g.tuning.Court.BallY}
}

// Restart starts a fresh session once the current one has ended.
func (g *PowerGame) Restart() {
	if g.session.phase != PhaseEnded {
		return
	}
	g.timeline.Clear()
	g.session = newSession(g.tuning, g.hooks, &g.timeline, powerPrompt, g.resetShot)
	g.resetShot()
}

func (g *PowerGame) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: g.tick,
		Mode: ModePower,
		Ball: g.ball,
		Power: PowerState{
			Charging: g.charging,
		},
	}
	if g.charging {
		snap.Power.Value = g.osc.Value()
		snap.Power.Tier = g.osc.Tier()
	}
	g.session.fill(&snap)
	return snap
}
