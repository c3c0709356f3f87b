package game

import (
	"math"
	"testing"
)

func dragShot(g *DragGame, x0, y0, x1, y1 float64) {
	g.Handle(Input{Kind: InputPointerDown, X: x0, Y: y0})
	g.Handle(Input{Kind: InputPointerMove, X: (x0 + x1) / 2, Y: (y0 + y1) / 2})
	g.Handle(Input{Kind: InputPointerMove, X: x1, Y: y1})
	g.Handle(Input{Kind: InputPointerUp})
}

// fly ticks until the ball lands or the tick budget runs out.
func fly(t *testing.T, g *DragGame) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		g.Tick(DT)
		if g.proj == nil {
			return
		}
	}
	t.Fatalf("ball still in flight after 1000 ticks")
}

func TestDragBelowThresholdCancels(t *testing.T) {
	cancels := 0
	g := NewDragGame(DefaultTuning(), Hooks{OnCancel: func() { cancels++ }})
	dragShot(g, 200, 500, 203, 502)

	s := g.Snapshot()
	if s.Phase != PhaseIdle || s.Score != 0 || s.ShotCount != 1 || s.LastShot != nil {
		t.Fatalf("short drag recorded a shot: %+v", s)
	}
	if s.Ball.InFlight || s.Aim.Active {
		t.Fatalf("short drag left ball or aim live: %+v", s)
	}
	if cancels != 1 {
		t.Fatalf("cancels = %d, want 1", cancels)
	}
}

func TestDragStraightUpScores(t *testing.T) {
	g := NewDragGame(DefaultTuning(), Hooks{})
	dragShot(g, 200, 500, 200, 640)

	if s := g.Snapshot(); s.Phase != PhaseResolving || !s.Ball.InFlight {
		t.Fatalf("after release: %+v", s)
	}
	fly(t, g)

	s := g.Snapshot()
	if s.Score != 1 || s.ShotCount != 2 {
		t.Fatalf("score=%d shot=%d, want 1 and 2", s.Score, s.ShotCount)
	}
	if !s.LastShot.Made || s.LastShot.Ticks == 0 {
		t.Fatalf("last shot = %+v", s.LastShot)
	}
}

func TestDragSidewaysMisses(t *testing.T) {
	g := NewDragGame(DefaultTuning(), Hooks{})
	dragShot(g, 200, 500, 300, 520)
	fly(t, g)

	s := g.Snapshot()
	if s.Score != 0 || s.ShotCount != 2 {
		t.Fatalf("score=%d shot=%d, want 0 and 2", s.Score, s.ShotCount)
	}
	if s.LastShot.Made || s.LastShot.Miss != MissOut {
		t.Fatalf("last shot = %+v", s.LastShot)
	}
}

func TestDragForwardIsClamped(t *testing.T) {
	g := NewDragGame(DefaultTuning(), Hooks{})
	g.Handle(Input{Kind: InputPointerDown, X: 200, Y: 500})
	g.Handle(Input{Kind: InputPointerMove, X: 200, Y: 300})

	if a := g.Snapshot().Aim; !a.Active || a.Length != 0 {
		t.Fatalf("aim = %+v, want active with zero length", a)
	}
	g.Handle(Input{Kind: InputPointerUp})
	if s := g.Snapshot(); s.Phase != PhaseIdle || s.ShotCount != 1 {
		t.Fatalf("forward drag took a shot: %+v", s)
	}
}

func TestDragAimIndicator(t *testing.T) {
	tun := DefaultTuning()
	g := NewDragGame(tun, Hooks{})
	g.Handle(Input{Kind: InputPointerDown, X: 100, Y: 100})
	g.Handle(Input{Kind: InputPointerMove, X: 100, Y: 400})

	a := g.Snapshot().Aim
	if a.Length != tun.MaxAimLength {
		t.Fatalf("aim length = %g, want capped at %g", a.Length, tun.MaxAimLength)
	}
	if math.Abs(a.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("aim angle = %g, want pi/2", a.Angle)
	}
}

func TestDragIgnoredWhileResolving(t *testing.T) {
	tun := DefaultTuning()
	g := NewDragGame(tun, Hooks{})
	dragShot(g, 200, 500, 200, 640)
	dragShot(g, 200, 500, 200, 640)
	fly(t, g)
	if s := g.Snapshot(); s.ShotCount != 2 {
		t.Fatalf("second drag mid-flight counted: shot=%d", s.ShotCount)
	}

	advance(g, tun.ResetDelay)
	if s := g.Snapshot(); s.Phase != PhaseIdle || s.Ball.X != tun.Court.BallX || s.Ball.Y != tun.Court.BallY {
		t.Fatalf("after reset: %+v", s)
	}
}

func TestDragSessionEnds(t *testing.T) {
	tun := DefaultTuning()
	tun.MaxShots = 3
	g := NewDragGame(tun, Hooks{})
	for i := 0; i < tun.MaxShots; i++ {
		dragShot(g, 200, 500, 200, 640)
		fly(t, g)
		advance(g, tun.ResetDelay)
	}

	s := g.Snapshot()
	if s.Phase != PhaseEnded || s.Score != 3 || s.ShotCount != 4 {
		t.Fatalf("end state: %+v", s)
	}

	dragShot(g, 200, 500, 200, 640)
	for i := 0; i < 100; i++ {
		g.Tick(DT)
	}
	after := g.Snapshot()
	if after.ShotCount != s.ShotCount || after.Score != s.Score || after.Ball.InFlight {
		t.Fatalf("drag after game over changed state: %+v", after)
	}
}
