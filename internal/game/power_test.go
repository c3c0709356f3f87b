package game

import (
	"testing"
	"time"
)

// advance ticks g until at least d of simulated time has passed.
func advance(g Game, d time.Duration) {
	n := int(d/DT) + 1
	for i := 0; i < n; i++ {
		g.Tick(DT)
	}
}

// shootPower charges the meter to an even power value and locks it in.
func shootPower(g *PowerGame, power int) {
	g.Handle(Input{Kind: InputKey})
	for i := 1; i < power/2; i++ {
		g.Tick(DT)
	}
	g.Handle(Input{Kind: InputKey})
}

func TestPowerGameMake(t *testing.T) {
	g := NewPowerGame(DefaultTuning(), Hooks{})
	shootPower(g, 50)

	s := g.Snapshot()
	if s.Score != 1 || s.ShotCount != 2 {
		t.Fatalf("after make: score=%d shot=%d, want 1 and 2", s.Score, s.ShotCount)
	}
	if s.LastShot == nil || !s.LastShot.Made || s.LastShot.Power != 50 {
		t.Fatalf("last shot = %+v, want a make at power 50", s.LastShot)
	}
	if s.Message != "SWISH! Power: 50%" {
		t.Fatalf("message = %q", s.Message)
	}
	if s.Phase != PhaseResolving {
		t.Fatalf("phase = %v, want resolving", s.Phase)
	}
}

func TestPowerGameMissTooLong(t *testing.T) {
	g := NewPowerGame(DefaultTuning(), Hooks{})
	shootPower(g, 70)

	s := g.Snapshot()
	if s.Score != 0 || s.ShotCount != 2 {
		t.Fatalf("after miss: score=%d shot=%d, want 0 and 2", s.Score, s.ShotCount)
	}
	if s.LastShot.Miss != MissLong {
		t.Fatalf("miss = %q, want long", s.LastShot.Miss)
	}
}

func TestPowerGameMeterOnlyMovesWhileCharging(t *testing.T) {
	g := NewPowerGame(DefaultTuning(), Hooks{})
	for i := 0; i < 10; i++ {
		g.Tick(DT)
	}
	if s := g.Snapshot(); s.Power.Charging || s.Power.Value != 0 {
		t.Fatalf("meter moved while idle: %+v", s.Power)
	}

	g.Handle(Input{Kind: InputKey})
	g.Tick(DT)
	g.Tick(DT)
	s := g.Snapshot()
	if !s.Power.Charging || s.Power.Value != 6 {
		t.Fatalf("power = %+v, want charging at 6", s.Power)
	}
	if s.Phase != PhaseAiming || s.Message != powerAiming {
		t.Fatalf("phase=%v message=%q", s.Phase, s.Message)
	}
}

func TestPowerGameResetsAfterDelay(t *testing.T) {
	tun := DefaultTuning()
	g := NewPowerGame(tun, Hooks{})
	shootPower(g, 80)

	// keypresses during the reset window are ignored
	g.Handle(Input{Kind: InputKey})
	if s := g.Snapshot(); s.Power.Charging || s.ShotCount != 2 {
		t.Fatalf("key during resolve changed state: %+v", s)
	}

	advance(g, tun.ResetDelay)
	s := g.Snapshot()
	if s.Phase != PhaseIdle || s.Message != powerPrompt {
		t.Fatalf("after reset: phase=%v message=%q", s.Phase, s.Message)
	}
	if s.Ball.X != tun.Court.BallX || s.Ball.Y != tun.Court.BallY || s.Ball.InFlight {
		t.Fatalf("ball not back at start: %+v", s.Ball)
	}
}

func TestPowerGameBallFliesToHoopOnMake(t *testing.T) {
	tun := DefaultTuning()
	g := NewPowerGame(tun, Hooks{})
	shootPower(g, 50)

	if !g.Snapshot().Ball.InFlight {
		t.Fatalf("ball should be in flight right after the shot")
	}
	advance(g, tun.ShotAnimDuration)
	b := g.Snapshot().Ball
	hx, hy := tun.Court.HoopCenter()
	if b.InFlight || b.X != hx || b.Y != hy {
		t.Fatalf("ball = %+v, want at rest in hoop (%g,%g)", b, hx, hy)
	}
}

func TestPowerGameFullSession(t *testing.T) {
	tun := DefaultTuning()
	shots, overs := 0, 0
	var summary Summary
	g := NewPowerGame(tun, Hooks{
		OnShot: func(ShotResult) { shots++ },
		OnGameOver: func(s Summary) {
			overs++
			summary = s
		},
	})

	prevScore := 0
	for i := 1; i <= tun.MaxShots; i++ {
		power := 50
		if i%3 == 0 {
			power = 90
		}
		shootPower(g, power)
		s := g.Snapshot()
		if s.ShotCount != i+1 {
			t.Fatalf("shot %d: count=%d, want %d", i, s.ShotCount, i+1)
		}
		if s.Score < prevScore || s.Score > prevScore+1 {
			t.Fatalf("shot %d: score went %d -> %d", i, prevScore, s.Score)
		}
		prevScore = s.Score
		if i < tun.MaxShots {
			advance(g, tun.ResetDelay)
		}
	}

	if g.Session().Active() {
		t.Fatalf("session still active after %d shots", tun.MaxShots)
	}
	advance(g, tun.GameOverDelay)

	s := g.Snapshot()
	if s.Phase != PhaseEnded {
		t.Fatalf("phase = %v, want ended", s.Phase)
	}
	if s.Score != 7 || s.ShotCount != tun.MaxShots+1 {
		t.Fatalf("final score=%d shot=%d, want 7 and %d", s.Score, s.ShotCount, tun.MaxShots+1)
	}
	if s.Message != "GAME OVER! Final Score: 7/10" || summary.Message != s.Message {
		t.Fatalf("message = %q, summary = %q", s.Message, summary.Message)
	}
	if shots != tun.MaxShots || overs != 1 {
		t.Fatalf("hooks: shots=%d overs=%d", shots, overs)
	}

	// no further shots once the session is over
	for i := 0; i < 3; i++ {
		g.Handle(Input{Kind: InputKey})
		advance(g, tun.ResetDelay)
	}
	after := g.Snapshot()
	if after.Score != s.Score || after.ShotCount != s.ShotCount || after.Phase != PhaseEnded || after.Power.Charging {
		t.Fatalf("state changed after game over: %+v", after)
	}

	g.Handle(Input{Kind: InputRestart})
	fresh := g.Snapshot()
	if fresh.Score != 0 || fresh.ShotCount != 1 || fresh.Phase != PhaseIdle {
		t.Fatalf("restart: %+v", fresh)
	}
}

func TestPowerGameRestartIgnoredMidSession(t *testing.T) {
	g := NewPowerGame(DefaultTuning(), Hooks{})
	shootPower(g, 50)
	g.Handle(Input{Kind: InputRestart})
	if s := g.Snapshot(); s.Score != 1 || s.ShotCount != 2 {
		t.Fatalf("restart mid-session reset the score: %+v", s)
	}
}

func TestPowerGameIgnoresPointer(t *testing.T) {
	g := NewPowerGame(DefaultTuning(), Hooks{})
	g.Handle(Input{Kind: InputPointerDown, X: 10, Y: 10})
	g.Handle(Input{Kind: InputPointerUp})
	if s := g.Snapshot(); s.Phase != PhaseIdle {
		t.Fatalf("pointer input moved power game to %v", s.Phase)
	}
}
