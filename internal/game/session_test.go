package game

import "testing"

func TestSessionShotCountCapped(t *testing.T) {
	tun := DefaultTuning()
	var tl Timeline
	s := newSession(tun, Hooks{}, &tl, "go", nil)

	for i := 0; i < tun.MaxShots+5; i++ {
		before := s.ShotCount()
		s.record(ShotResult{Made: i%2 == 0})
		if s.ShotCount() > tun.MaxShots+1 {
			t.Fatalf("shot count %d exceeds %d", s.ShotCount(), tun.MaxShots+1)
		}
		if before <= tun.MaxShots && s.ShotCount() != before+1 {
			t.Fatalf("shot %d: count %d -> %d", i, before, s.ShotCount())
		}
	}
	if s.Score() != 5 {
		t.Fatalf("score = %d, want 5", s.Score())
	}
	if s.Active() {
		t.Fatalf("session active after %d shots", tun.MaxShots)
	}
}

func TestSessionSchedulesResetThenEnd(t *testing.T) {
	tun := DefaultTuning()
	tun.MaxShots = 2
	var tl Timeline
	resets := 0
	s := newSession(tun, Hooks{}, &tl, "go", func() { resets++ })

	s.record(ShotResult{Made: true, Message: "SWISH!"})
	if s.Phase() != PhaseResolving || s.Message() != "SWISH!" {
		t.Fatalf("phase=%v message=%q", s.Phase(), s.Message())
	}
	tl.Advance(tun.ResetDelay)
	if s.Phase() != PhaseIdle || resets != 1 || s.Message() != "go" {
		t.Fatalf("after reset: phase=%v resets=%d message=%q", s.Phase(), resets, s.Message())
	}

	s.record(ShotResult{})
	tl.Advance(tun.GameOverDelay)
	if s.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, want ended", s.Phase())
	}
	if s.Message() != "GAME OVER! Final Score: 1/2" {
		t.Fatalf("message = %q", s.Message())
	}
	if resets != 1 {
		t.Fatalf("reset ran after final shot")
	}
}

func TestSessionShotNumbering(t *testing.T) {
	var tl Timeline
	var got []int
	s := newSession(DefaultTuning(), Hooks{OnShot: func(r ShotResult) { got = append(got, r.Shot) }}, &tl, "", nil)
	for i := 0; i < 3; i++ {
		s.record(ShotResult{})
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("shot numbers = %v", got)
	}
}
