package game

import (
	"fmt"
	"log/slog"
)

// Session is the scoring and lifecycle shell both variants share.
type Session struct {
	tuning   Tuning
	hooks    Hooks
	timeline *Timeline
	prompt   string
	onReset  func()

	score     int
	shotCount int
	phase     Phase
	message   string
	lastShot  *ShotResult
}

func newSession(t Tuning, hooks Hooks, tl *Timeline, prompt string, onReset func()) *Session {
	return &Session{
		tuning:    t,
		hooks:     hooks,
		timeline:  tl,
		prompt:    prompt,
		onReset:   onReset,
		shotCount: 1,
		phase:     PhaseIdle,
		message:   prompt,
	}
}

func (s *Session) Score() int     { return s.score }
func (s *Session) ShotCount() int { return s.shotCount }
func (s *Session) Phase() Phase   { return s.phase }
func (s *Session) Message() string {
	return s.message
}

// Active reports whether shots remain.
func (s *Session) Active() bool {
	return s.shotCount <= s.tuning.MaxShots
}

// canAim is true when a new shot may begin.
func (s *Session) canAim() bool {
	return s.Active() && s.phase == PhaseIdle
}

// record applies a resolved shot and schedules what comes next: a reset
// while shots remain, the end-of-game summary otherwise.
func (s *Session) record(r ShotResult) {
	if !s.Active() {
		return
	}
	r.Shot = s.shotCount
	if r.Made {
		s.score++
	}
	s.shotCount++
	s.phase = PhaseResolving
	s.message = r.Message
	s.lastShot = &r

	slog.Debug("shot", "n", r.Shot, "made", r.Made, "power", r.Power, "score", s.score)
	if s.hooks.OnShot != nil {
		s.hooks.OnShot(r)
	}

	if s.Active() {
		s.timeline.Schedule(s.tuning.ResetDelay, s.reset)
		return
	}
	s.timeline.Schedule(s.tuning.GameOverDelay, s.end)
}

func (s *Session) reset() {
	s.phase = PhaseIdle
	s.message = s.prompt
	if s.onReset != nil {
		s.onReset()
	}
}

func (s *Session) cancel() {
	s.phase = PhaseIdle
	s.message = s.prompt
	if s.hooks.OnCancel != nil {
		s.hooks.OnCancel()
	}
}

func (s *Session) end() {
	s.phase = PhaseEnded
	sum := s.Summary()
	s.message = sum.Message
	slog.Debug("game over", "score", s.score, "max", s.tuning.MaxShots)
	if s.hooks.OnGameOver != nil {
		s.hooks.OnGameOver(sum)
	}
}

func (s *Session) Summary() Summary {
	return Summary{
		Score:    s.score,
		MaxShots: s.tuning.MaxShots,
		Message:  fmt.Sprintf("GAME OVER! Final Score: %d/%d", s.score, s.tuning.MaxShots),
	}
}

// fill copies the shell's fields into a snapshot.
func (s *Session) fill(snap *Snapshot) {
	snap.Phase = s.phase
	snap.Score = s.score
	snap.ShotCount = s.shotCount
	snap.MaxShots = s.tuning.MaxShots
	snap.Message = s.message
	if s.lastShot != nil {
		r := *s.lastShot
		snap.LastShot = &r
	}
}
