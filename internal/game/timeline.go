package game

import "time"

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// Timeline is a simulated clock for fire-once callbacks. Callbacks run on
// the goroutine calling Advance, so game state needs no locking.
type Timeline struct {
	now    time.Duration
	seq    int
	timers []timer
}

func (tl *Timeline) Now() time.Duration {
	return tl.now
}

// Schedule runs fn once, delay after the current simulated time.
func (tl *Timeline) Schedule(delay time.Duration, fn func()) {
	tl.seq++
	tl.timers = append(tl.timers, timer{at: tl.now + delay, seq: tl.seq, fn: fn})
}

// Advance moves the clock forward by dt and fires everything that is due,
// earliest first. Callbacks scheduled by a firing callback run in the same
// call if they are already due.
func (tl *Timeline) Advance(dt time.Duration) {
	tl.now += dt
	for {
		idx := -1
		for i, t := range tl.timers {
			if t.at > tl.now {
				continue
			}
			if idx < 0 || t.at < tl.timers[idx].at || (t.at == tl.timers[idx].at && t.seq < tl.timers[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := tl.timers[idx]
		tl.timers = append(tl.timers[:idx], tl.timers[idx+1:]...)
		t.fn()
	}
}

func (tl *Timeline) Pending() int {
	return len(tl.timers)
}

// Clear drops every pending callback.
func (tl *Timeline) Clear() {
	tl.timers = nil
}
