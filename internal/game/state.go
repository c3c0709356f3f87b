package game

import (
	"fmt"
	"time"
)

// Mode selects one of the two shot mechanics.
type Mode string

const (
	ModePower Mode = "power"
	ModeDrag  Mode = "drag"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePower, "":
		return ModePower, nil
	case ModeDrag:
		return ModeDrag, nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

// Phase is the lifecycle state of a session.
//
//	Idle -> Aiming -> Resolving -> Idle
//	                            -> Ended
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAiming
	PhaseResolving
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAiming:
		return "aiming"
	case PhaseResolving:
		return "resolving"
	case PhaseEnded:
		return "ended"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for _, q := range []Phase{PhaseIdle, PhaseAiming, PhaseResolving, PhaseEnded} {
		if q.String() == string(b) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

type InputKind uint8

const (
	InputKey InputKind = iota + 1
	InputPointerDown
	InputPointerMove
	InputPointerUp
	InputRestart
)

// Input is one player action. X and Y are court coordinates and only
// matter for pointer input.
type Input struct {
	Kind InputKind
	X, Y float64
}

type BallState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	InFlight bool    `json:"inFlight"`
}

type PowerState struct {
	Charging bool      `json:"charging"`
	Value    float64   `json:"value"`
	Tier     PowerTier `json:"tier"`
}

// Snapshot is everything a rendering surface needs for one frame.
type Snapshot struct {
	Tick      uint32      `json:"tick"`
	Mode      Mode        `json:"mode"`
	Phase     Phase       `json:"phase"`
	Score     int         `json:"score"`
	ShotCount int         `json:"shotCount"`
	MaxShots  int         `json:"maxShots"`
	Message   string      `json:"message"`
	Power     PowerState  `json:"power"`
	Ball      BallState   `json:"ball"`
	Aim       Aim         `json:"aim"`
	LastShot  *ShotResult `json:"lastShot,omitempty"`
}

// Summary is the end-of-game report.
type Summary struct {
	Score    int    `json:"score"`
	MaxShots int    `json:"maxShots"`
	Message  string `json:"message"`
}

// Hooks are optional callbacks for discrete game events. They run on the
// goroutine driving the game.
type Hooks struct {
	OnShot     func(ShotResult)
	OnCancel   func()
	OnGameOver func(Summary)
}

// Game is what every surface drives: feed inputs, tick, draw snapshots.
type Game interface {
	Mode() Mode
	Handle(in Input)
	Tick(dt time.Duration)
	Restart()
	Snapshot() Snapshot
}

// New builds a game of the given mode.
func New(mode Mode, t Tuning, hooks Hooks) Game {
	if mode == ModeDrag {
		return NewDragGame(t, hooks)
	}
	return NewPowerGame(t, hooks)
}
