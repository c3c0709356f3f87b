package game

import (
	"fmt"
	"time"
)

// Court constants. Coordinates are screen pixels, y grows downward.
const (
	TickRate = 60
	DT       = time.Second / TickRate

	CourtWidth  = 400.0
	CourtHeight = 600.0

	BallRadius = 12.0
	BallStartX = CourtWidth / 2
	BallStartY = 540.0

	HoopX     = CourtWidth / 2
	HoopY     = 160.0
	RimWidth  = 48.0
	RimHeight = 20.0
)

// Tuning holds every number the two shot mechanics depend on.
type Tuning struct {
	MaxShots int `toml:"max_shots" json:"maxShots"`

	// Power meter
	PowerSpeed         float64       `toml:"power_speed" json:"powerSpeed"`
	SweetSpotCenter    float64       `toml:"sweet_spot_center" json:"sweetSpotCenter"`
	SweetSpotTolerance float64       `toml:"sweet_spot_tolerance" json:"sweetSpotTolerance"`
	ShotAnimDuration   time.Duration `toml:"shot_anim_duration" json:"shotAnimDuration"`

	ResetDelay    time.Duration `toml:"reset_delay" json:"resetDelay"`
	GameOverDelay time.Duration `toml:"game_over_delay" json:"gameOverDelay"`

	// Drag
	DragThreshold float64 `toml:"drag_threshold" json:"dragThreshold"`
	VelocityScale float64 `toml:"velocity_scale" json:"velocityScale"`
	MaxVelocity   float64 `toml:"max_velocity" json:"maxVelocity"`
	MaxAimLength  float64 `toml:"max_aim_length" json:"maxAimLength"`
	Gravity       float64 `toml:"gravity" json:"gravity"`

	Court Court `toml:"court" json:"court"`
}

// Court is the playfield geometry used by the projectile simulator.
type Court struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	BallX float64 `toml:"ball_x" json:"ballX"`
	BallY float64 `toml:"ball_y" json:"ballY"`

	HoopMinX float64 `toml:"hoop_min_x" json:"hoopMinX"`
	HoopMaxX float64 `toml:"hoop_max_x" json:"hoopMaxX"`
	RimMinY  float64 `toml:"rim_min_y" json:"rimMinY"`
	RimMaxY  float64 `toml:"rim_max_y" json:"rimMaxY"`
}

// DefaultTuning returns the calibration for the 400x600 court.
func DefaultTuning() Tuning {
	return Tuning{
		MaxShots: 10,

		PowerSpeed:         2,
		SweetSpotCenter:    50,
		SweetSpotTolerance: 10,
		ShotAnimDuration:   time.Second,

		ResetDelay:    1500 * time.Millisecond,
		GameOverDelay: 1200 * time.Millisecond,

		DragThreshold: 10,
		VelocityScale: 0.15,
		MaxVelocity:   30,
		MaxAimLength:  120,
		Gravity:       0.25,

		Court: Court{
			Width:    CourtWidth,
			Height:   CourtHeight,
			BallX:    BallStartX,
			BallY:    BallStartY,
			HoopMinX: HoopX - RimWidth/2,
			HoopMaxX: HoopX + RimWidth/2,
			RimMinY:  HoopY,
			RimMaxY:  HoopY + RimHeight,
		},
	}
}

// Validate rejects tuning that would break the game's invariants.
func (t Tuning) Validate() error {
	switch {
	case t.MaxShots < 1:
		return fmt.Errorf("max_shots must be at least 1, got %d", t.MaxShots)
	case t.PowerSpeed <= 0 || t.PowerSpeed > 100:
		return fmt.Errorf("power_speed must be in (0,100], got %g", t.PowerSpeed)
	case t.SweetSpotCenter < 0 || t.SweetSpotCenter > 100:
		return fmt.Errorf("sweet_spot_center must be in [0,100], got %g", t.SweetSpotCenter)
	case t.SweetSpotTolerance < 0:
		return fmt.Errorf("sweet_spot_tolerance must not be negative, got %g", t.SweetSpotTolerance)
	case t.ResetDelay < 0 || t.GameOverDelay < 0 || t.ShotAnimDuration < 0:
		return fmt.Errorf("delays must not be negative")
	case t.DragThreshold < 0:
		return fmt.Errorf("drag_threshold must not be negative, got %g", t.DragThreshold)
	case t.VelocityScale <= 0 || t.MaxVelocity <= 0:
		return fmt.Errorf("velocity_scale and max_velocity must be positive")
	case t.Gravity <= 0:
		// every flight must come back down and leave the court
		return fmt.Errorf("gravity must be positive, got %g", t.Gravity)
	}
	return t.Court.validate()
}

func (c Court) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("court size must be positive, got %gx%g", c.Width, c.Height)
	}
	if !c.contains(c.BallX, c.BallY) {
		return fmt.Errorf("ball start (%g,%g) is outside the court", c.BallX, c.BallY)
	}
	if c.HoopMinX >= c.HoopMaxX || c.RimMinY >= c.RimMaxY {
		return fmt.Errorf("hoop band is empty")
	}
	return nil
}

func (c Court) contains(x, y float64) bool {
	return x >= 0 && x <= c.Width && y >= 0 && y <= c.Height
}

// HoopCenter is where a made power shot flies to.
func (c Court) HoopCenter() (x, y float64) {
	return (c.HoopMinX + c.HoopMaxX) / 2, (c.RimMinY + c.RimMaxY) / 2
}
