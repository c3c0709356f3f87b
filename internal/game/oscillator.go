package game

import "math"

// PowerTier is the feedback band of the current power value.
type PowerTier string

const (
	TierBad   PowerTier = "bad"
	TierGood  PowerTier = "good"
	TierSweet PowerTier = "sweet"
)

// Oscillator ping-pongs a power value between 0 and 100. The raw counter
// runs over [0,200) and is folded back on read.
type Oscillator struct {
	raw  float64
	step float64
}

func NewOscillator(step float64) *Oscillator {
	return &Oscillator{step: step}
}

// Step advances the counter by one tick.
func (o *Oscillator) Step() {
	o.raw = math.Mod(o.raw+o.step, 200)
}

// Value returns the current power in [0,100].
func (o *Oscillator) Value() float64 {
	if o.raw > 100 {
		return 200 - o.raw
	}
	return o.raw
}

func (o *Oscillator) Tier() PowerTier {
	return TierFor(o.Value())
}

func (o *Oscillator) Reset() {
	o.raw = 0
}

// TierFor maps a power value to its feedback band.
func TierFor(power float64) PowerTier {
	switch {
	case power >= 45 && power <= 55:
		return TierSweet
	case power > 30 && power < 70:
		return TierGood
	default:
		return TierBad
	}
}
