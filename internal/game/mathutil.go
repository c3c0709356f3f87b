package game

import "golang.org/x/exp/constraints"

func clamp[T constraints.Integer | constraints.Float](val, min, max T) T {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// easeOut is a quadratic ease-out on t in [0,1].
func easeOut(t float64) float64 {
	t = clamp(t, 0, 1)
	return 1 - (1-t)*(1-t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
