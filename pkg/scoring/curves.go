package scoring

import "math"

// Scoring curves shared by the metric evaluators. All are stateless pure
// functions bounded to [0, 1].

// LinearScore maps v onto [0, 1] linearly between lo and hi, clamping
// outside. lo > hi inverts the direction.
func LinearScore(v, lo, hi float64) float64 {
	if lo == hi {
		if v >= hi {
			return 1
		}
		return 0
	}
	return clamp01((v - lo) / (hi - lo))
}

// Falloff describes one side of a plateau curve: how far the score takes to
// fall from full credit down to Floor.
type Falloff struct {
	Width float64
	Floor float64
}

// PlateauScore gives full credit on [lo, hi] and falls off linearly on each
// side over the configured widths, down to per-side floors. A zero-width side
// drops straight to its floor.
func PlateauScore(v, lo, hi float64, left, right Falloff) float64 {
	switch {
	case v >= lo && v <= hi:
		return 1
	case v < lo:
		return falloffScore(lo-v, left)
	default:
		return falloffScore(v-hi, right)
	}
}

func falloffScore(dist float64, f Falloff) float64 {
	floor := clamp01(f.Floor)
	if f.Width <= 0 {
		return floor
	}
	frac := dist / f.Width
	if frac >= 1 {
		return floor
	}
	return clamp01(1 - (1-floor)*frac)
}

// GaussianScore scores 1.0 at center and decays with distance following a
// Gaussian with the given spread. Used when both under- and over-shooting a
// target are undesirable.
func GaussianScore(v, center, spread float64) float64 {
	if spread <= 0 {
		if v == center {
			return 1
		}
		return 0
	}
	d := v - center
	return clamp01(math.Exp(-(d * d) / (2 * spread * spread)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
