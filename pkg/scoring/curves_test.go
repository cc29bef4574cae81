package scoring_test

import (
	"math"
	"testing"

	"github.com/delvescope/delvescope/pkg/scoring"
)

func TestLinearScore(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{v: 0.5, lo: 0, hi: 1, want: 0.5},
		{v: -1, lo: 0, hi: 1, want: 0},
		{v: 2, lo: 0, hi: 1, want: 1},
		{v: 0.25, lo: 1, hi: 0, want: 0.75}, // inverted direction
		{v: 5, lo: 3, hi: 3, want: 1},       // degenerate range
		{v: 2, lo: 3, hi: 3, want: 0},
	}
	for _, tc := range cases {
		got := scoring.LinearScore(tc.v, tc.lo, tc.hi)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("LinearScore(%g, %g, %g) = %g, want %g", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestPlateauScore(t *testing.T) {
	left := scoring.Falloff{Width: 0.5, Floor: 0}
	right := scoring.Falloff{Width: 0.25, Floor: 0.4}

	if got := scoring.PlateauScore(0.7, 0.6, 0.9, left, right); got != 1 {
		t.Errorf("inside plateau = %g, want 1", got)
	}
	// Halfway down the left slope.
	if got := scoring.PlateauScore(0.35, 0.6, 0.9, left, right); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("left slope = %g, want 0.5", got)
	}
	// Past the left slope: floor 0.
	if got := scoring.PlateauScore(0, 0.6, 0.9, left, right); got != 0 {
		t.Errorf("left floor = %g, want 0", got)
	}
	// Right side bottoms out at its own floor.
	if got := scoring.PlateauScore(2, 0.6, 0.9, left, right); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("right floor = %g, want 0.4", got)
	}
	// Zero-width side drops straight to the floor.
	if got := scoring.PlateauScore(1, 0, 0.5, left, scoring.Falloff{Floor: 0.7}); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("zero-width falloff = %g, want 0.7", got)
	}
}

func TestGaussianScore(t *testing.T) {
	if got := scoring.GaussianScore(0.3, 0.3, 0.15); got != 1 {
		t.Errorf("at center = %g, want 1", got)
	}
	// One spread away: exp(-1/2).
	want := math.Exp(-0.5)
	if got := scoring.GaussianScore(0.45, 0.3, 0.15); math.Abs(got-want) > 1e-9 {
		t.Errorf("one spread away = %g, want %g", got, want)
	}
	// Symmetric around the center.
	lo := scoring.GaussianScore(0.1, 0.3, 0.15)
	hi := scoring.GaussianScore(0.5, 0.3, 0.15)
	if math.Abs(lo-hi) > 1e-9 {
		t.Errorf("asymmetric: %g vs %g", lo, hi)
	}
	if got := scoring.GaussianScore(1, 1, 0); got != 1 {
		t.Errorf("zero spread at center = %g, want 1", got)
	}
	if got := scoring.GaussianScore(2, 1, 0); got != 0 {
		t.Errorf("zero spread off center = %g, want 0", got)
	}
}
