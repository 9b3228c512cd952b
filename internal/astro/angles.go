// Package astro is the chart computation core: pure functions over fixed
// constant tables. It performs no I/O and holds no mutable state, so any
// number of chart computations may run concurrently.
package astro

import "math"

// Normalize reduces any angle to [0, 360). Negative inputs reduce
// correctly; a floating residue landing exactly on 360 collapses to 0.
func Normalize(x float64) float64 {
	r := math.Mod(x, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r -= 360
	}
	return r
}

// Distance returns the smaller arc between two longitudes, in [0, 180].
func Distance(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Midpoint returns the point halfway between a and b along the shorter
// arc. At exactly 180° separation the midpoint is taken in the direction
// of increasing longitude from a, so the result is always deterministic:
// Midpoint(0, 180) == 90, Midpoint(350, 10) == 0.
func Midpoint(a, b float64) float64 {
	a = Normalize(a)
	b = Normalize(b)
	d := Normalize(b - a)
	if d <= 180 {
		return Normalize(a + d/2)
	}
	return Normalize(b + (360-d)/2)
}
