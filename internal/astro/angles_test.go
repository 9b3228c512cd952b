package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRange(t *testing.T) {
	samples := []float64{-720.5, -360, -180, -0.0001, 0, 0.0001, 45, 359.9999, 360, 361, 725, 1e6}
	for _, x := range samples {
		n := Normalize(x)
		assert.GreaterOrEqual(t, n, 0.0, "x=%v", x)
		assert.Less(t, n, 360.0, "x=%v", x)
		assert.Equal(t, n, Normalize(n), "idempotence x=%v", x)
	}
}

func TestNormalizeNegative(t *testing.T) {
	assert.InDelta(t, 350, Normalize(-10), 1e-9)
	assert.InDelta(t, 0, Normalize(-360), 1e-9)
	assert.InDelta(t, 359.5, Normalize(-0.5), 1e-9)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 20, Distance(10, 350), 1e-9)
	assert.InDelta(t, 20, Distance(350, 10), 1e-9)
	assert.InDelta(t, 0, Distance(123.4, 123.4), 1e-9)
	assert.InDelta(t, 180, Distance(90, 270), 1e-9)

	samples := []float64{0, 10, 90, 179.9, 180, 250, 359.9}
	for _, a := range samples {
		for _, b := range samples {
			d := Distance(a, b)
			assert.InDelta(t, Distance(b, a), d, 1e-9)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 180.0)
		}
	}
}

func TestMidpointSeam(t *testing.T) {
	assert.InDelta(t, 0, Midpoint(350, 10), 1e-9)
	assert.InDelta(t, 0, Midpoint(10, 350), 1e-9)
	assert.InDelta(t, 15, Midpoint(10, 20), 1e-9)
}

func TestMidpointOppositionTieBreak(t *testing.T) {
	// exactly opposite: towards increasing longitude from the first operand
	assert.InDelta(t, 90, Midpoint(0, 180), 1e-9)
	assert.InDelta(t, 270, Midpoint(180, 0), 1e-9)
	assert.InDelta(t, 100, Midpoint(10, 190), 1e-9)
}

func TestMidpointOnShorterArc(t *testing.T) {
	samples := []float64{0, 33.3, 90, 170, 180.0001, 270, 350}
	for _, a := range samples {
		for _, b := range samples {
			m := Midpoint(a, b)
			sum := Distance(a, m) + Distance(m, b)
			assert.InDelta(t, Distance(a, b), sum, 1e-6, "a=%v b=%v m=%v", a, b, m)
		}
	}
}
