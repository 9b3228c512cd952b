package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalCusps(start float64) [12]float64 {
	var c [12]float64
	for i := range c {
		c[i] = Normalize(start + float64(i)*30)
	}
	return c
}

func TestHouseOfWraparound(t *testing.T) {
	cusps := equalCusps(100)

	assert.Equal(t, 1, HouseOf(100, cusps))
	assert.Equal(t, 1, HouseOf(129.9999, cusps))
	assert.Equal(t, 2, HouseOf(130, cusps))
	assert.Equal(t, 8, HouseOf(310, cusps))
	// house 12 spans 70..100, wrapping past 0 is exercised below
	assert.Equal(t, 12, HouseOf(99.9999, cusps))
	assert.Equal(t, 11, HouseOf(50, cusps))
	assert.Equal(t, 9, HouseOf(0, cusps))
}

func TestHouseOfBoundaryExact(t *testing.T) {
	cusps := equalCusps(280) // several cusps beyond the seam
	for i, c := range cusps {
		assert.Equal(t, i+1, HouseOf(c, cusps), "cusp %d at %v", i+1, c)
	}
}

func TestHouseOfPartition(t *testing.T) {
	// uneven but valid partition
	cusps := [12]float64{350, 20, 40, 80, 110, 150, 170, 200, 220, 260, 290, 330}

	counts := make(map[int]int)
	for lon := 0.0; lon < 360; lon += 0.25 {
		h := HouseOf(lon, cusps)
		require.GreaterOrEqual(t, h, 1)
		require.LessOrEqual(t, h, 12)
		counts[h]++
	}
	// every house receives some longitudes, the circle is covered once
	total := 0
	for h := 1; h <= 12; h++ {
		assert.Greater(t, counts[h], 0, "house %d empty", h)
		total += counts[h]
	}
	assert.Equal(t, 1440, total)
}
