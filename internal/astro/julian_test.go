package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJulianDayEpochs(t *testing.T) {
	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2451545.0, JulianDay(j2000), 1e-8)

	unixEpoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2440587.5, JulianDay(unixEpoch), 1e-8)
}

func TestJulianRoundTrip(t *testing.T) {
	ts := time.Date(1987, 6, 14, 21, 30, 0, 0, time.UTC)
	back := JulianToTime(JulianDay(ts))
	assert.WithinDuration(t, ts, back, time.Millisecond)
}
