package astro

import "time"

// jdUnixEpoch is the julian day of 1970-01-01T00:00:00 UT.
const jdUnixEpoch = 2440587.5

// JulianDay converts a UTC instant to a julian day number (UT).
func JulianDay(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000.0 + jdUnixEpoch
}

// JulianToTime converts a julian day number back to a UTC instant,
// truncated to millisecond precision.
func JulianToTime(jd float64) time.Time {
	ms := (jd - jdUnixEpoch) * 86400000.0
	return time.UnixMilli(int64(ms)).UTC()
}
