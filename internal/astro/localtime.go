package astro

import (
	"time"

	"Sternentyp/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ResolveLocalTime turns a local wall time in an IANA timezone into a UTC
// instant. Wall times that do not exist (spring-forward gap) or occur
// twice (fall-back ambiguity) are rejected as input errors rather than
// silently resolved; the caller must adjust the time or pass an offset
// unambiguous timezone.
func ResolveLocalTime(dateStr, timeStr, tzID string) (time.Time, error) {
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.Time{}, models.NewInputErrorf("timezone", "invalid timezone %q", tzID)
	}

	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, models.NewInputError("date", "invalid date format, use YYYY-MM-DD")
	}
	tm, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return time.Time{}, models.NewInputError("time", "invalid time format, use HH:MM")
	}

	local := time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), 0, 0, loc)

	// A normalized wall clock that differs from the request means the
	// requested time falls into a DST gap.
	if local.Hour() != tm.Hour() || local.Minute() != tm.Minute() || local.Day() != d.Day() {
		return time.Time{}, models.NewInputError("time", "nonexistent local time (DST transition), adjust time or timezone")
	}

	// If a shifted instant maps back to the same wall clock, two UTC
	// instants share this local time and the request is ambiguous.
	utc := local.UTC()
	for _, delta := range []time.Duration{-time.Hour, -30 * time.Minute, 30 * time.Minute, time.Hour} {
		alt := utc.Add(delta).In(loc)
		if alt.Year() == local.Year() && alt.Month() == local.Month() && alt.Day() == local.Day() &&
			alt.Hour() == local.Hour() && alt.Minute() == local.Minute() {
			return time.Time{}, models.NewInputError("time", "ambiguous local time (DST transition), adjust time or timezone")
		}
	}

	return utc, nil
}
