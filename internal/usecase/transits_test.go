package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
)

// movingMars returns an ephemeris where Mars follows the given step
// longitudes inside the sweep window and everything else stays natal.
func movingMars(windowStart time.Time, stepHours int, marsByStep []float64) *fakeEphemeris {
	eph := staticEphemeris()
	fromJD := astro.JulianDay(windowStart)
	stepDays := float64(stepHours) / 24.0
	eph.posFn = func(jd float64, body models.Body) models.EclipticPosition {
		if body == models.Mars && jd >= fromJD-1e-9 {
			idx := int(math.Round((jd - fromJD) / stepDays))
			if idx >= len(marsByStep) {
				idx = len(marsByStep) - 1
			}
			return models.EclipticPosition{Longitude: marsByStep[idx], Speed: 0.5}
		}
		return natalBase[body]
	}
	return eph
}

func newTestScanner(t *testing.T, eph *fakeEphemeris) *TransitScanner {
	t.Helper()
	builder := newTestBuilder(t, eph, &fakeGeocoder{})
	return NewTransitScanner(testConfig(), builder, eph, nil, usecaseLogger(t))
}

func TestScanKeepsTightestOrb(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	// Orbs against natal Sonne at 0°: 1.5, then 0.3, then 1.0.
	eph := movingMars(from, 6, []float64{358.5, 359.7, 359.0})
	scanner := newTestScanner(t, eph)

	result, err := scanner.Scan(context.Background(), models.TransitRequest{
		Natal:     coordRequest(),
		From:      "2024-02-01T00:00:00Z",
		To:        "2024-02-01T12:00:00Z",
		StepHours: 6,
		Bodies:    []string{"Mars"},
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.StepHours)

	var hit *models.TransitEvent
	for i := range result.Events {
		ev := &result.Events[i]
		if ev.Transiting == "Mars" && ev.Target == "Sonne" && ev.Type == models.Konjunktion {
			hit = ev
			break
		}
	}
	require.NotNil(t, hit, "expected a Mars-Sonne conjunction event")
	assert.InDelta(t, 0.3, hit.Orb, 1e-6)
	assert.Equal(t, from.Add(6*time.Hour), hit.Timestamp)
}

func TestScanTieKeepsEarliestStep(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	// Same orb on both sides of exactness; the earlier step wins.
	eph := movingMars(from, 6, []float64{359.5, 0.5})
	scanner := newTestScanner(t, eph)

	result, err := scanner.Scan(context.Background(), models.TransitRequest{
		Natal:     coordRequest(),
		From:      "2024-02-01T00:00:00Z",
		To:        "2024-02-01T06:00:00Z",
		StepHours: 6,
		Bodies:    []string{"Mars"},
	})
	require.NoError(t, err)

	for _, ev := range result.Events {
		if ev.Transiting == "Mars" && ev.Target == "Sonne" && ev.Type == models.Konjunktion {
			assert.Equal(t, from, ev.Timestamp)
			return
		}
	}
	t.Fatal("expected a Mars-Sonne conjunction event")
}

func TestScanInclusiveWindowEnd(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	eph := movingMars(from, 6, []float64{350, 350, 359.9})
	scanner := newTestScanner(t, eph)

	// 10h window with 6h steps: samples at 0h, 6h and the 10h end.
	result, err := scanner.Scan(context.Background(), models.TransitRequest{
		Natal:     coordRequest(),
		From:      "2024-02-01T00:00:00Z",
		To:        "2024-02-01T10:00:00Z",
		StepHours: 6,
		Bodies:    []string{"Mars"},
	})
	require.NoError(t, err)
	assert.Equal(t, from.Add(10*time.Hour), result.To)
}

func TestScanRejectsInvertedWindow(t *testing.T) {
	scanner := newTestScanner(t, staticEphemeris())

	_, err := scanner.Scan(context.Background(), models.TransitRequest{
		Natal: coordRequest(),
		From:  "2024-02-02T00:00:00Z",
		To:    "2024-02-01T00:00:00Z",
	})
	require.Error(t, err)

	var inputErr *models.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "to", inputErr.Field)
}

func TestScanRejectsBadTimestamp(t *testing.T) {
	scanner := newTestScanner(t, staticEphemeris())

	_, err := scanner.Scan(context.Background(), models.TransitRequest{
		Natal: coordRequest(),
		From:  "gestern",
		To:    "2024-02-01T00:00:00Z",
	})
	var inputErr *models.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "from", inputErr.Field)
}

func TestTensionScore(t *testing.T) {
	mk := func(transiting, target string, typ models.AspectType) models.TransitEvent {
		return models.TransitEvent{Transiting: transiting, Target: target, Type: typ}
	}

	events := []models.TransitEvent{
		mk("Saturn", "Sonne", models.Quadrat),
		mk("Pluto", "Mond", models.Opposition),
		mk("Uranus", "Aszendent", models.Konjunktion),
		mk("Saturn", "Jupiter", models.Quadrat), // not a personal target
		mk("Venus", "Sonne", models.Quadrat),    // not a slow mover
		mk("Saturn", "Mond", models.Trigon),     // not a hard aspect
	}
	assert.Equal(t, 36, tensionScore(events))

	// Nine hits would be 108; the score is capped.
	var many []models.TransitEvent
	for i := 0; i < 9; i++ {
		many = append(many, mk("Pluto", "Sonne", models.Quadrat))
	}
	assert.Equal(t, 100, tensionScore(many))
}
