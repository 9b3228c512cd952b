package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
)

// pairEphemeris places person B's bodies exactly opposite person A's.
func pairEphemeris() *fakeEphemeris {
	eph := staticEphemeris()
	cutoff := astro.JulianDay(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	eph.posFn = func(jd float64, body models.Body) models.EclipticPosition {
		pos := natalBase[body]
		if jd > cutoff {
			pos.Longitude = astro.Normalize(pos.Longitude + 180)
		}
		return pos
	}
	return eph
}

func personB() models.ChartRequest {
	req := coordRequest()
	req.Date = "2024-06-15"
	return req
}

func newTestAnalyzer(t *testing.T, eph *fakeEphemeris) *RelationshipAnalyzer {
	t.Helper()
	builder := newTestBuilder(t, eph, &fakeGeocoder{})
	return NewRelationshipAnalyzer(builder, nil, usecaseLogger(t))
}

func TestSynastry(t *testing.T) {
	analyzer := newTestAnalyzer(t, pairEphemeris())

	result, err := analyzer.Synastry(context.Background(), models.SynastryRequest{
		PersonA: coordRequest(),
		PersonB: personB(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Aspects)

	// Tightest first: A's Sonne opposes B's Sonne exactly.
	assert.InDelta(t, 0.0, result.Aspects[0].Orb, 1e-6)
	found := false
	for _, asp := range result.Aspects {
		if asp.Body1 == "Sonne" && asp.Body2 == "Sonne" && asp.Type == models.Opposition {
			found = true
			assert.InDelta(t, 0.0, asp.Orb, 1e-6)
		}
	}
	assert.True(t, found, "expected Sonne-Sonne opposition")

	// B's Sonne sits at 180° and lands in A's seventh house.
	assert.Equal(t, 7, result.HouseOverlay["Sonne"])
	assert.Len(t, result.HouseOverlay, 14)

	// Cross-aspects follow the natal inclusion rules: no south node.
	for _, asp := range result.Aspects {
		assert.NotEqual(t, string(models.Suedknoten), asp.Body1)
		assert.NotEqual(t, string(models.Suedknoten), asp.Body2)
	}
}

func TestComposite(t *testing.T) {
	analyzer := newTestAnalyzer(t, pairEphemeris())

	composite, err := analyzer.Composite(context.Background(), models.CompositeRequest{
		PersonA: coordRequest(),
		PersonB: personB(),
	})
	require.NoError(t, err)

	// Midpoint of 0° and 180° resolves along the increasing arc to 90°.
	sonne := composite.Bodies[models.Sonne]
	assert.InDelta(t, 90.0, sonne.Longitude, 1e-6)
	assert.Equal(t, "Krebs", sonne.Sign)

	// Mond: midpoint of 95° and 275° is 185°.
	assert.InDelta(t, 185.0, composite.Bodies[models.Mond].Longitude, 1e-6)

	assert.Len(t, composite.Bodies, 14)
	assert.NotEmpty(t, composite.Aspects)
	assert.NotEmpty(t, composite.Note)
	for _, asp := range composite.Aspects {
		assert.NotEqual(t, string(models.Suedknoten), asp.Body1)
		assert.NotEqual(t, string(models.Suedknoten), asp.Body2)
	}

	// Identical house results on both sides keep the angles in place.
	assert.InDelta(t, 0.0, composite.Ascendant.Longitude, 1e-6)
}
