package repository

import (
	"context"

	"Sternentyp/internal/domain/models"
)

// HouseResult is the raw output of the ephemeris house computation.
type HouseResult struct {
	Cusps     [12]float64
	Ascendant float64
	Midheaven float64
}

// Ephemeris provides ecliptic positions and house cusps for a julian day.
// Failures are reported as errors, never as silent defaults.
type Ephemeris interface {
	// BodyPosition returns the ecliptic longitude and daily speed of one body.
	BodyPosition(ctx context.Context, jd float64, body models.Body, zodiac models.ZodiacMode) (models.EclipticPosition, error)

	// BodyPositions resolves several bodies at once (one sidecar round trip).
	BodyPositions(ctx context.Context, jd float64, bodies []models.Body, zodiac models.ZodiacMode) (map[models.Body]models.EclipticPosition, error)

	// Houses computes the twelve cusps plus ascendant and midheaven for a
	// location and house system code.
	Houses(ctx context.Context, jd, lat, lon float64, system string) (HouseResult, error)
}

// Geocoder resolves a place name to coordinates. A place with no match is
// an InputError; a backend outage is a CollaboratorError.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (lat, lon float64, err error)
}

// TimezoneResolver maps coordinates to an IANA timezone identifier.
// An empty result means unknown and must be surfaced, never defaulted.
type TimezoneResolver interface {
	Lookup(lat, lon float64) (string, error)
}

// Metrics abstracts the prometheus recorder for the usecase layer.
type Metrics interface {
	RecordChart(operation string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordGeocodeCache(hit bool)
}
