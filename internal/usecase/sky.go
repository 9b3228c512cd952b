package usecase

import (
	"context"
	"time"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/pkg/config"
)

// SkySnapshot is one frame of the live sky stream.
type SkySnapshot struct {
	UTC       time.Time                    `json:"utc"`
	JulianDay float64                      `json:"jd_ut"`
	Bodies    map[models.Body]SkyPlacement `json:"bodies"`
	Aspects   []models.Aspect              `json:"aspects"`
}

// SkyPlacement is a body placement without houses, which need a location.
type SkyPlacement struct {
	Position   models.ZodiacPosition `json:"position"`
	Speed      float64               `json:"speed"`
	Retrograde bool                  `json:"retrograde"`
}

// SkyWatcher samples the current sky for the stream endpoint.
type SkyWatcher struct {
	eph    repository.Ephemeris
	zodiac models.ZodiacMode
}

// NewSkyWatcher wires the watcher with the configured default zodiac.
func NewSkyWatcher(cfg *config.Config, eph repository.Ephemeris) *SkyWatcher {
	return &SkyWatcher{eph: eph, zodiac: models.ZodiacMode(cfg.Chart.DefaultZodiac)}
}

// Snapshot computes the primary body placements and their aspects at now.
func (s *SkyWatcher) Snapshot(ctx context.Context, now time.Time) (*SkySnapshot, error) {
	now = now.UTC()
	jd := astro.JulianDay(now)

	positions, err := s.eph.BodyPositions(ctx, jd, models.PrimaryBodies, s.zodiac)
	if err != nil {
		return nil, err
	}

	snap := &SkySnapshot{
		UTC:       now,
		JulianDay: jd,
		Bodies:    make(map[models.Body]SkyPlacement, len(positions)),
	}
	points := make([]astro.Point, 0, len(models.PrimaryBodies))
	for _, body := range models.PrimaryBodies {
		pos, ok := positions[body]
		if !ok {
			return nil, models.NewInvariantErrorf("missing position for %s", body)
		}
		snap.Bodies[body] = SkyPlacement{
			Position:   astro.ToSign(pos.Longitude),
			Speed:      pos.Speed,
			Retrograde: pos.Retrograde(),
		}
		points = append(points, astro.Point{Name: string(body), Longitude: pos.Longitude})
	}
	snap.Aspects = astro.BuildAspects(points)
	return snap, nil
}
