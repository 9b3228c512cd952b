package usecase

import (
	"context"
	"math"
	"time"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/pkg/config"
	"Sternentyp/pkg/logger"
)

// ChartBuilder derives complete natal charts from birth data. The same
// input always produces the same chart; nothing is cached or mutated
// after construction.
type ChartBuilder struct {
	eph     repository.Ephemeris
	geo     repository.Geocoder
	tz      repository.TimezoneResolver
	metrics repository.Metrics
	log     *logger.Logger

	defaultHouseSystem string
	defaultZodiac      models.ZodiacMode
	stellium           astro.StelliumConfig
}

// NewChartBuilder wires the builder with its collaborators.
func NewChartBuilder(
	cfg *config.Config,
	eph repository.Ephemeris,
	geo repository.Geocoder,
	tz repository.TimezoneResolver,
	metrics repository.Metrics,
	log *logger.Logger,
) *ChartBuilder {
	stellium := astro.DefaultStelliumConfig()
	if cfg.Chart.Stellium.MinBodies > 0 {
		stellium.MinBodies = cfg.Chart.Stellium.MinBodies
	}
	stellium.MaxSpanEnabled = cfg.Chart.Stellium.MaxSpanEnabled
	if cfg.Chart.Stellium.MaxSpanDeg > 0 {
		stellium.MaxSpanDeg = cfg.Chart.Stellium.MaxSpanDeg
	}
	return &ChartBuilder{
		eph:                eph,
		geo:                geo,
		tz:                 tz,
		metrics:            metrics,
		log:                log,
		defaultHouseSystem: cfg.Chart.DefaultHouseSystem,
		defaultZodiac:      models.ZodiacMode(cfg.Chart.DefaultZodiac),
		stellium:           stellium,
	}
}

// Build computes a natal chart for the request.
func (b *ChartBuilder) Build(ctx context.Context, req models.ChartRequest) (chart *models.Chart, err error) {
	started := time.Now()
	defer func() { recordError(b.metrics, err) }()

	lat, lon, place, err := b.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	tzID := req.Timezone
	if tzID == "" {
		tzID, err = b.tz.Lookup(lat, lon)
		if err != nil {
			return nil, err
		}
	}

	utc, err := astro.ResolveLocalTime(req.Date, req.Time, tzID)
	if err != nil {
		return nil, err
	}
	jd := astro.JulianDay(utc)

	houseSystem := req.HouseSystem
	if houseSystem == "" {
		houseSystem = b.defaultHouseSystem
	}
	zodiac := models.ZodiacMode(req.Zodiac)
	if zodiac == "" {
		zodiac = b.defaultZodiac
	}

	houses, err := b.eph.Houses(ctx, jd, lat, lon, houseSystem)
	if err != nil {
		return nil, err
	}
	for i, c := range houses.Cusps {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, models.NewInvariantErrorf("cusp %d is not finite", i+1)
		}
	}

	positions, err := b.bodyPositions(ctx, jd, zodiac)
	if err != nil {
		return nil, err
	}

	chart = &models.Chart{
		UTC:         utc,
		LocalTime:   req.Date + " " + req.Time,
		Timezone:    tzID,
		Latitude:    lat,
		Longitude:   lon,
		Place:       place,
		HouseSystem: houseSystem,
		Zodiac:      zodiac,
		JulianDay:   jd,
		Ascendant:   astro.ToSign(houses.Ascendant),
		Midheaven:   astro.ToSign(houses.Midheaven),
		Bodies:      make(map[models.Body]models.CelestialBody, len(positions)),

		AscendantRaw: houses.Ascendant,
		MidheavenRaw: houses.Midheaven,
	}

	chart.Cusps = make([]models.HouseCusp, 12)
	for i, c := range houses.Cusps {
		chart.Cusps[i] = models.HouseCusp{House: i + 1, Position: astro.ToSign(c)}
	}

	for _, body := range models.ChartBodies {
		pos, ok := positions[body]
		if !ok {
			return nil, models.NewInvariantErrorf("missing position for %s", body)
		}
		chart.Bodies[body] = models.CelestialBody{
			Name:       body,
			Longitude:  pos.Longitude,
			Speed:      pos.Speed,
			Retrograde: pos.Retrograde(),
			Position:   astro.ToSign(pos.Longitude),
			House:      astro.HouseOf(pos.Longitude, houses.Cusps),
		}
	}

	chart.Aspects = astro.BuildAspects(aspectPoints(chart))
	chart.Patterns = astro.DetectPatterns(primaryPoints(positions))

	inclusion := bodyPoints(positions)
	chart.Balance = astro.ComputeBalance(inclusion)
	chart.Stelliums = astro.FindStelliums(inclusion, b.stellium)

	if b.metrics != nil {
		b.metrics.RecordChart("chart")
		b.metrics.RecordLatency("chart", time.Since(started).Seconds())
	}
	b.log.Debug("chart built",
		logger.String("timezone", tzID),
		logger.Float64("jd", jd),
		logger.Int("aspects", len(chart.Aspects)))
	return chart, nil
}

// resolveLocation prefers explicit coordinates over the place name.
func (b *ChartBuilder) resolveLocation(ctx context.Context, req models.ChartRequest) (float64, float64, string, error) {
	if req.HasCoords() {
		return *req.Lat, *req.Lon, req.Place, nil
	}
	if req.Place == "" {
		return 0, 0, "", models.NewInputError("place", "either place or lat/lon is required")
	}
	lat, lon, err := b.geo.Resolve(ctx, req.Place)
	if err != nil {
		return 0, 0, "", err
	}
	return lat, lon, req.Place, nil
}

// bodyPositions fetches the ephemeris set and derives the south node,
// which sits exactly opposite the north node and is never requested
// from the sidecar.
func (b *ChartBuilder) bodyPositions(ctx context.Context, jd float64, zodiac models.ZodiacMode) (map[models.Body]models.EclipticPosition, error) {
	requested := make([]models.Body, 0, len(models.ChartBodies)-1)
	for _, body := range models.ChartBodies {
		if body != models.Suedknoten {
			requested = append(requested, body)
		}
	}

	positions, err := b.eph.BodyPositions(ctx, jd, requested, zodiac)
	if err != nil {
		return nil, err
	}

	node, ok := positions[models.Mondknoten]
	if !ok {
		return nil, models.NewInvariantErrorf("missing position for %s", models.Mondknoten)
	}
	positions[models.Suedknoten] = models.EclipticPosition{
		Longitude: astro.Normalize(node.Longitude + 180),
		Speed:     node.Speed,
	}
	return positions, nil
}

// aspectPoints is the inclusion set plus the chart angles, using the raw
// angle longitudes. The south node is skipped: it mirrors the north node
// exactly, so every aspect to it duplicates one already reported for
// Mondknoten (Konjunktion as Opposition, Sextil as Trigon, and so on).
func aspectPoints(chart *models.Chart) []astro.Point {
	points := make([]astro.Point, 0, len(models.ChartBodies)+1)
	for _, body := range models.ChartBodies {
		if body == models.Suedknoten {
			continue
		}
		points = append(points, astro.Point{Name: string(body), Longitude: chart.Bodies[body].Longitude})
	}
	points = append(points,
		astro.Point{Name: string(models.Aszendent), Longitude: chart.AscendantRaw},
		astro.Point{Name: string(models.MC), Longitude: chart.MidheavenRaw},
	)
	return points
}

// primaryPoints feeds pattern detection: the ten classical planets only.
func primaryPoints(positions map[models.Body]models.EclipticPosition) []astro.Point {
	points := make([]astro.Point, 0, len(models.PrimaryBodies))
	for _, body := range models.PrimaryBodies {
		points = append(points, astro.Point{Name: string(body), Longitude: positions[body].Longitude})
	}
	return points
}

// bodyPoints is the inclusion set in canonical order.
func bodyPoints(positions map[models.Body]models.EclipticPosition) []astro.Point {
	points := make([]astro.Point, 0, len(models.ChartBodies))
	for _, body := range models.ChartBodies {
		points = append(points, astro.Point{Name: string(body), Longitude: positions[body].Longitude})
	}
	return points
}
