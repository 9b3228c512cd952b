package usecase

import (
	"context"
	"time"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/pkg/logger"
)

// compositeNote explains the structural limitation of midpoint charts.
const compositeNote = "Composite-Horoskop aus Mittelpunkten; Häuser sind nicht definiert."

// maxCrossAspects caps the synastry and composite aspect lists.
const maxCrossAspects = 200

// RelationshipAnalyzer compares two charts: directional cross-aspects,
// the house overlay, and the midpoint composite.
type RelationshipAnalyzer struct {
	builder *ChartBuilder
	metrics repository.Metrics
	log     *logger.Logger
}

// NewRelationshipAnalyzer wires the analyzer.
func NewRelationshipAnalyzer(builder *ChartBuilder, metrics repository.Metrics, log *logger.Logger) *RelationshipAnalyzer {
	return &RelationshipAnalyzer{builder: builder, metrics: metrics, log: log}
}

// Synastry computes cross-aspects from chart A onto chart B plus the
// overlay of B's bodies in A's houses.
func (r *RelationshipAnalyzer) Synastry(ctx context.Context, req models.SynastryRequest) (result *models.SynastryResult, err error) {
	started := time.Now()
	defer func() { recordError(r.metrics, err) }()

	chartA, chartB, err := r.buildPair(ctx, req.PersonA, req.PersonB)
	if err != nil {
		return nil, err
	}

	aspects := astro.CrossAspects(chartPoints(chartA), chartPoints(chartB))
	if len(aspects) > maxCrossAspects {
		aspects = aspects[:maxCrossAspects]
	}

	overlay := make(map[string]int, len(models.ChartBodies))
	cusps := chartA.CuspLongitudes()
	for _, body := range models.ChartBodies {
		overlay[string(body)] = astro.HouseOf(chartB.Bodies[body].Longitude, cusps)
	}

	if r.metrics != nil {
		r.metrics.RecordChart("synastry")
		r.metrics.RecordLatency("synastry", time.Since(started).Seconds())
	}
	return &models.SynastryResult{Aspects: aspects, HouseOverlay: overlay}, nil
}

// Composite builds a midpoint chart of the pair. Midpoints take the
// shorter arc; house cusps are deliberately absent.
func (r *RelationshipAnalyzer) Composite(ctx context.Context, req models.CompositeRequest) (composite *models.CompositeChart, err error) {
	started := time.Now()
	defer func() { recordError(r.metrics, err) }()

	chartA, chartB, err := r.buildPair(ctx, req.PersonA, req.PersonB)
	if err != nil {
		return nil, err
	}

	composite = &models.CompositeChart{
		Bodies: make(map[models.Body]models.ZodiacPosition, len(models.ChartBodies)),
		Note:   compositeNote,
	}

	points := make([]astro.Point, 0, len(models.ChartBodies)+1)
	for _, body := range models.ChartBodies {
		mid := astro.Midpoint(chartA.Bodies[body].Longitude, chartB.Bodies[body].Longitude)
		composite.Bodies[body] = astro.ToSign(mid)
		if body == models.Suedknoten {
			continue
		}
		points = append(points, astro.Point{Name: string(body), Longitude: mid})
	}

	asc := astro.Midpoint(chartA.AscendantRaw, chartB.AscendantRaw)
	mc := astro.Midpoint(chartA.MidheavenRaw, chartB.MidheavenRaw)
	composite.Ascendant = astro.ToSign(asc)
	composite.Midheaven = astro.ToSign(mc)
	points = append(points,
		astro.Point{Name: string(models.Aszendent), Longitude: asc},
		astro.Point{Name: string(models.MC), Longitude: mc},
	)

	composite.Aspects = astro.BuildAspects(points)
	if len(composite.Aspects) > maxCrossAspects {
		composite.Aspects = composite.Aspects[:maxCrossAspects]
	}

	if r.metrics != nil {
		r.metrics.RecordChart("composite")
		r.metrics.RecordLatency("composite", time.Since(started).Seconds())
	}
	return composite, nil
}

// buildPair computes both natal charts; A's failure surfaces first.
func (r *RelationshipAnalyzer) buildPair(ctx context.Context, a, b models.ChartRequest) (*models.Chart, *models.Chart, error) {
	chartA, err := r.builder.Build(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	chartB, err := r.builder.Build(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return chartA, chartB, nil
}

// chartPoints is the aspect point set for one chart, built on the raw
// angle longitudes. Matches the natal inclusion rules: the south node is
// omitted because it mirrors the north node.
func chartPoints(chart *models.Chart) []astro.Point {
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
