package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"Sternentyp/internal/astro"
	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/pkg/config"
	"Sternentyp/pkg/logger"
	"Sternentyp/pkg/util"
)

// slowMovers are the transiting bodies whose hard aspects contribute to
// the tension score.
var slowMovers = map[string]bool{
	string(models.Saturn): true,
	string(models.Uranus): true,
	string(models.Pluto):  true,
}

// personalTargets are the natal points counted by the tension score.
var personalTargets = map[string]bool{
	string(models.Sonne):     true,
	string(models.Mond):      true,
	string(models.Merkur):    true,
	string(models.Venus):     true,
	string(models.Mars):      true,
	string(models.Aszendent): true,
	string(models.MC):        true,
}

// hardAspects for the tension score.
var hardAspects = map[models.AspectType]bool{
	models.Konjunktion: true,
	models.Quadrat:     true,
	models.Opposition:  true,
}

// TransitScanner sweeps a time window against a natal chart and keeps,
// per (transiting body, natal target, aspect type), the step where the
// orb was tightest.
type TransitScanner struct {
	builder *ChartBuilder
	eph     repository.Ephemeris
	metrics repository.Metrics
	log     *logger.Logger

	defaultStepHours int
	maxEvents        int
	workers          int
}

// NewTransitScanner wires the scanner.
func NewTransitScanner(cfg *config.Config, builder *ChartBuilder, eph repository.Ephemeris, metrics repository.Metrics, log *logger.Logger) *TransitScanner {
	return &TransitScanner{
		builder:          builder,
		eph:              eph,
		metrics:          metrics,
		log:              log,
		defaultStepHours: cfg.Transits.DefaultStepHours,
		maxEvents:        cfg.Transits.MaxEvents,
		workers:          cfg.Transits.Workers,
	}
}

// Scan computes the transit events for the request window.
func (s *TransitScanner) Scan(ctx context.Context, req models.TransitRequest) (result *models.TransitResult, err error) {
	started := time.Now()
	defer func() { recordError(s.metrics, err) }()

	from, ok := util.ParseTime(req.From)
	if !ok {
		return nil, models.NewInputError("from", "invalid timestamp, use RFC3339 or YYYY-MM-DD")
	}
	to, ok := util.ParseTime(req.To)
	if !ok {
		return nil, models.NewInputError("to", "invalid timestamp, use RFC3339 or YYYY-MM-DD")
	}
	from, to = from.UTC(), to.UTC()
	if !to.After(from) {
		return nil, models.NewInputError("to", "window end must be after window start")
	}

	stepHours := req.StepHours
	if stepHours <= 0 {
		stepHours = s.defaultStepHours
	}

	natal, err := s.builder.Build(ctx, req.Natal)
	if err != nil {
		return nil, err
	}

	transiting := make([]models.Body, 0, len(models.PrimaryBodies))
	if len(req.Bodies) > 0 {
		for _, name := range req.Bodies {
			transiting = append(transiting, models.Body(name))
		}
	} else {
		transiting = append(transiting, models.PrimaryBodies...)
	}

	targets := natalTargets(natal)

	// Inclusive sweep: the end instant is always sampled even when the
	// window is not a whole number of steps.
	step := time.Duration(stepHours) * time.Hour
	var steps []time.Time
	for t := from; !t.After(to); t = t.Add(step) {
		steps = append(steps, t)
	}
	if last := steps[len(steps)-1]; !last.Equal(to) {
		steps = append(steps, to)
	}

	stepEvents, err := s.sweep(ctx, steps, transiting, targets, natal.Zodiac)
	if err != nil {
		return nil, err
	}

	// Merge in step order so equal orbs keep the earliest hit.
	type key struct {
		transiting string
		target     string
		aspect     models.AspectType
	}
	best := make(map[key]models.TransitEvent)
	var order []key
	for _, events := range stepEvents {
		for _, ev := range events {
			k := key{ev.Transiting, ev.Target, ev.Type}
			prev, ok := best[k]
			if !ok {
				best[k] = ev
				order = append(order, k)
			} else if ev.Orb < prev.Orb {
				best[k] = ev
			}
		}
	}

	events := make([]models.TransitEvent, 0, len(order))
	for _, k := range order {
		events = append(events, best[k])
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Orb < events[j].Orb })
	if len(events) > s.maxEvents {
		events = events[:s.maxEvents]
	}

	result = &models.TransitResult{
		From:         from,
		To:           to,
		StepHours:    stepHours,
		Events:       events,
		TensionScore: tensionScore(events),
	}

	if s.metrics != nil {
		s.metrics.RecordChart("transits")
		s.metrics.RecordLatency("transits", time.Since(started).Seconds())
	}
	s.log.Debug("transit sweep finished",
		logger.Int("steps", len(steps)),
		logger.Int("events", len(events)))
	return result, nil
}

// sweep evaluates every step, bounded by the worker pool. Results are
// indexed by step so the caller can merge deterministically.
func (s *TransitScanner) sweep(ctx context.Context, steps []time.Time, transiting []models.Body, targets []astro.Point, zodiac models.ZodiacMode) ([][]models.TransitEvent, error) {
	workers := s.workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(steps) {
		workers = len(steps)
	}

	results := make([][]models.TransitEvent, len(steps))
	errs := make([]error, len(steps))
	idxCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				results[i], errs[i] = s.sampleStep(ctx, steps[i], transiting, targets, zodiac)
			}
		}()
	}

	for i := range steps {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			close(idxCh)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(idxCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// sampleStep fetches the transiting positions at one instant and matches
// them against every natal target.
func (s *TransitScanner) sampleStep(ctx context.Context, at time.Time, transiting []models.Body, targets []astro.Point, zodiac models.ZodiacMode) ([]models.TransitEvent, error) {
	positions, err := s.eph.BodyPositions(ctx, astro.JulianDay(at), transiting, zodiac)
	if err != nil {
		return nil, err
	}

	var events []models.TransitEvent
	for _, body := range transiting {
		pos, ok := positions[body]
		if !ok {
			return nil, models.NewInvariantErrorf("missing position for %s", body)
		}
		moving := astro.Point{Name: string(body), Longitude: pos.Longitude}
		for _, target := range targets {
			asp, ok := astro.MatchMajor(moving, target)
			if !ok {
				continue
			}
			events = append(events, models.TransitEvent{
				Transiting:  asp.Body1,
				Target:      asp.Body2,
				Type:        asp.Type,
				ExactAngle:  asp.ExactAngle,
				ActualAngle: asp.ActualAngle,
				Orb:         asp.Orb,
				OrbLimit:    asp.OrbLimit,
				Timestamp:   at,
			})
		}
	}
	return events, nil
}

// natalTargets is the natal inclusion set plus the chart angles, on the
// raw angle longitudes. The south node is skipped, same as in natal
// aspect matching.
func natalTargets(chart *models.Chart) []astro.Point {
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

// tensionScore counts hard aspects from the slow movers onto personal
// points, 12 per hit, capped at 100.
func tensionScore(events []models.TransitEvent) int {
	n := 0
	for _, ev := range events {
		if hardAspects[ev.Type] && slowMovers[ev.Transiting] && personalTargets[ev.Target] {
			n++
		}
	}
	score := n * 12
	if score > 100 {
		score = 100
	}
	return score
}
