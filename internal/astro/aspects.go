package astro

import (
	"sort"

	"Sternentyp/internal/domain/models"
)

// AspectDef is one row of an orb table.
type AspectDef struct {
	Type  models.AspectType
	Angle float64
	Orb   float64
}

// MajorAspects is the table used for natal, synastry, composite and
// transit matching. The orb widens to a floor of 8° when either point is
// a luminary or chart angle.
var MajorAspects = []AspectDef{
	{models.Konjunktion, 0, 8},
	{models.Sextil, 60, 6},
	{models.Quadrat, 90, 6},
	{models.Trigon, 120, 6},
	{models.Opposition, 180, 8},
}

// PatternAspects is the tighter table used only by pattern detection.
var PatternAspects = []AspectDef{
	{models.Sextil, 60, 4},
	{models.Quadrat, 90, 5},
	{models.Trigon, 120, 5},
	{models.Opposition, 180, 6},
	{models.Quincunx, 150, 3},
}

const luminaryOrbFloor = 8

var luminaries = map[string]bool{
	string(models.Sonne):     true,
	string(models.Mond):      true,
	string(models.Aszendent): true,
	string(models.MC):        true,
}

// Point is a named longitude fed into the matchers.
type Point struct {
	Name      string
	Longitude float64
}

// matchIn finds the table entry closest to the separation. The smallest
// orb wins; equal orbs fall back to declaration order.
func matchIn(table []AspectDef, sep float64, limit func(AspectDef) float64) (AspectDef, float64, float64, bool) {
	var best AspectDef
	var bestOrb, bestLimit float64
	found := false
	for _, def := range table {
		lim := limit(def)
		orb := sep - def.Angle
		if orb < 0 {
			orb = -orb
		}
		if orb > lim {
			continue
		}
		if !found || orb < bestOrb {
			best, bestOrb, bestLimit, found = def, orb, lim, true
		}
	}
	return best, bestOrb, bestLimit, found
}

// MatchMajor tests one pair against the major table, applying the
// luminary orb floor.
func MatchMajor(a, b Point) (models.Aspect, bool) {
	wide := luminaries[a.Name] || luminaries[b.Name]
	limit := func(def AspectDef) float64 {
		if wide && def.Orb < luminaryOrbFloor {
			return luminaryOrbFloor
		}
		return def.Orb
	}
	sep := Distance(a.Longitude, b.Longitude)
	def, orb, lim, ok := matchIn(MajorAspects, sep, limit)
	if !ok {
		return models.Aspect{}, false
	}
	return models.Aspect{
		Body1:       a.Name,
		Body2:       b.Name,
		Type:        def.Type,
		ExactAngle:  def.Angle,
		ActualAngle: round6(sep),
		Orb:         round6(orb),
		OrbLimit:    lim,
	}, true
}

// MatchPattern tests one pair against the pattern table (no widening).
func MatchPattern(lonA, lonB float64) (models.AspectType, bool) {
	sep := Distance(lonA, lonB)
	def, _, _, ok := matchIn(PatternAspects, sep, func(d AspectDef) float64 { return d.Orb })
	if !ok {
		return "", false
	}
	return def.Type, true
}

// BuildAspects evaluates every unordered pair once, keeps matches,
// deduplicates by (sorted pair, type) and sorts ascending by orb.
func BuildAspects(points []Point) []models.Aspect {
	var out []models.Aspect
	seen := make(map[string]bool)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			asp, ok := MatchMajor(points[i], points[j])
			if !ok {
				continue
			}
			key := pairKey(asp.Body1, asp.Body2) + "|" + string(asp.Type)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, asp)
		}
	}
	sortByOrb(out)
	return out
}

// CrossAspects evaluates the full bipartite product of two disjoint point
// sets, kept directional (a first) and undeduplicated, sorted by orb.
func CrossAspects(a, b []Point) []models.Aspect {
	var out []models.Aspect
	for _, pa := range a {
		for _, pb := range b {
			if asp, ok := MatchMajor(pa, pb); ok {
				out = append(out, asp)
			}
		}
	}
	sortByOrb(out)
	return out
}

func sortByOrb(asps []models.Aspect) {
	sort.SliceStable(asps, func(i, j int) bool { return asps[i].Orb < asps[j].Orb })
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "+" + b
}
