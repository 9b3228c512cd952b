package astro

import (
	"sort"
	"strings"

	"Sternentyp/internal/domain/models"
)

// DetectPatterns searches the pattern-table adjacency of the given points
// for named configurations. Intended input is the ten primary bodies; the
// enumeration is explicit over index combinations, so cost is bounded by
// C(n,4). Results are deduplicated by (kind, member set) and returned in
// a canonical order independent of input order.
func DetectPatterns(points []Point) []models.AspectPattern {
	n := len(points)
	adj := make([][]models.AspectType, n)
	for i := range adj {
		adj[i] = make([]models.AspectType, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if t, ok := MatchPattern(points[i].Longitude, points[j].Longitude); ok {
				adj[i][j], adj[j][i] = t, t
			}
		}
	}

	has := func(i, j int, t models.AspectType) bool { return adj[i][j] == t }
	name := func(i int) string { return points[i].Name }

	var found []models.AspectPattern
	var trines [][3]int

	// Three-point shapes: every 3-subset, all cyclic role assignments.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if has(i, j, models.Trigon) && has(j, k, models.Trigon) && has(i, k, models.Trigon) {
					trines = append(trines, [3]int{i, j, k})
					found = append(found, pattern(models.GrossesTrigon, "", name(i), name(j), name(k)))
				}
				for _, r := range [][3]int{{i, j, k}, {j, i, k}, {k, i, j}} {
					apex, b, c := r[0], r[1], r[2]
					if has(b, c, models.Opposition) && has(apex, b, models.Quadrat) && has(apex, c, models.Quadrat) {
						found = append(found, pattern(models.TQuadrat, name(apex), name(i), name(j), name(k)))
					}
					if has(b, c, models.Sextil) && has(apex, b, models.Quincunx) && has(apex, c, models.Quincunx) {
						found = append(found, pattern(models.Yod, name(apex), name(i), name(j), name(k)))
					}
				}
			}
		}
	}

	// Drachen: extend each grand trine by a point opposing one vertex and
	// sextile to the other two. All three opposed-vertex choices.
	for _, tr := range trines {
		for vi := 0; vi < 3; vi++ {
			v := tr[vi]
			o1, o2 := tr[(vi+1)%3], tr[(vi+2)%3]
			for p := 0; p < n; p++ {
				if p == tr[0] || p == tr[1] || p == tr[2] {
					continue
				}
				if has(p, v, models.Opposition) && has(p, o1, models.Sextil) && has(p, o2, models.Sextil) {
					found = append(found, pattern(models.Drachen, name(p), name(tr[0]), name(tr[1]), name(tr[2]), name(p)))
				}
			}
		}
	}

	// Mystisches Rechteck: 4-subsets admitting two oppositions plus
	// trine/sextile cross pairs in either consistent assignment.
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					if mysticRectangle(has, a, b, c, d) {
						found = append(found, pattern(models.MystischesRechteck, "", name(a), name(b), name(c), name(d)))
					}
				}
			}
		}
	}

	return dedupePatterns(found)
}

// mysticRectangle checks all pairings of {a,b,c,d} into two opposition
// pairs, with the remaining pairs forming two trines and two sextiles.
func mysticRectangle(has func(int, int, models.AspectType) bool, a, b, c, d int) bool {
	pairings := [3][4]int{
		{a, b, c, d}, // opp (a,b) and (c,d)
		{a, c, b, d},
		{a, d, b, c},
	}
	for _, p := range pairings {
		p1, p2, q1, q2 := p[0], p[1], p[2], p[3]
		if !has(p1, p2, models.Opposition) || !has(q1, q2, models.Opposition) {
			continue
		}
		if has(p1, q1, models.Trigon) && has(p2, q2, models.Trigon) &&
			has(p1, q2, models.Sextil) && has(p2, q1, models.Sextil) {
			return true
		}
		if has(p1, q1, models.Sextil) && has(p2, q2, models.Sextil) &&
			has(p1, q2, models.Trigon) && has(p2, q1, models.Trigon) {
			return true
		}
	}
	return false
}

func pattern(kind models.PatternKind, apex string, members ...string) models.AspectPattern {
	uniq := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if !seen[m] {
			seen[m] = true
			uniq = append(uniq, m)
		}
	}
	sort.Strings(uniq)
	return models.AspectPattern{Kind: kind, Members: uniq, Apex: apex}
}

func dedupePatterns(in []models.AspectPattern) []models.AspectPattern {
	seen := make(map[string]bool, len(in))
	out := make([]models.AspectPattern, 0, len(in))
	for _, p := range in {
		key := string(p.Kind) + "|" + strings.Join(p.Members, ",")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return strings.Join(out[i].Members, ",") < strings.Join(out[j].Members, ",")
	})
	return out
}
