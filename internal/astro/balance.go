package astro

import (
	"sort"

	"Sternentyp/internal/domain/models"
)

// ComputeBalance counts elements and modalities over the inclusion set
// and emits one detail record per body, in input order.
func ComputeBalance(points []Point) models.Balance {
	b := models.Balance{
		Elements:   map[string]int{"Feuer": 0, "Erde": 0, "Luft": 0, "Wasser": 0},
		Modalities: map[string]int{"Kardinal": 0, "Fix": 0, "Veränderlich": 0},
		Details:    make([]models.BalanceDetail, 0, len(points)),
	}
	for _, p := range points {
		pos := ToSign(p.Longitude)
		el := ElementOf(pos.SignIndex)
		mo := ModalityOf(pos.SignIndex)
		b.Elements[el]++
		b.Modalities[mo]++
		b.Details = append(b.Details, models.BalanceDetail{
			Body:     p.Name,
			Sign:     pos.Sign,
			Element:  el,
			Modality: mo,
		})
	}
	return b
}

// StelliumConfig tunes the cluster search. The span check is an optional
// tightening that is disabled by default.
type StelliumConfig struct {
	MinBodies      int
	MaxSpanEnabled bool
	MaxSpanDeg     float64
}

// DefaultStelliumConfig matches the documented defaults.
func DefaultStelliumConfig() StelliumConfig {
	return StelliumConfig{MinBodies: 3, MaxSpanEnabled: false, MaxSpanDeg: 8}
}

// FindStelliums groups the inclusion set by sign and reports every sign
// holding at least MinBodies occupants, sorted by count descending (sign
// order breaks ties). The span of a cluster is the arc between its
// extreme members; bodies in one sign never straddle the 0° seam, so a
// plain min/max of degree-in-sign suffices.
func FindStelliums(points []Point, cfg StelliumConfig) []models.Stellium {
	if cfg.MinBodies <= 0 {
		cfg.MinBodies = 3
	}

	type cluster struct {
		signIndex int
		bodies    []string
		minDeg    float64
		maxDeg    float64
	}
	bySign := make(map[int]*cluster)
	for _, p := range points {
		pos := ToSign(p.Longitude)
		c, ok := bySign[pos.SignIndex]
		if !ok {
			c = &cluster{signIndex: pos.SignIndex, minDeg: pos.Degree, maxDeg: pos.Degree}
			bySign[pos.SignIndex] = c
		}
		c.bodies = append(c.bodies, p.Name)
		if pos.Degree < c.minDeg {
			c.minDeg = pos.Degree
		}
		if pos.Degree > c.maxDeg {
			c.maxDeg = pos.Degree
		}
	}

	var out []models.Stellium
	for _, c := range bySign {
		if len(c.bodies) < cfg.MinBodies {
			continue
		}
		span := round6(c.maxDeg - c.minDeg)
		if cfg.MaxSpanEnabled && span > cfg.MaxSpanDeg {
			continue
		}
		out = append(out, models.Stellium{
			Sign:    ZodiacSigns[c.signIndex],
			Count:   len(c.bodies),
			Bodies:  c.bodies,
			SpanDeg: span,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return signIndexOf(out[i].Sign) < signIndexOf(out[j].Sign)
	})
	return out
}

func signIndexOf(sign string) int {
	for i, s := range ZodiacSigns {
		if s == sign {
			return i
		}
	}
	return len(ZodiacSigns)
}
