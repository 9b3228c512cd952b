package models

import "time"

// EclipticPosition is a raw ephemeris result: longitude in [0,360) and
// signed daily speed along the ecliptic.
type EclipticPosition struct {
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

// Retrograde reports apparent backward motion.
func (p EclipticPosition) Retrograde() bool { return p.Speed < 0 }

// ZodiacPosition locates a longitude within the twelve signs.
type ZodiacPosition struct {
	Sign      string  `json:"zeichen"`
	SignIndex int     `json:"zeichen_index"`
	Degree    float64 `json:"grad"`
	Longitude float64 `json:"ecliptic_longitude"`
}

// CelestialBody is a fully derived body placement in a chart.
type CelestialBody struct {
	Name       Body           `json:"name"`
	Longitude  float64        `json:"longitude"`
	Speed      float64        `json:"speed"`
	Retrograde bool           `json:"retrograde"`
	Position   ZodiacPosition `json:"position"`
	House      int            `json:"haus"`
}

// HouseCusp is the starting longitude of one of the twelve houses.
type HouseCusp struct {
	House    int            `json:"haus"`
	Position ZodiacPosition `json:"position"`
}

// AspectType names an angular relationship ("Konjunktion", "Quadrat", ...).
type AspectType string

const (
	Konjunktion AspectType = "Konjunktion"
	Sextil      AspectType = "Sextil"
	Quadrat     AspectType = "Quadrat"
	Trigon      AspectType = "Trigon"
	Opposition  AspectType = "Opposition"
	Quincunx    AspectType = "Quincunx"
)

// Aspect is a matched angular relationship between two chart points.
// For natal and composite lists the pair is unordered; for synastry
// Body1 belongs to chart A and Body2 to chart B.
type Aspect struct {
	Body1       string     `json:"body_1"`
	Body2       string     `json:"body_2"`
	Type        AspectType `json:"aspect"`
	ExactAngle  float64    `json:"exact_angle"`
	ActualAngle float64    `json:"actual_angle"`
	Orb         float64    `json:"orb"`
	OrbLimit    float64    `json:"orb_limit"`
}

// PatternKind enumerates the detected aspect configurations.
type PatternKind string

const (
	GrossesTrigon      PatternKind = "Großes Trigon"
	TQuadrat           PatternKind = "T-Quadrat"
	MystischesRechteck PatternKind = "Mystisches Rechteck"
	Drachen            PatternKind = "Drachen"
	Yod                PatternKind = "Yod"
)

// AspectPattern is a named geometric configuration. Apex is set for the
// directional kinds (T-Quadrat, Yod, Drachen) and empty otherwise.
type AspectPattern struct {
	Kind    PatternKind `json:"muster"`
	Members []string    `json:"beteiligte"`
	Apex    string      `json:"apex,omitempty"`
}

// BalanceDetail records one body's sign, element and modality.
type BalanceDetail struct {
	Body     string `json:"body"`
	Sign     string `json:"zeichen"`
	Element  string `json:"element"`
	Modality string `json:"modalitaet"`
}

// Balance aggregates element and modality counts over the inclusion set.
type Balance struct {
	Elements   map[string]int  `json:"elemente"`
	Modalities map[string]int  `json:"modalitaeten"`
	Details    []BalanceDetail `json:"details"`
}

// Stellium is a cluster of three or more bodies in one sign.
type Stellium struct {
	Sign    string   `json:"zeichen"`
	Count   int      `json:"anzahl"`
	Bodies  []string `json:"bodies"`
	SpanDeg float64  `json:"span_deg"`
}

// Chart is a complete, immutable natal chart. It is built once by the
// chart builder and never mutated afterwards.
type Chart struct {
	UTC         time.Time  `json:"utc"`
	LocalTime   string     `json:"local_time"`
	Timezone    string     `json:"timezone"`
	Latitude    float64    `json:"lat"`
	Longitude   float64    `json:"lon"`
	Place       string     `json:"place,omitempty"`
	HouseSystem string     `json:"house_system"`
	Zodiac      ZodiacMode `json:"zodiac"`
	JulianDay   float64    `json:"jd_ut"`

	Ascendant ZodiacPosition         `json:"ascendant"`
	Midheaven ZodiacPosition         `json:"mc"`
	Cusps     []HouseCusp            `json:"houses"`
	Bodies    map[Body]CelestialBody `json:"bodies"`

	// Raw angle longitudes. The ZodiacPosition fields above are rounded
	// for display; comparisons must use these.
	AscendantRaw float64 `json:"-"`
	MidheavenRaw float64 `json:"-"`

	Aspects   []Aspect        `json:"aspects"`
	Patterns  []AspectPattern `json:"patterns"`
	Balance   Balance         `json:"balance"`
	Stelliums []Stellium      `json:"stelliums"`
}

// CuspLongitudes returns the twelve cusp longitudes indexed by house-1.
func (c *Chart) CuspLongitudes() [12]float64 {
	var out [12]float64
	for _, hc := range c.Cusps {
		if hc.House >= 1 && hc.House <= 12 {
			out[hc.House-1] = hc.Position.Longitude
		}
	}
	return out
}

// TransitEvent is the retained minimum-orb hit for one
// (transiting body, natal target, aspect type) key.
type TransitEvent struct {
	Transiting  string     `json:"transiting"`
	Target      string     `json:"natal"`
	Type        AspectType `json:"aspect"`
	ExactAngle  float64    `json:"exact_angle"`
	ActualAngle float64    `json:"actual_angle"`
	Orb         float64    `json:"orb"`
	OrbLimit    float64    `json:"orb_limit"`
	Timestamp   time.Time  `json:"peak_utc"`
}

// TransitResult is the outcome of a transit sweep.
type TransitResult struct {
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	StepHours    int            `json:"step_hours"`
	Events       []TransitEvent `json:"events"`
	TensionScore int            `json:"tension_score"`
}

// SynastryResult holds directional cross-aspects (chart A point first)
// and the house overlay of B's bodies in A's houses.
type SynastryResult struct {
	Aspects      []Aspect       `json:"aspects"`
	HouseOverlay map[string]int `json:"house_overlay"`
}

// CompositeChart is a midpoint chart derived from two charts. It carries
// no house cusps; Note states that limitation explicitly.
type CompositeChart struct {
	Bodies    map[Body]ZodiacPosition `json:"bodies"`
	Ascendant ZodiacPosition          `json:"ascendant"`
	Midheaven ZodiacPosition          `json:"mc"`
	Aspects   []Aspect                `json:"aspects"`
	Note      string                  `json:"note"`
}
