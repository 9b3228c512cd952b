package models

// Body identifies a celestial body or chart point by its German name,
// matching the ephemeris sidecar's vocabulary.
type Body string

const (
	Sonne   Body = "Sonne"
	Mond    Body = "Mond"
	Merkur  Body = "Merkur"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
	Uranus  Body = "Uranus"
	Neptun  Body = "Neptun"
	Pluto   Body = "Pluto"

	Chiron     Body = "Chiron"
	Lilith     Body = "Lilith"
	Mondknoten Body = "Mondknoten"
	Suedknoten Body = "Südknoten"

	Aszendent Body = "Aszendent"
	MC        Body = "MC"
)

// PrimaryBodies are the ten classical planets, in canonical order.
// Pattern detection and transit defaults operate on this set only.
var PrimaryBodies = []Body{
	Sonne, Mond, Merkur, Venus, Mars,
	Jupiter, Saturn, Uranus, Neptun, Pluto,
}

// ExtraBodies are the additional points carried in charts and the
// balance/stellium inclusion set. Südknoten is derived from Mondknoten
// (antipodal) and never requested from the ephemeris.
var ExtraBodies = []Body{Chiron, Lilith, Mondknoten, Suedknoten}

// ChartBodies is the full inclusion set, canonical order.
var ChartBodies = append(append([]Body{}, PrimaryBodies...), ExtraBodies...)

// IsPrimary reports whether b is one of the ten classical planets.
func IsPrimary(b Body) bool {
	for _, p := range PrimaryBodies {
		if p == b {
			return true
		}
	}
	return false
}

// ZodiacMode selects the reference frame for ecliptic longitudes.
type ZodiacMode string

const (
	Tropical ZodiacMode = "tropical"
	Sidereal ZodiacMode = "sidereal"
)
