package models

// Requests for the chart HTTP endpoints. Defined in domain for consistency
// and reuse; tags drive echo binding, creasty/defaults and validator/v10.

type ChartRequest struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"required,datetime=15:04"`
	Place       string   `json:"place" validate:"omitempty,min=2"`
	Lat         *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon         *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Timezone    string   `json:"timezone" validate:"omitempty"`
	HouseSystem string   `json:"house_system" default:"P" validate:"oneof=P K R C E W B O"`
	Zodiac      string   `json:"zodiac" default:"tropical" validate:"oneof=tropical sidereal"`
}

// HasCoords reports whether explicit coordinates were provided.
func (r *ChartRequest) HasCoords() bool { return r.Lat != nil && r.Lon != nil }

type TransitRequest struct {
	Natal     ChartRequest `json:"natal"`
	From      string       `json:"from" validate:"required"`
	To        string       `json:"to" validate:"required"`
	StepHours int          `json:"step_hours" default:"6" validate:"gte=1,lte=168"`
	Bodies    []string     `json:"bodies" validate:"omitempty,dive,oneof=Sonne Mond Merkur Venus Mars Jupiter Saturn Uranus Neptun Pluto"`
}

type SynastryRequest struct {
	PersonA ChartRequest `json:"person_a"`
	PersonB ChartRequest `json:"person_b"`
}

type CompositeRequest struct {
	PersonA ChartRequest `json:"person_a"`
	PersonB ChartRequest `json:"person_b"`
}
