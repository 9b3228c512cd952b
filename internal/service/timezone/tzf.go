package timezone

import (
	"fmt"

	"github.com/ringsaturn/tzf"

	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
)

// Resolver maps coordinates to IANA timezone identifiers using an
// embedded timezone boundary index. No network round trip involved.
type Resolver struct {
	finder tzf.F
}

var _ repository.TimezoneResolver = (*Resolver)(nil)

// NewResolver builds the embedded timezone index. The index load is
// expensive, construct once and share.
func NewResolver() (*Resolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("timezone index: %w", err)
	}
	return &Resolver{finder: finder}, nil
}

// Lookup returns the IANA identifier for the coordinates. Coordinates
// that map to no zone (open ocean) are an input problem, not a default.
func (r *Resolver) Lookup(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 {
		return "", models.NewInputErrorf("lat", "latitude %g out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return "", models.NewInputErrorf("lon", "longitude %g out of range [-180, 180]", lon)
	}

	name := r.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return "", models.NewInputErrorf("place", "no timezone found for coordinates (%g, %g)", lat, lon)
	}
	return name, nil
}
