package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sternentyp/internal/domain/models"
)

func TestLookup(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want string
	}{
		{"berlin", 52.52, 13.405, "Europe/Berlin"},
		{"new york", 40.7128, -74.006, "America/New_York"},
		{"tokyo", 35.6762, 139.6503, "Asia/Tokyo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Lookup(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupOutOfRange(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	_, err = r.Lookup(95, 0)
	var inputErr *models.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "lat", inputErr.Field)

	_, err = r.Lookup(0, 200)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "lon", inputErr.Field)
}
