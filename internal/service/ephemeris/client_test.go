package ephemeris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sternentyp/internal/domain/models"
	"Sternentyp/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Ephemeris.ServiceURL = srv.URL
	cfg.Ephemeris.Timeout = 2 * time.Second
	cfg.Ephemeris.RetryAttempts = 1
	return NewClient(cfg), srv
}

func TestBodyPositions(t *testing.T) {
	var gotReq positionsRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/positions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"positions": map[string]interface{}{
				"Sonne": map[string]float64{"longitude": 84.5, "speed": 0.957},
				"Mond":  map[string]float64{"longitude": 210.2, "speed": 13.1},
			},
		})
	}))

	positions, err := client.BodyPositions(context.Background(), 2451545.0,
		[]models.Body{models.Sonne, models.Mond}, models.Tropical)
	require.NoError(t, err)

	assert.Equal(t, 2451545.0, gotReq.JulianDay)
	assert.Equal(t, []string{"Sonne", "Mond"}, gotReq.Bodies)
	assert.Equal(t, "tropical", gotReq.Zodiac)

	assert.InDelta(t, 84.5, positions[models.Sonne].Longitude, 1e-9)
	assert.InDelta(t, 13.1, positions[models.Mond].Speed, 1e-9)
}

func TestBodyPositionsMissingBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"positions": map[string]interface{}{},
		})
	}))

	_, err := client.BodyPositions(context.Background(), 2451545.0,
		[]models.Body{models.Sonne}, models.Tropical)
	require.Error(t, err)

	var invErr *models.InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestBodyPositionsOutage(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.BodyPositions(context.Background(), 2451545.0,
		[]models.Body{models.Sonne}, models.Tropical)
	require.Error(t, err)

	var collErr *models.CollaboratorError
	require.ErrorAs(t, err, &collErr)
	assert.Equal(t, "ephemeris", collErr.Collaborator)
}

func TestHouses(t *testing.T) {
	cusps := make([]float64, 12)
	for i := range cusps {
		cusps[i] = float64(i * 30)
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/houses", r.URL.Path)
		json.NewEncoder(w).Encode(housesResponse{
			Cusps:     cusps,
			Ascendant: 0,
			Midheaven: 270,
		})
	}))

	result, err := client.Houses(context.Background(), 2451545.0, 52.52, 13.405, "P")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Cusps[0])
	assert.Equal(t, 330.0, result.Cusps[11])
	assert.Equal(t, 270.0, result.Midheaven)
}

func TestHousesBadCardinality(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(housesResponse{Cusps: []float64{0, 30, 60}})
	}))

	_, err := client.Houses(context.Background(), 2451545.0, 52.52, 13.405, "P")
	require.Error(t, err)

	var invErr *models.InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestRetryRecovers(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"positions": map[string]interface{}{
				"Sonne": map[string]float64{"longitude": 10, "speed": 1},
			},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Ephemeris.ServiceURL = srv.URL
	cfg.Ephemeris.Timeout = 2 * time.Second
	cfg.Ephemeris.RetryAttempts = 3

	client := NewClient(cfg)
	pos, err := client.BodyPosition(context.Background(), 2451545.0, models.Sonne, models.Tropical)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.InDelta(t, 10.0, pos.Longitude, 1e-9)
}
