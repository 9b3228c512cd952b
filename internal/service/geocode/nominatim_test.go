package geocode

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
	"Sternentyp/pkg/cache"
	"Sternentyp/pkg/config"
	"Sternentyp/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newTestGeocoder(t *testing.T, handler http.Handler) (*NominatimClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Geocoder.BaseURL = srv.URL
	cfg.Geocoder.UserAgent = "sternentyp-test"
	cfg.Geocoder.Language = "de"
	cfg.Geocoder.Timeout = 2 * time.Second
	cfg.Geocoder.CacheTTL = time.Hour
	cfg.Geocoder.RateCapacity = 100
	cfg.Geocoder.RateRefill = 100

	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(16))
	return NewNominatimClient(cfg, mem, nil, testLogger(t)), srv
}

func TestResolve(t *testing.T) {
	var gotQuery, gotUA string
	client, _ := newTestGeocoder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode([]searchResult{
			{Lat: "52.5170365", Lon: "13.3888599", DisplayName: "Berlin, Deutschland"},
		})
	}))

	lat, lon, err := client.Resolve(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", gotQuery)
	assert.Equal(t, "sternentyp-test", gotUA)
	assert.InDelta(t, 52.5170365, lat, 1e-6)
	assert.InDelta(t, 13.3888599, lon, 1e-6)
}

func TestResolveCaches(t *testing.T) {
	calls := 0
	client, _ := newTestGeocoder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]searchResult{{Lat: "48.1371", Lon: "11.5754"}})
	}))

	for i := 0; i < 3; i++ {
		lat, _, err := client.Resolve(context.Background(), "München")
		require.NoError(t, err)
		assert.InDelta(t, 48.1371, lat, 1e-6)
	}
	assert.Equal(t, 1, calls, "second and third lookup should hit the cache")
}

func TestResolveNoMatch(t *testing.T) {
	client, _ := newTestGeocoder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]searchResult{})
	}))

	_, _, err := client.Resolve(context.Background(), "Atlantis-Unterwasserstadt")
	require.Error(t, err)

	var inputErr *models.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "place", inputErr.Field)
}

func TestResolveEmptyPlace(t *testing.T) {
	client, _ := newTestGeocoder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty place")
	}))

	_, _, err := client.Resolve(context.Background(), "   ")
	var inputErr *models.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestResolveOutage(t *testing.T) {
	client, srv := newTestGeocoder(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, _, err := client.Resolve(context.Background(), "Hamburg")
	require.Error(t, err)

	var collErr *models.CollaboratorError
	require.ErrorAs(t, err, &collErr)
	assert.Equal(t, "geocoder", collErr.Collaborator)
}
