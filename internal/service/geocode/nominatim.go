package geocode

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/internal/service/ratelimit"
	"Sternentyp/pkg/cache"
	"Sternentyp/pkg/config"
	xhttp "Sternentyp/pkg/http"
	"Sternentyp/pkg/logger"
)

const rateKey = "nominatim"

// NominatimClient resolves place names against a Nominatim instance.
// Lookups are rate limited (the public instance allows one request per
// second) and results are cached, place names rarely move.
type NominatimClient struct {
	baseURL   string
	userAgent string
	language  string
	cacheTTL  time.Duration
	capacity  float64
	refill    float64

	client  *xhttp.Client
	limiter *ratelimit.Limiter
	cache   cache.Service
	metrics repository.Metrics
	log     *logger.Logger
}

var _ repository.Geocoder = (*NominatimClient)(nil)

// NewNominatimClient builds a geocoder from config.
func NewNominatimClient(cfg *config.Config, c cache.Service, m repository.Metrics, log *logger.Logger) *NominatimClient {
	timeout := cfg.Geocoder.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimClient{
		baseURL:   strings.TrimRight(cfg.Geocoder.BaseURL, "/"),
		userAgent: cfg.Geocoder.UserAgent,
		language:  cfg.Geocoder.Language,
		cacheTTL:  cfg.Geocoder.CacheTTL,
		capacity:  cfg.Geocoder.RateCapacity,
		refill:    cfg.Geocoder.RateRefill,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:   ratelimit.New(),
		cache:     c,
		metrics:   m,
		log:       log,
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type cachedPlace struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Resolve maps a place name to coordinates. An unknown place is an
// InputError on the place field; a backend outage is a CollaboratorError.
func (g *NominatimClient) Resolve(ctx context.Context, place string) (float64, float64, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return 0, 0, models.NewInputError("place", "place name is empty")
	}

	key := cache.Key("geocode", strings.ToLower(place))
	if g.cache != nil {
		var hit cachedPlace
		if err := g.cache.Get(ctx, key, &hit); err == nil {
			g.recordCache(true)
			return hit.Lat, hit.Lon, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			g.log.Warn("geocode cache read failed", logger.Error(err))
		}
		g.recordCache(false)
	}

	if err := g.waitForToken(ctx); err != nil {
		return 0, 0, err
	}

	var results []searchResult
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    g.baseURL + "/search",
		Headers: map[string]string{
			"User-Agent": g.userAgent,
		},
		QueryParams: map[string][]string{
			"q":               {place},
			"format":          {"json"},
			"limit":           {"1"},
			"accept-language": {g.language},
		},
	}, &results)
	if err != nil {
		return 0, 0, models.NewCollaboratorError("geocoder", err)
	}

	if len(results) == 0 {
		return 0, 0, models.NewInputErrorf("place", "no match for '%s'", place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, models.NewCollaboratorError("geocoder", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, models.NewCollaboratorError("geocoder", err)
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, cachedPlace{Lat: lat, Lon: lon}, g.cacheTTL); err != nil {
			g.log.Warn("geocode cache write failed", logger.Error(err))
		}
	}

	g.log.Debug("geocoded place",
		logger.String("place", place),
		logger.Float64("lat", lat),
		logger.Float64("lon", lon))
	return lat, lon, nil
}

// waitForToken blocks until the rate limiter grants a token or ctx expires.
func (g *NominatimClient) waitForToken(ctx context.Context) error {
	for !g.limiter.Allow(rateKey, g.capacity, g.refill) {
		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
			return models.NewCollaboratorError("geocoder", ctx.Err())
		}
	}
	return nil
}

func (g *NominatimClient) recordCache(hit bool) {
	if g.metrics != nil {
		g.metrics.RecordGeocodeCache(hit)
	}
}
