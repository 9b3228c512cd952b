package ephemeris

import (
	"context"
	"fmt"
	"time"

	"Sternentyp/internal/domain/models"
	"Sternentyp/internal/domain/repository"
	"Sternentyp/pkg/config"
	xhttp "Sternentyp/pkg/http"
)

// Client talks to the ephemeris sidecar over HTTP. The sidecar wraps the
// Swiss Ephemeris and answers position and house queries as JSON.
type Client struct {
	baseURL  string
	attempts int
	client   *xhttp.Client
}

var _ repository.Ephemeris = (*Client)(nil)

// NewClient builds an ephemeris client from config.
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Ephemeris.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	attempts := cfg.Ephemeris.RetryAttempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Client{
		baseURL:  cfg.Ephemeris.ServiceURL,
		attempts: attempts,
		client:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type positionsRequest struct {
	JulianDay float64  `json:"jd"`
	Bodies    []string `json:"bodies"`
	Zodiac    string   `json:"zodiac"`
}

type positionsResponse struct {
	Positions map[string]struct {
		Longitude float64 `json:"longitude"`
		Speed     float64 `json:"speed"`
	} `json:"positions"`
}

type housesRequest struct {
	JulianDay float64 `json:"jd"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	System    string  `json:"system"`
}

type housesResponse struct {
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
	Midheaven float64   `json:"midheaven"`
}

// BodyPosition returns the ecliptic longitude and daily speed of one body.
func (c *Client) BodyPosition(ctx context.Context, jd float64, body models.Body, zodiac models.ZodiacMode) (models.EclipticPosition, error) {
	positions, err := c.BodyPositions(ctx, jd, []models.Body{body}, zodiac)
	if err != nil {
		return models.EclipticPosition{}, err
	}
	pos, ok := positions[body]
	if !ok {
		return models.EclipticPosition{}, models.NewInvariantErrorf("ephemeris returned no position for %s", body)
	}
	return pos, nil
}

// BodyPositions resolves several bodies in one sidecar round trip.
func (c *Client) BodyPositions(ctx context.Context, jd float64, bodies []models.Body, zodiac models.ZodiacMode) (map[models.Body]models.EclipticPosition, error) {
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = string(b)
	}

	var resp positionsResponse
	if err := c.postJSON(ctx, "/positions", positionsRequest{
		JulianDay: jd,
		Bodies:    names,
		Zodiac:    string(zodiac),
	}, &resp); err != nil {
		return nil, models.NewCollaboratorError("ephemeris", err)
	}

	out := make(map[models.Body]models.EclipticPosition, len(bodies))
	for _, b := range bodies {
		raw, ok := resp.Positions[string(b)]
		if !ok {
			return nil, models.NewInvariantErrorf("ephemeris returned no position for %s", b)
		}
		out[b] = models.EclipticPosition{Longitude: raw.Longitude, Speed: raw.Speed}
	}
	return out, nil
}

// Houses computes the twelve cusps plus ascendant and midheaven.
func (c *Client) Houses(ctx context.Context, jd, lat, lon float64, system string) (repository.HouseResult, error) {
	var resp housesResponse
	if err := c.postJSON(ctx, "/houses", housesRequest{
		JulianDay: jd,
		Latitude:  lat,
		Longitude: lon,
		System:    system,
	}, &resp); err != nil {
		return repository.HouseResult{}, models.NewCollaboratorError("ephemeris", err)
	}

	if len(resp.Cusps) != 12 {
		return repository.HouseResult{}, models.NewInvariantErrorf("house computation returned %d cusps, want 12", len(resp.Cusps))
	}

	var result repository.HouseResult
	copy(result.Cusps[:], resp.Cusps)
	result.Ascendant = resp.Ascendant
	result.Midheaven = resp.Midheaven
	return result, nil
}

// postJSON posts the payload with simple linear backoff between attempts.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	var err error
	for i := 1; i <= c.attempts; i++ {
		err = c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    c.baseURL + path,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			Body: payload,
		}, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("post %s: %w", path, err)
}
