// Package geocode resolves free-text queries to coordinates via the
// OSM-based Photon geocoder.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/csv2gpx/internal/model"
)

const (
	defaultBaseURL   = "https://photon.komoot.io"
	defaultUserAgent = "csv2gpx/1.0"
	defaultTimeout   = 10 * time.Second
)

// Client resolves a free-text query to geocoding candidates.
type Client interface {
	// Lookup returns candidates for the query, best match first. An empty
	// slice means the geocoder found nothing; that is not an error.
	Lookup(ctx context.Context, query string) ([]model.Coordinates, error)
}

// Option configures the Photon client.
type Option func(*photonClient)

// WithBaseURL overrides the Photon endpoint.
func WithBaseURL(u string) Option {
	return func(c *photonClient) {
		c.baseURL = u
	}
}

// WithUserAgent sets the client identifier sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *photonClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *photonClient) {
		c.httpClient = hc
	}
}

type photonClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a Photon-backed geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	c := &photonClient{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// photonResponse is the GeoJSON subset returned by the Photon API.
type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Lookup queries Photon for a single best match.
func (c *photonClient) Lookup(ctx context.Context, query string) ([]model.Coordinates, error) {
	params := url.Values{
		"q":     {query},
		"limit": {"1"},
	}
	reqURL := c.baseURL + "/api/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: photon returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon read body")
	}

	var pr photonResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, eris.Wrap(err, "geocode: photon parse response")
	}

	candidates := make([]model.Coordinates, 0, len(pr.Features))
	for _, f := range pr.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		candidates = append(candidates, model.Coordinates{
			Lon: f.Geometry.Coordinates[0],
			Lat: f.Geometry.Coordinates[1],
		})
	}

	fields := []zap.Field{
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
	}
	if len(candidates) > 0 {
		fields = append(fields,
			zap.Float64("lon", candidates[0].Lon),
			zap.Float64("lat", candidates[0].Lat),
		)
	}
	zap.L().Debug("geocode: photon lookup", fields...)
	return candidates, nil
}
