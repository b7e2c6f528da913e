package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/infrastructure/circuitbreaker"
)

// Client talks to an OpenRouteService-compatible directions API. The GeoJSON
// endpoint is used so each result carries the route geometry alongside the
// summary.
type Client struct {
	baseURL string
	apiKey  string
	http    *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, httpClient *circuitbreaker.HTTPClient, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
		log:     log,
	}
}

type directionsRequest struct {
	// Coordinates are [lng, lat] pairs, service convention.
	Coordinates  [][2]float64 `json:"coordinates"`
	Instructions bool         `json:"instructions"`
}

type geoJSONResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (c *Client) Directions(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if len(req.Coordinates) < 2 {
		return nil, fmt.Errorf("directions: need at least two coordinates, got %d", len(req.Coordinates))
	}

	body := directionsRequest{Instructions: false}
	for _, coord := range req.Coordinates {
		body.Coordinates = append(body.Coordinates, [2]float64{coord.Lng, coord.Lat})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("directions: marshal: %w", err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, req.Mode)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("directions: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("directions: %w", domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("Routing service error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", text),
		)
		return nil, fmt.Errorf("directions: status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var out geoJSONResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("directions: decode: %w", err)
	}
	if len(out.Features) == 0 {
		return nil, fmt.Errorf("directions: no route in response")
	}

	feature := out.Features[0]
	result := &domain.RouteResult{
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
	}
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		// GeoJSON is [lng, lat]
		result.Polyline = append(result.Polyline, domain.Coordinate{Lat: pair[1], Lng: pair[0]})
	}

	return result, nil
}
