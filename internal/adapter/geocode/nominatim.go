package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/adapter/cache"
	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/infrastructure/circuitbreaker"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
	"github.com/terratalk/terratalk/internal/ports"
)

// Client resolves place names against a Nominatim-compatible lookup service.
// Resolved coordinates are cached; place names repeat constantly in a voice
// session ("zoom to Chennai", "navigate to Chennai").
type Client struct {
	baseURL  string
	http     *circuitbreaker.HTTPClient
	cache    ports.Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

// candidate mirrors one element of the lookup service response; lat/lon come
// back as strings.
type candidate struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewClient(baseURL string, http *circuitbreaker.HTTPClient, c ports.Cache, ttl time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     http,
		cache:    c,
		cacheTTL: ttl,
		log:      log,
	}
}

func (c *Client) Resolve(ctx context.Context, place string) (domain.Coordinate, error) {
	key := cache.GeocodeKey(place)
	if cached, err := c.cache.Get(ctx, key); err == nil {
		var coord domain.Coordinate
		if err := json.Unmarshal([]byte(cached), &coord); err == nil {
			telemetry.GeocodeCacheHits.Inc()
			return coord, nil
		}
	}

	reqURL := fmt.Sprintf("%s/search?format=json&q=%s", c.baseURL, url.QueryEscape(place))
	resp, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", place, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: status %d: %w", place, resp.StatusCode, domain.ErrUnavailable)
	}

	var candidates []candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: decode: %w", place, err)
	}

	// Empty candidate list signals not-found; first element wins otherwise.
	if len(candidates) == 0 {
		return domain.Coordinate{}, &domain.PlaceNotFoundError{Place: place}
	}

	lat, err := strconv.ParseFloat(candidates[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: bad lat %q", place, candidates[0].Lat)
	}
	lng, err := strconv.ParseFloat(candidates[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: bad lon %q", place, candidates[0].Lon)
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}

	if data, err := json.Marshal(coord); err == nil {
		if err := c.cache.Set(ctx, key, string(data), c.cacheTTL); err != nil {
			c.log.Debug("Failed to cache geocode result", zap.String("place", place), zap.Error(err))
		}
	}

	return coord, nil
}
