package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/infrastructure/circuitbreaker"
)

// Client fetches current conditions from Open-Meteo: one geocoding call to
// resolve the place, one forecast call for the current variables.
type Client struct {
	geocodingURL string
	forecastURL  string
	http         *circuitbreaker.HTTPClient
	log          *zap.Logger
}

func NewClient(geocodingURL, forecastURL string, httpClient *circuitbreaker.HTTPClient, log *zap.Logger) *Client {
	return &Client{
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		http:         httpClient,
		log:          log,
	}
}

type geoResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		FeelsLike   float64 `json:"apparent_temperature"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current resolves location and returns a report for its current conditions.
func (c *Client) Current(ctx context.Context, location string) (*domain.WeatherReport, error) {
	geoURL := fmt.Sprintf("%s/v1/search?name=%s&count=1", c.geocodingURL, url.QueryEscape(location))
	resp, err := c.http.Get(ctx, geoURL)
	if err != nil {
		return nil, fmt.Errorf("weather geocode %q: %w", location, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	var geo geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, fmt.Errorf("weather geocode %q: decode: %w", location, err)
	}
	if len(geo.Results) == 0 {
		return nil, &domain.PlaceNotFoundError{Place: location}
	}

	place := geo.Results[0]
	placeName := place.Name + ", " + place.Country
	if place.Admin1 != "" {
		placeName = place.Name + ", " + place.Admin1
	}

	forecastURL := fmt.Sprintf(
		"%s/v1/forecast?latitude=%g&longitude=%g&current=temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m&wind_speed_unit=ms&timezone=auto",
		c.forecastURL, place.Latitude, place.Longitude,
	)
	fresp, err := c.http.Get(ctx, forecastURL)
	if err != nil {
		return nil, fmt.Errorf("weather forecast %q: %w", location, domain.ErrUnavailable)
	}
	defer fresp.Body.Close()

	if fresp.StatusCode != 200 {
		return nil, fmt.Errorf("weather forecast %q: status %d: %w", location, fresp.StatusCode, domain.ErrUnavailable)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(fresp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("weather forecast %q: decode: %w", location, err)
	}

	cur := forecast.Current
	report := &domain.WeatherReport{
		Location:    placeName,
		Description: domain.WeatherDescription(cur.WeatherCode),
		Temperature: cur.Temperature,
		FeelsLike:   cur.FeelsLike,
		Humidity:    cur.Humidity,
		WindSpeed:   cur.WindSpeed,
		WeatherCode: cur.WeatherCode,
	}

	c.log.Info("Weather report fetched",
		zap.String("location", placeName),
		zap.Float64("temperature", cur.Temperature),
	)

	return report, nil
}
