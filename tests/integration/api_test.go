package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/adapter/http/fiber/handlers"
	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/mocks"
	"github.com/terratalk/terratalk/internal/service/health"
)

func setupTestApp(weatherSvc *mocks.MockWeatherService, messagingSvc *mocks.MockMessagingService) *fiber.App {
	logger := zap.NewNop()
	app := fiber.New()

	healthService := health.NewService()
	healthService.Register("cache", func(ctx context.Context) error { return nil })
	health.NewHandler(healthService).RegisterRoutes(app)

	app.Post("/get-weather", handlers.NewWeatherHandler(weatherSvc, logger).GetWeather)
	app.Post("/send-whatsapp", handlers.NewWhatsAppHandler(messagingSvc, logger).SendWhatsApp)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	return resp
}

func TestAPI_HealthEndpoints(t *testing.T) {
	app := setupTestApp(&mocks.MockWeatherService{}, &mocks.MockMessagingService{})

	t.Run("Live", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var report health.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if report.Status != health.StatusHealthy {
			t.Errorf("Expected status healthy, got '%s'", report.Status)
		}
	})

	t.Run("Ready", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}

		var report health.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(report.Checks) != 1 {
			t.Errorf("Expected 1 check, got %d", len(report.Checks))
		}
	})
}

func TestAPI_GetWeather(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		weatherSvc := &mocks.MockWeatherService{
			ReportFunc: func(ctx context.Context, location string) (*domain.WeatherReport, error) {
				return &domain.WeatherReport{
					Location:    "Bangalore, Karnataka",
					Description: "Clear sky",
					Temperature: 28,
					FeelsLike:   30,
					Humidity:    65,
				}, nil
			},
		}
		app := setupTestApp(weatherSvc, &mocks.MockMessagingService{})

		resp := postJSON(t, app, "/get-weather", map[string]string{"location": "Bangalore"})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var result struct {
			Success bool                 `json:"success"`
			Message string               `json:"message"`
			Data    domain.WeatherReport `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !result.Success {
			t.Error("Expected success true")
		}
		if result.Data.Location != "Bangalore, Karnataka" {
			t.Errorf("Unexpected location '%s'", result.Data.Location)
		}
	})

	t.Run("MissingLocation", func(t *testing.T) {
		app := setupTestApp(&mocks.MockWeatherService{}, &mocks.MockMessagingService{})

		resp := postJSON(t, app, "/get-weather", map[string]string{})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("UnknownLocation", func(t *testing.T) {
		weatherSvc := &mocks.MockWeatherService{
			ReportFunc: func(ctx context.Context, location string) (*domain.WeatherReport, error) {
				return nil, fmt.Errorf("location %q: %w", location, domain.ErrNotFound)
			},
		}
		app := setupTestApp(weatherSvc, &mocks.MockMessagingService{})

		resp := postJSON(t, app, "/get-weather", map[string]string{"location": "Atlantis"})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})
}

func TestAPI_SendWhatsApp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		messagingSvc := &mocks.MockMessagingService{}
		app := setupTestApp(&mocks.MockWeatherService{}, messagingSvc)

		resp := postJSON(t, app, "/send-whatsapp", map[string]interface{}{
			"contact": "mom",
			"lat":     12.9716,
			"lng":     77.5946,
		})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if messagingSvc.SendCalls != 1 {
			t.Errorf("Expected 1 send call, got %d", messagingSvc.SendCalls)
		}

		var result struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if result.Message != "Message sent to mom!" {
			t.Errorf("Unexpected message '%s'", result.Message)
		}
	})

	t.Run("UnknownContact", func(t *testing.T) {
		messagingSvc := &mocks.MockMessagingService{
			SendLocationFunc: func(ctx context.Context, contact string, pos domain.Coordinate) error {
				return fmt.Errorf("contact %q: %w", contact, domain.ErrNotFound)
			},
		}
		app := setupTestApp(&mocks.MockWeatherService{}, messagingSvc)

		resp := postJSON(t, app, "/send-whatsapp", map[string]interface{}{"contact": "stranger"})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})

	t.Run("MissingContact", func(t *testing.T) {
		app := setupTestApp(&mocks.MockWeatherService{}, &mocks.MockMessagingService{})

		resp := postJSON(t, app, "/send-whatsapp", map[string]interface{}{"lat": 1.0, "lng": 2.0})
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}
