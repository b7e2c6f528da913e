package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/ports"
)

type WeatherHandler struct {
	weather ports.WeatherService
	log     *zap.Logger
}

func NewWeatherHandler(weather ports.WeatherService, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, log: log}
}

type weatherRequest struct {
	Location string `json:"location"`
}

// GetWeather serves POST /get-weather. The response carries both the spoken
// sentence and the structured report for the weather card.
func (h *WeatherHandler) GetWeather(c *fiber.Ctx) error {
	var req weatherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Location == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing location."})
	}

	report, err := h.weather.Report(c.Context(), req.Location)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Could not find location: " + req.Location,
			})
		}
		h.log.Error("Weather request failed", zap.String("location", req.Location), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get weather."})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": report.SpokenMessage(),
		"data":    report,
	})
}
