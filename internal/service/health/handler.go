package health

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the health service over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the liveness and readiness endpoints.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
}

func (h *Handler) Live(c *fiber.Ctx) error {
	return c.JSON(h.service.Live())
}

func (h *Handler) Ready(c *fiber.Ctx) error {
	report := h.service.Ready(c.Context())
	status := fiber.StatusOK
	if report.Status == StatusUnhealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}
