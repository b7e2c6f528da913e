package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/ports"
)

type WhatsAppHandler struct {
	messaging ports.MessagingService
	log       *zap.Logger
}

func NewWhatsAppHandler(messaging ports.MessagingService, log *zap.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{messaging: messaging, log: log}
}

type whatsappRequest struct {
	Contact string  `json:"contact"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// SendWhatsApp serves POST /send-whatsapp.
func (h *WhatsAppHandler) SendWhatsApp(c *fiber.Ctx) error {
	var req whatsappRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Contact == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing contact."})
	}

	err := h.messaging.SendLocation(c.Context(), req.Contact, domain.Coordinate{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Contact '%s' not found.", req.Contact),
			})
		}
		h.log.Error("WhatsApp send failed", zap.String("contact", req.Contact), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send WhatsApp message."})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Message sent to %s!", req.Contact),
	})
}
