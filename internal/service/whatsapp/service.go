package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
)

// Service shares the user's live location with a named contact over WhatsApp.
// Contacts are a static name-to-number book from configuration; lookups are
// case-insensitive.
type Service struct {
	provider Provider
	contacts map[string]string
	log      *zap.Logger
}

// Provider is the outbound WhatsApp transport.
type Provider interface {
	SendMessage(ctx context.Context, to, body string) error
}

func NewService(provider Provider, contacts map[string]string, log *zap.Logger) *Service {
	book := make(map[string]string, len(contacts))
	for name, number := range contacts {
		book[strings.ToLower(name)] = number
	}
	return &Service{
		provider: provider,
		contacts: book,
		log:      log,
	}
}

// SendLocation sends a Google Maps link to the contact's saved number. An
// unknown contact returns domain.ErrNotFound without touching the provider.
func (s *Service) SendLocation(ctx context.Context, contact string, pos domain.Coordinate) error {
	number, ok := s.contacts[strings.ToLower(contact)]
	if !ok {
		return fmt.Errorf("contact %q: %w", contact, domain.ErrNotFound)
	}

	mapURL := fmt.Sprintf("https://www.google.com/maps?q=%g,%g", pos.Lat, pos.Lng)
	body := "Hi! Here is my current location from TerraTalk:\n" + mapURL

	if err := s.provider.SendMessage(ctx, number, body); err != nil {
		s.log.Error("Failed to send WhatsApp message",
			zap.String("contact", contact),
			zap.Error(err),
		)
		return err
	}

	s.log.Info("WhatsApp location sent", zap.String("contact", contact))
	return nil
}
