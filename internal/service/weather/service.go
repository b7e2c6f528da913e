package weather

import (
	"context"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
)

// Provider fetches current conditions for a free-text place name.
type Provider interface {
	Current(ctx context.Context, location string) (*domain.WeatherReport, error)
}

// Service is the weather collaborator shared by the dispatcher and the HTTP
// surface.
type Service struct {
	provider Provider
	log      *zap.Logger
}

func NewService(provider Provider, log *zap.Logger) *Service {
	return &Service{provider: provider, log: log}
}

func (s *Service) Report(ctx context.Context, location string) (*domain.WeatherReport, error) {
	report, err := s.provider.Current(ctx, location)
	if err != nil {
		s.log.Warn("Weather report failed", zap.String("location", location), zap.Error(err))
		return nil, err
	}
	return report, nil
}
