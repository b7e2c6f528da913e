package ports

import (
	"context"

	"github.com/terratalk/terratalk/internal/domain"
)

// Geocoder resolves a place name to a coordinate pair. It returns a
// *domain.PlaceNotFoundError when the lookup service has no candidate.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (domain.Coordinate, error)
}

// RoutePlanner issues directions requests against the routing service and
// returns the raw distance/duration plus polyline.
type RoutePlanner interface {
	Directions(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
}

// Navigator is the route orchestration surface the dispatcher drives.
type Navigator interface {
	// Navigate resolves the destination and waypoints concurrently,
	// all-or-nothing, then requests one route. Session state is never
	// touched here; the caller commits on success.
	Navigate(ctx context.Context, destination string, waypoints []string, mode domain.TravelMode) (*domain.NavigationResult, error)

	// Distance geocodes two places and reports the great-circle distance
	// between them in kilometers.
	Distance(ctx context.Context, from, to string) (float64, error)

	// ETA geocodes two places and reports the heuristic-adjusted travel
	// duration in seconds.
	ETA(ctx context.Context, from, to string, mode domain.TravelMode) (float64, error)
}

// Interpreter turns a transcript into a validated Intent. It never returns an
// error: every failure collapses to the canonical error variant.
type Interpreter interface {
	Interpret(ctx context.Context, transcript string) domain.Intent
}

// Dispatcher executes one Intent, fire-and-forget from the caller's view.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent domain.Intent)
}

// Notifier is the notification bridge: spoken feedback, the status line, and
// typed broadcast signals to presentation collaborators.
type Notifier interface {
	// Speak queues spoken feedback; a new utterance supersedes a queued one.
	Speak(message string)
	SetStatus(text string)
	// Emit broadcasts a one-way signal. No acknowledgement, no response.
	Emit(topic domain.Topic, payload any)
}

// PositionSource provides device geolocation. Current is the one-shot query
// used by commands; Watch is the continuous subscription owned by the
// journey tracker.
type PositionSource interface {
	Current(ctx context.Context) (domain.Position, error)
	// Watch invokes fn for every fix until the returned cancel func runs.
	Watch(ctx context.Context, fn func(domain.Position)) (cancel func(), err error)
}

// JourneyService manages the continuous journey watch. Both operations are
// idempotent.
type JourneyService interface {
	Start(ctx context.Context)
	Stop()
}

// WeatherService is the weather collaborator.
type WeatherService interface {
	Report(ctx context.Context, location string) (*domain.WeatherReport, error)
}

// MessagingService is the WhatsApp collaborator.
type MessagingService interface {
	SendLocation(ctx context.Context, contact string, pos domain.Coordinate) error
}
