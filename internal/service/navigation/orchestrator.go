package navigation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
	"github.com/terratalk/terratalk/internal/ports"
)

// Orchestrator resolves places and plans routes. It owns no session state:
// every method returns results and leaves commits to the caller.
type Orchestrator struct {
	geocoder ports.Geocoder
	planner  ports.RoutePlanner
	position ports.PositionSource
	now      func() time.Time
	log      *zap.Logger
}

func NewOrchestrator(geocoder ports.Geocoder, planner ports.RoutePlanner, position ports.PositionSource, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		planner:  planner,
		position: position,
		now:      time.Now,
		log:      log,
	}
}

// Navigate resolves the destination and all waypoints concurrently. If any
// place fails to resolve the whole operation fails and no route request is
// issued. On success, one directions request is made with coordinates ordered
// origin, waypoints, destination, and the duration heuristic applied.
func (o *Orchestrator) Navigate(ctx context.Context, destination string, waypoints []string, mode domain.TravelMode) (*domain.NavigationResult, error) {
	pos, err := o.position.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("current position: %w", err)
	}

	places := append([]string{destination}, waypoints...)
	resolved, err := o.resolveAll(ctx, places)
	if err != nil {
		telemetry.RouteRequestsTotal.WithLabelValues(string(mode), "geocode_failed").Inc()
		return nil, err
	}

	coords := make([]domain.Coordinate, 0, len(places)+1)
	coords = append(coords, pos.Coordinate)
	coords = append(coords, resolved[1:]...)
	coords = append(coords, resolved[0])

	route, err := o.planner.Directions(ctx, domain.RouteRequest{Coordinates: coords, Mode: mode})
	if err != nil {
		telemetry.RouteRequestsTotal.WithLabelValues(string(mode), "route_failed").Inc()
		return nil, fmt.Errorf("directions: %w", err)
	}
	route.DurationSeconds = AdjustDuration(route.DurationSeconds, route.DistanceMeters, mode, o.now())
	telemetry.RouteRequestsTotal.WithLabelValues(string(mode), "ok").Inc()

	o.log.Info("Route planned",
		zap.String("destination", destination),
		zap.Int("waypoints", len(waypoints)),
		zap.String("mode", string(mode)),
		zap.Float64("distance_m", route.DistanceMeters),
	)

	return &domain.NavigationResult{
		Destination:    destination,
		Origin:         pos.Coordinate,
		DestCoords:     resolved[0],
		WaypointCoords: resolved[1:],
		Mode:           mode,
		Route:          *route,
	}, nil
}

// Distance geocodes both places and returns the great-circle distance in
// kilometers. No route request is made.
func (o *Orchestrator) Distance(ctx context.Context, from, to string) (float64, error) {
	resolved, err := o.resolveAll(ctx, []string{from, to})
	if err != nil {
		return 0, err
	}
	return domain.HaversineKm(resolved[0], resolved[1]), nil
}

// ETA geocodes both places, requests a route, and returns the adjusted
// duration in seconds.
func (o *Orchestrator) ETA(ctx context.Context, from, to string, mode domain.TravelMode) (float64, error) {
	resolved, err := o.resolveAll(ctx, []string{from, to})
	if err != nil {
		return 0, err
	}

	route, err := o.planner.Directions(ctx, domain.RouteRequest{Coordinates: resolved, Mode: mode})
	if err != nil {
		telemetry.RouteRequestsTotal.WithLabelValues(string(mode), "route_failed").Inc()
		return 0, fmt.Errorf("directions: %w", err)
	}
	telemetry.RouteRequestsTotal.WithLabelValues(string(mode), "ok").Inc()

	return AdjustDuration(route.DurationSeconds, route.DistanceMeters, mode, o.now()), nil
}

// resolveAll geocodes every place concurrently, all-or-nothing. Results keep
// input order.
func (o *Orchestrator) resolveAll(ctx context.Context, places []string) ([]domain.Coordinate, error) {
	resolved := make([]domain.Coordinate, len(places))
	g, gctx := errgroup.WithContext(ctx)
	for i, place := range places {
		i, place := i, place
		g.Go(func() error {
			coord, err := o.geocoder.Resolve(gctx, place)
			if err != nil {
				return err
			}
			resolved[i] = coord
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
