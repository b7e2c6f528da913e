package navigation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/mocks"
)

func testOrchestrator(geocoder *mocks.MockGeocoder, planner *mocks.MockRoutePlanner, position *mocks.MockPositionSource) *Orchestrator {
	o := NewOrchestrator(geocoder, planner, position, zap.NewNop())
	o.now = func() time.Time { return offPeak }
	return o
}

func TestNavigate_CoordinateOrder(t *testing.T) {
	coords := map[string]domain.Coordinate{
		"Paris": {Lat: 48.8566, Lng: 2.3522},
		"Lyon":  {Lat: 45.7640, Lng: 4.8357},
		"Dijon": {Lat: 47.3220, Lng: 5.0415},
	}
	geocoder := &mocks.MockGeocoder{
		ResolveFunc: func(ctx context.Context, place string) (domain.Coordinate, error) {
			c, ok := coords[place]
			if !ok {
				return domain.Coordinate{}, &domain.PlaceNotFoundError{Place: place}
			}
			return c, nil
		},
	}

	var gotReq domain.RouteRequest
	planner := &mocks.MockRoutePlanner{
		DirectionsFunc: func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
			gotReq = req
			return &domain.RouteResult{DistanceMeters: 10000, DurationSeconds: 1000}, nil
		},
	}

	origin := domain.Position{Coordinate: domain.Coordinate{Lat: 50.0, Lng: 3.0}, Speed: -1}
	position := &mocks.MockPositionSource{
		CurrentFunc: func(ctx context.Context) (domain.Position, error) { return origin, nil },
	}

	o := testOrchestrator(geocoder, planner, position)
	result, err := o.Navigate(context.Background(), "Paris", []string{"Dijon", "Lyon"}, domain.ModeDriving)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	want := []domain.Coordinate{origin.Coordinate, coords["Dijon"], coords["Lyon"], coords["Paris"]}
	if len(gotReq.Coordinates) != len(want) {
		t.Fatalf("got %d coordinates, want %d", len(gotReq.Coordinates), len(want))
	}
	for i := range want {
		if gotReq.Coordinates[i] != want[i] {
			t.Errorf("coordinate %d = %v, want %v", i, gotReq.Coordinates[i], want[i])
		}
	}

	if result.Origin != origin.Coordinate {
		t.Errorf("result origin = %v, want %v", result.Origin, origin.Coordinate)
	}
	if result.DestCoords != coords["Paris"] {
		t.Errorf("result dest = %v, want %v", result.DestCoords, coords["Paris"])
	}
	// 1000s over 10km driving off-peak: x2.2 bucket.
	if math.Abs(result.Route.DurationSeconds-2200) > 1e-6 {
		t.Errorf("adjusted duration = %g, want 2200", result.Route.DurationSeconds)
	}
}

func TestNavigate_GeocodeFailureSkipsRouting(t *testing.T) {
	geocoder := &mocks.MockGeocoder{
		ResolveFunc: func(ctx context.Context, place string) (domain.Coordinate, error) {
			if place == "Nowhere" {
				return domain.Coordinate{}, &domain.PlaceNotFoundError{Place: place}
			}
			return domain.Coordinate{Lat: 1, Lng: 1}, nil
		},
	}

	routed := false
	planner := &mocks.MockRoutePlanner{
		DirectionsFunc: func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
			routed = true
			return &domain.RouteResult{}, nil
		},
	}

	o := testOrchestrator(geocoder, planner, &mocks.MockPositionSource{})
	_, err := o.Navigate(context.Background(), "Paris", []string{"Nowhere"}, domain.ModeDriving)
	if err == nil {
		t.Fatal("expected error")
	}
	var notFound *domain.PlaceNotFoundError
	if !errors.As(err, &notFound) || notFound.Place != "Nowhere" {
		t.Errorf("expected PlaceNotFoundError for 'Nowhere', got %v", err)
	}
	if routed {
		t.Error("no route request should be issued when geocoding fails")
	}
}

func TestNavigate_PositionFailure(t *testing.T) {
	position := &mocks.MockPositionSource{
		CurrentFunc: func(ctx context.Context) (domain.Position, error) {
			return domain.Position{}, domain.ErrPermission
		},
	}

	o := testOrchestrator(&mocks.MockGeocoder{}, &mocks.MockRoutePlanner{}, position)
	_, err := o.Navigate(context.Background(), "Paris", nil, domain.ModeDriving)
	if !errors.Is(err, domain.ErrPermission) {
		t.Errorf("expected ErrPermission, got %v", err)
	}
}

func TestDistance(t *testing.T) {
	coords := map[string]domain.Coordinate{
		"Paris":  {Lat: 48.8566, Lng: 2.3522},
		"London": {Lat: 51.5074, Lng: -0.1278},
	}
	geocoder := &mocks.MockGeocoder{
		ResolveFunc: func(ctx context.Context, place string) (domain.Coordinate, error) {
			return coords[place], nil
		},
	}

	o := testOrchestrator(geocoder, &mocks.MockRoutePlanner{}, &mocks.MockPositionSource{})
	got, err := o.Distance(context.Background(), "Paris", "London")
	if err != nil {
		t.Fatalf("Distance failed: %v", err)
	}
	if math.Abs(got-343.5) > 2 {
		t.Errorf("distance = %.1f km, want ~343.5", got)
	}
}

func TestETA_AppliesHeuristic(t *testing.T) {
	geocoder := &mocks.MockGeocoder{
		ResolveFunc: func(ctx context.Context, place string) (domain.Coordinate, error) {
			return domain.Coordinate{Lat: 1, Lng: 1}, nil
		},
	}
	planner := &mocks.MockRoutePlanner{
		DirectionsFunc: func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
			return &domain.RouteResult{DistanceMeters: 4000, DurationSeconds: 400}, nil
		},
	}

	o := testOrchestrator(geocoder, planner, &mocks.MockPositionSource{})
	got, err := o.ETA(context.Background(), "A", "B", domain.ModeDriving)
	if err != nil {
		t.Fatalf("ETA failed: %v", err)
	}
	if math.Abs(got-1000) > 1e-6 {
		t.Errorf("ETA = %g, want 1000", got)
	}
}

func TestETA_RouteFailure(t *testing.T) {
	geocoder := &mocks.MockGeocoder{
		ResolveFunc: func(ctx context.Context, place string) (domain.Coordinate, error) {
			return domain.Coordinate{Lat: 1, Lng: 1}, nil
		},
	}
	planner := &mocks.MockRoutePlanner{
		DirectionsFunc: func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
			return nil, domain.ErrUnavailable
		},
	}

	o := testOrchestrator(geocoder, planner, &mocks.MockPositionSource{})
	if _, err := o.ETA(context.Background(), "A", "B", domain.ModeDriving); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
