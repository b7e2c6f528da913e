package mocks

import (
	"context"
	"sync"

	"github.com/terratalk/terratalk/internal/domain"
)

// MockGeocoder is a mock implementation of the Geocoder port.
type MockGeocoder struct {
	ResolveFunc func(ctx context.Context, place string) (domain.Coordinate, error)
}

func (m *MockGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinate, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, place)
	}
	return domain.Coordinate{}, nil
}

// MockRoutePlanner is a mock implementation of the RoutePlanner port.
type MockRoutePlanner struct {
	DirectionsFunc func(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
}

func (m *MockRoutePlanner) Directions(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	if m.DirectionsFunc != nil {
		return m.DirectionsFunc(ctx, req)
	}
	return &domain.RouteResult{}, nil
}

// MockNavigator is a mock implementation of the Navigator port.
type MockNavigator struct {
	NavigateFunc func(ctx context.Context, destination string, waypoints []string, mode domain.TravelMode) (*domain.NavigationResult, error)
	DistanceFunc func(ctx context.Context, from, to string) (float64, error)
	ETAFunc      func(ctx context.Context, from, to string, mode domain.TravelMode) (float64, error)
}

func (m *MockNavigator) Navigate(ctx context.Context, destination string, waypoints []string, mode domain.TravelMode) (*domain.NavigationResult, error) {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(ctx, destination, waypoints, mode)
	}
	return &domain.NavigationResult{Destination: destination, Mode: mode}, nil
}

func (m *MockNavigator) Distance(ctx context.Context, from, to string) (float64, error) {
	if m.DistanceFunc != nil {
		return m.DistanceFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *MockNavigator) ETA(ctx context.Context, from, to string, mode domain.TravelMode) (float64, error) {
	if m.ETAFunc != nil {
		return m.ETAFunc(ctx, from, to, mode)
	}
	return 0, nil
}

// MockInterpreter is a mock implementation of the Interpreter port.
type MockInterpreter struct {
	InterpretFunc func(ctx context.Context, transcript string) domain.Intent
}

func (m *MockInterpreter) Interpret(ctx context.Context, transcript string) domain.Intent {
	if m.InterpretFunc != nil {
		return m.InterpretFunc(ctx, transcript)
	}
	return domain.UnknownIntent()
}

// MockDispatcher is a mock implementation of the Dispatcher port. It records
// every dispatched intent in order.
type MockDispatcher struct {
	mu           sync.Mutex
	Dispatched   []domain.Intent
	DispatchFunc func(ctx context.Context, intent domain.Intent)
}

func (m *MockDispatcher) Dispatch(ctx context.Context, intent domain.Intent) {
	if m.DispatchFunc != nil {
		m.DispatchFunc(ctx, intent)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dispatched = append(m.Dispatched, intent)
}

func (m *MockDispatcher) DispatchedIntents() []domain.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Intent, len(m.Dispatched))
	copy(out, m.Dispatched)
	return out
}

// MockNotifier is a mock implementation of the Notifier port. It records
// everything spoken, every status line, and every emitted signal.
type MockNotifier struct {
	mu       sync.Mutex
	Spoken   []string
	Statuses []string
	Signals  []domain.Signal
}

func (m *MockNotifier) Speak(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Spoken = append(m.Spoken, message)
}

func (m *MockNotifier) SetStatus(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, text)
}

func (m *MockNotifier) Emit(topic domain.Topic, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signals = append(m.Signals, domain.Signal{Topic: topic, Payload: payload})
}

func (m *MockNotifier) SpokenMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Spoken))
	copy(out, m.Spoken)
	return out
}

func (m *MockNotifier) StatusLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Statuses))
	copy(out, m.Statuses)
	return out
}

func (m *MockNotifier) EmittedSignals() []domain.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Signal, len(m.Signals))
	copy(out, m.Signals)
	return out
}

func (m *MockNotifier) SignalsFor(topic domain.Topic) []domain.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Signal
	for _, sig := range m.Signals {
		if sig.Topic == topic {
			out = append(out, sig)
		}
	}
	return out
}

// MockPositionSource is a mock implementation of the PositionSource port.
type MockPositionSource struct {
	mu          sync.Mutex
	CurrentFunc func(ctx context.Context) (domain.Position, error)
	WatchFunc   func(ctx context.Context, fn func(domain.Position)) (func(), error)
	watcher     func(domain.Position)
	WatchCount  int
	CancelCount int
}

func (m *MockPositionSource) Current(ctx context.Context) (domain.Position, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return domain.Position{Speed: domain.SpeedUnknown}, nil
}

func (m *MockPositionSource) Watch(ctx context.Context, fn func(domain.Position)) (func(), error) {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, fn)
	}
	m.mu.Lock()
	m.watcher = fn
	m.WatchCount++
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.watcher = nil
		m.CancelCount++
	}, nil
}

// Fix feeds one position to the registered watcher, if any.
func (m *MockPositionSource) Fix(pos domain.Position) {
	m.mu.Lock()
	fn := m.watcher
	m.mu.Unlock()
	if fn != nil {
		fn(pos)
	}
}

// MockJourneyService is a mock implementation of the JourneyService port.
type MockJourneyService struct {
	StartFunc  func(ctx context.Context)
	StopFunc   func()
	StartCalls int
	StopCalls  int
}

func (m *MockJourneyService) Start(ctx context.Context) {
	m.StartCalls++
	if m.StartFunc != nil {
		m.StartFunc(ctx)
	}
}

func (m *MockJourneyService) Stop() {
	m.StopCalls++
	if m.StopFunc != nil {
		m.StopFunc()
	}
}

// MockWeatherService is a mock implementation of the WeatherService port.
type MockWeatherService struct {
	ReportFunc func(ctx context.Context, location string) (*domain.WeatherReport, error)
}

func (m *MockWeatherService) Report(ctx context.Context, location string) (*domain.WeatherReport, error) {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, location)
	}
	return &domain.WeatherReport{Location: location}, nil
}

// MockMessagingService is a mock implementation of the MessagingService port.
type MockMessagingService struct {
	SendLocationFunc func(ctx context.Context, contact string, pos domain.Coordinate) error
	SendCalls        int
}

func (m *MockMessagingService) SendLocation(ctx context.Context, contact string, pos domain.Coordinate) error {
	m.SendCalls++
	if m.SendLocationFunc != nil {
		return m.SendLocationFunc(ctx, contact, pos)
	}
	return nil
}
