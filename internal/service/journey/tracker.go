package journey

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
	"github.com/terratalk/terratalk/internal/ports"
)

// Tracker owns the continuous journey watch. At most one watch is active per
// session; Start while tracking and Stop while idle are both no-ops with
// spoken feedback.
type Tracker struct {
	session  *domain.SessionState
	position ports.PositionSource
	notifier ports.Notifier
	log      *zap.Logger

	mu     sync.Mutex
	cancel func()
}

func NewTracker(session *domain.SessionState, position ports.PositionSource, notifier ports.Notifier, log *zap.Logger) *Tracker {
	return &Tracker{
		session:  session,
		position: position,
		notifier: notifier,
		log:      log,
	}
}

// Start begins tracking. Idempotent: a second Start reports the journey is
// already running and leaves the existing watch untouched.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	handle := uuid.NewString()
	if !t.session.ClaimJourney(handle) {
		t.notifier.SetStatus("Journey already started, tracking your movement...")
		t.notifier.Speak("Journey already started, tracking your movement.")
		return
	}

	cancel, err := t.position.Watch(ctx, t.onFix)
	if err != nil {
		t.session.ReleaseJourney()
		t.notifier.SetStatus("Geolocation not supported.")
		t.notifier.Speak("Geolocation is not supported on this device.")
		t.log.Warn("Journey watch failed", zap.Error(err))
		return
	}
	t.cancel = cancel
	telemetry.ActiveJourneys.Inc()

	t.notifier.SetStatus("Journey started, tracking your movement...")
	t.notifier.Speak("Journey started, tracking your movement.")
	t.log.Info("Journey started", zap.String("handle", handle))
}

// Stop ends tracking. Idempotent: stopping with no journey in progress only
// reports that fact.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	handle := t.session.ReleaseJourney()
	if handle == "" {
		t.notifier.SetStatus("No journey in progress to stop.")
		t.notifier.Speak("No journey in progress to stop.")
		return
	}

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	telemetry.ActiveJourneys.Dec()

	t.notifier.SetStatus("Journey stopped, tracking disabled.")
	t.notifier.Speak("Journey stopped. Tracking disabled.")
	t.log.Info("Journey stopped", zap.String("handle", handle))
}

// onFix updates the session start point and publishes the tracking status
// line for every position fix.
func (t *Tracker) onFix(pos domain.Position) {
	t.session.SetStartCoords(pos.Coordinate)

	feedback := fmt.Sprintf("Tracking... Lat %.4f, Lng %.4f", pos.Lat, pos.Lng)
	if dest, ok := t.session.DestCoords(); ok {
		// Raw coordinate-space distance in degrees, not geodesic.
		dist := domain.PlanarDistance(pos.Coordinate, dest)
		feedback += fmt.Sprintf(" | Distance to destination: %.2f (deg)", dist)
	}
	if pos.Speed >= 0 {
		feedback += fmt.Sprintf(" | Speed: %.1f km/h", pos.Speed*3.6)
	}
	t.notifier.SetStatus(feedback)
}
