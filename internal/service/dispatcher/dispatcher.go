package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
	"github.com/terratalk/terratalk/internal/ports"
)

// Service executes validated intents. Each command produces spoken feedback,
// a status line, and zero or more broadcast signals. Session state is only
// mutated on success; a failed command leaves it exactly as it was.
type Service struct {
	session   *domain.SessionState
	navigator ports.Navigator
	geocoder  ports.Geocoder
	position  ports.PositionSource
	journey   ports.JourneyService
	weather   ports.WeatherService
	messaging ports.MessagingService
	notifier  ports.Notifier
	log       *zap.Logger

	// navMu guards the id of the latest navigate request. An older in-flight
	// navigate that finishes after a newer one was issued commits nothing.
	navMu     sync.Mutex
	latestNav string
}

func NewService(
	session *domain.SessionState,
	navigator ports.Navigator,
	geocoder ports.Geocoder,
	position ports.PositionSource,
	journey ports.JourneyService,
	weather ports.WeatherService,
	messaging ports.MessagingService,
	notifier ports.Notifier,
	log *zap.Logger,
) *Service {
	return &Service{
		session:   session,
		navigator: navigator,
		geocoder:  geocoder,
		position:  position,
		journey:   journey,
		weather:   weather,
		messaging: messaging,
		notifier:  notifier,
		log:       log,
	}
}

// Dispatch routes one intent to its handler. It never panics the caller out
// of the capture loop; every failure ends in spoken feedback.
func (s *Service) Dispatch(ctx context.Context, intent domain.Intent) {
	status := "ok"
	defer func() {
		telemetry.VoiceCommandsTotal.WithLabelValues(string(intent.Command), status).Inc()
	}()

	switch intent.Command {
	case domain.CommandNavigate:
		s.handleNavigate(ctx, intent)
	case domain.CommandZoom:
		s.handleZoom(ctx, intent)
	case domain.CommandPan:
		s.handlePan(intent)
	case domain.CommandChangeLayer:
		s.handleChangeLayer(intent)
	case domain.CommandDistance:
		s.handleDistance(ctx, intent)
	case domain.CommandGetETA:
		s.handleETA(ctx, intent)
	case domain.CommandStartJourney:
		s.journey.Start(ctx)
	case domain.CommandStopJourney:
		s.journey.Stop()
	case domain.CommandSearchNearMe:
		s.handleSearchNearMe(intent)
	case domain.CommandSearchPOI:
		s.handleSearchPOI(intent)
	case domain.CommandGetWeather:
		s.handleWeather(ctx, intent)
	case domain.CommandHideWeather:
		s.notifier.SetStatus("Hiding weather card.")
		s.notifier.Speak("Okay, hiding weather.")
		s.notifier.Emit(domain.TopicHideWeatherCard, nil)
	case domain.CommandSendWhatsApp:
		s.handleWhatsApp(ctx, intent)
	case domain.CommandCheckTraffic:
		s.notifier.Emit(domain.TopicCheckTraffic, nil)
		s.notifier.SetStatus("Checking real-time traffic conditions ahead...")
		s.notifier.Speak("Checking real-time traffic conditions ahead.")
	case domain.CommandShowTraffic:
		s.notifier.Emit(domain.TopicShowTraffic, nil)
		s.notifier.SetStatus("Showing traffic overlay on the map.")
		s.notifier.Speak("Showing traffic overlay on the map.")
	case domain.CommandHideTraffic:
		s.notifier.Emit(domain.TopicHideTraffic, nil)
		s.notifier.SetStatus("Hiding traffic overlay from the map.")
		s.notifier.Speak("Hiding traffic overlay from the map.")
	case domain.CommandFindFasterRoute:
		s.notifier.Emit(domain.TopicFindFasterRoute, nil)
		s.notifier.SetStatus("Searching for a faster route...")
		s.notifier.Speak("Searching for a faster route.")
	case domain.CommandSaveFavourite:
		s.notifier.Emit(domain.TopicSaveFavourite, nil)
		s.notifier.SetStatus("Saving this place to favourites.")
		s.notifier.Speak("Saving this place to your favourites.")
	case domain.CommandShowFavourites:
		s.notifier.Emit(domain.TopicShowFavourites, nil)
		s.notifier.SetStatus("Showing your favourite places.")
		s.notifier.Speak("Showing your favourite places.")
	case domain.CommandHideFavourites:
		s.notifier.Emit(domain.TopicHideFavourites, nil)
		s.notifier.SetStatus("Hiding favourite places.")
		s.notifier.Speak("Hiding favourite places.")
	case domain.CommandError:
		status = "error"
		s.notifier.SetStatus("Could not interpret command")
		s.notifier.Speak("Sorry, I could not understand that.")
	default:
		status = "unknown"
		s.notifier.SetStatus("Sorry, unknown command")
		s.notifier.Speak("Sorry, unknown command")
	}
}

// handleNavigate resolves and routes asynchronously. Each invocation gets a
// request id; only the most recently issued request may commit session state,
// so an older navigate finishing late cannot overwrite a newer one.
func (s *Service) handleNavigate(ctx context.Context, intent domain.Intent) {
	id := uuid.NewString()
	s.navMu.Lock()
	s.latestNav = id
	s.navMu.Unlock()

	go func() {
		result, err := s.navigator.Navigate(ctx, intent.Destination, intent.Waypoints, domain.TravelMode(intent.Mode))
		if err != nil {
			s.navigateFailed(intent.Destination, err)
			return
		}

		s.navMu.Lock()
		superseded := s.latestNav != id
		s.navMu.Unlock()
		if superseded {
			s.log.Info("Navigation superseded", zap.String("request_id", id))
			return
		}

		s.session.SetStartCoords(result.Origin)
		s.session.SetDestCoords(result.DestCoords)

		s.notifier.Emit(domain.TopicNavigate, domain.MapTarget{
			From:  &result.Origin,
			To:    &result.DestCoords,
			Via:   intent.Waypoints,
			Mode:  result.Mode,
			Layer: s.session.Layer(),
		})

		feedback := "Starting navigation to " + intent.Destination
		if via := filterWaypoints(intent.Waypoints, intent.Destination); len(via) > 0 {
			feedback += " via " + strings.Join(via, " and ")
		}
		feedback += " by " + strings.ReplaceAll(string(result.Mode), "-", " ")
		s.notifier.SetStatus(feedback)
		s.notifier.Speak(feedback)
	}()
}

func (s *Service) navigateFailed(destination string, err error) {
	var pnf *domain.PlaceNotFoundError
	switch {
	case errors.As(err, &pnf):
		if strings.EqualFold(pnf.Place, destination) {
			s.notifier.SetStatus("Could not geocode destination")
			s.notifier.Speak("I could not find the destination location.")
		} else {
			s.notifier.SetStatus("Could not geocode " + pnf.Place)
			s.notifier.Speak("Could not find " + pnf.Place)
		}
	case errors.Is(err, domain.ErrPermission):
		s.notifier.SetStatus("Could not get your location")
		s.notifier.Speak("Could not get your location")
	default:
		s.notifier.SetStatus("Could not start navigation")
		s.notifier.Speak("Sorry, navigation failed.")
	}
	s.log.Warn("Navigation failed", zap.String("destination", destination), zap.Error(err))
}

// filterWaypoints drops waypoints equal to the destination so the spoken
// feedback never says "to X via X".
func filterWaypoints(waypoints []string, destination string) []string {
	out := make([]string, 0, len(waypoints))
	for _, wp := range waypoints {
		if !strings.EqualFold(wp, destination) {
			out = append(out, wp)
		}
	}
	return out
}

func (s *Service) handleZoom(ctx context.Context, intent domain.Intent) {
	layer := s.session.Layer()

	switch intent.Action {
	case domain.ZoomIn:
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{Zoom: "in", Layer: layer})
		s.notifier.SetStatus("Zooming in")
		s.notifier.Speak("Zooming in")
	case domain.ZoomOut:
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{Zoom: "out", Layer: layer})
		s.notifier.SetStatus("Zooming out")
		s.notifier.Speak("Zooming out")
	case domain.ZoomToLocation:
		if intent.Location == "" {
			s.notifier.SetStatus("Zoom command not understood")
			s.notifier.Speak("Did not understand zoom command")
			return
		}
		s.notifier.SetStatus(fmt.Sprintf("Zooming to %s...", intent.Location))
		coord, err := s.geocoder.Resolve(ctx, intent.Location)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.notifier.SetStatus("Place not found: " + intent.Location)
				s.notifier.Speak("Could not find " + intent.Location)
			} else {
				s.notifier.SetStatus("Failed to fetch location for " + intent.Location)
				s.notifier.Speak("Failed to find " + intent.Location)
			}
			return
		}
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{
			To:        &coord,
			ZoomLevel: zoomLevel(intent.Level, 15),
			Layer:     layer,
		})
		s.notifier.SetStatus("Zoomed to " + intent.Location)
		s.notifier.Speak("Zoomed to " + intent.Location)
	case domain.ZoomToCurrentLocation:
		pos, err := s.position.Current(ctx)
		if err != nil {
			s.notifier.SetStatus("Could not get current location")
			s.notifier.Speak("Could not get your current location")
			return
		}
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{
			To:        &pos.Coordinate,
			ZoomLevel: zoomLevel(intent.Level, 15),
			Layer:     layer,
		})
		s.notifier.SetStatus("Zooming to your current location")
		s.notifier.Speak("Zooming to your current location")
	case domain.ZoomToStart:
		start, ok := s.session.StartCoords()
		if !ok {
			s.notifier.SetStatus("No starting point available")
			s.notifier.Speak("No starting point set yet")
			return
		}
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{
			To:        &start,
			ZoomLevel: zoomLevel(intent.Level, 14),
			Layer:     layer,
		})
		s.notifier.SetStatus("Zooming to starting point")
		s.notifier.Speak("Zooming to your start point")
	case domain.ZoomToDestination:
		dest, ok := s.session.DestCoords()
		if !ok {
			s.notifier.SetStatus("No destination set")
			s.notifier.Speak("Destination is not set yet")
			return
		}
		s.notifier.Emit(domain.TopicZoom, domain.MapTarget{
			To:        &dest,
			ZoomLevel: zoomLevel(intent.Level, 14),
			Layer:     layer,
		})
		s.notifier.SetStatus("Zooming to your destination")
		s.notifier.Speak("Zooming to your destination")
	default:
		if intent.Level > 0 {
			s.notifier.Emit(domain.TopicZoom, domain.MapTarget{ZoomLevel: intent.Level, Layer: layer})
			s.notifier.SetStatus(fmt.Sprintf("Zooming to level %g", intent.Level))
			s.notifier.Speak(fmt.Sprintf("Zooming to level %g", intent.Level))
			return
		}
		s.notifier.SetStatus("Zoom command not understood")
		s.notifier.Speak("Did not understand zoom command")
	}
}

func zoomLevel(level, fallback float64) float64 {
	if level > 0 {
		return level
	}
	return fallback
}

func (s *Service) handlePan(intent domain.Intent) {
	if intent.Direction == "" {
		return
	}
	s.notifier.Emit(domain.TopicPan, domain.MapTarget{Pan: intent.Direction, Layer: s.session.Layer()})
	s.notifier.SetStatus("Panning " + intent.Direction)
	s.notifier.Speak("Panning " + intent.Direction)
}

func (s *Service) handleChangeLayer(intent domain.Intent) {
	s.session.SetLayer(intent.LayerType)
	s.notifier.Emit(domain.TopicLayer, domain.MapTarget{Layer: s.session.Layer()})
	s.notifier.SetStatus(fmt.Sprintf("Switching to %s view", intent.LayerType))
	s.notifier.Speak(fmt.Sprintf("Switching to %s view", intent.LayerType))
}

func (s *Service) handleDistance(ctx context.Context, intent domain.Intent) {
	km, err := s.navigator.Distance(ctx, intent.From, intent.To)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.notifier.SetStatus("Could not fetch both locations")
			s.notifier.Speak("Could not fetch locations")
		} else {
			s.notifier.SetStatus("Failed to fetch location data")
			s.notifier.Speak("Failed to fetch location data")
		}
		return
	}
	s.notifier.SetStatus(fmt.Sprintf("Distance: %.1f km", km))
	s.notifier.Speak(fmt.Sprintf("Distance is %.1f kilometers", km))
}

func (s *Service) handleETA(ctx context.Context, intent domain.Intent) {
	if intent.From == "" || intent.To == "" {
		s.notifier.SetStatus("Please specify both start and destination for ETA")
		s.notifier.Speak("Please specify both start and destination to calculate ETA")
		return
	}

	seconds, err := s.navigator.ETA(ctx, intent.From, intent.To, domain.TravelMode(intent.Mode))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.notifier.SetStatus("Could not find start or destination location")
			s.notifier.Speak("Could not find start or destination location")
		} else {
			s.notifier.SetStatus("Failed to fetch ETA")
			s.notifier.Speak("Sorry, could not fetch ETA")
		}
		return
	}

	etaStr := formatETA(seconds)
	s.notifier.SetStatus("Estimated time of arrival: " + etaStr)
	s.notifier.Speak("The estimated time of arrival is " + etaStr)
}

// formatETA renders a duration in seconds the way it is spoken: whole
// minutes, split into hours past sixty.
func formatETA(seconds float64) string {
	minutes := int(seconds/60 + 0.5)
	if minutes >= 60 {
		return fmt.Sprintf("%d hour(s) %d minute(s)", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d minute(s)", minutes)
}

func (s *Service) handleSearchNearMe(intent domain.Intent) {
	feedback := fmt.Sprintf("Searching for %s near you...", intent.Query)
	s.notifier.SetStatus(feedback)
	s.notifier.Speak(feedback)
	s.notifier.Emit(domain.TopicSearchNearMe, domain.SearchPayload{Query: intent.Query})
}

func (s *Service) handleSearchPOI(intent domain.Intent) {
	s.notifier.Emit(domain.TopicSearchPOI, domain.SearchPayload{
		Query:    intent.Query,
		Location: intent.Location,
	})

	feedback := "Searching for " + intent.Query
	if intent.Location != "" {
		feedback += " near " + intent.Location
	} else {
		feedback += " in the current map view"
	}
	s.notifier.SetStatus(feedback + "...")
	s.notifier.Speak(feedback)
}

func (s *Service) handleWeather(ctx context.Context, intent domain.Intent) {
	s.notifier.SetStatus(fmt.Sprintf("Checking the weather in %s...", intent.Location))
	s.notifier.Speak(fmt.Sprintf("Checking the weather in %s...", intent.Location))

	report, err := s.weather.Report(ctx, intent.Location)
	if err != nil {
		s.notifier.SetStatus("Error: could not get weather for " + intent.Location)
		s.notifier.Speak("Sorry, I couldn't get the weather information.")
		s.log.Warn("Weather lookup failed", zap.String("location", intent.Location), zap.Error(err))
		return
	}

	message := report.SpokenMessage()
	s.notifier.SetStatus(firstSentence(message))
	s.notifier.Speak(message)
	s.notifier.Emit(domain.TopicShowWeatherCard, report)
}

func firstSentence(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

func (s *Service) handleWhatsApp(ctx context.Context, intent domain.Intent) {
	feedback := fmt.Sprintf("Sending location to %s on WhatsApp...", intent.Contact)
	s.notifier.SetStatus(feedback)
	s.notifier.Speak(feedback)
	s.notifier.Emit(domain.TopicSendWhatsApp, domain.ContactPayload{Contact: intent.Contact})

	pos, err := s.position.Current(ctx)
	if err != nil {
		s.notifier.Speak("Could not get your precise location to share.")
		return
	}

	if err := s.messaging.SendLocation(ctx, intent.Contact, pos.Coordinate); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.notifier.Speak(fmt.Sprintf("I don't have a number saved for %s.", intent.Contact))
		} else {
			s.notifier.Speak("Sorry, the WhatsApp message could not be sent.")
		}
		s.log.Warn("WhatsApp send failed", zap.String("contact", intent.Contact), zap.Error(err))
		return
	}

	s.notifier.SetStatus(fmt.Sprintf("WhatsApp sent to %s!", intent.Contact))
}
