package domain

import (
	"encoding/json"
	"strings"
)

// Command identifies the kind of a voice command.
type Command string

const (
	CommandNavigate         Command = "navigate"
	CommandZoom             Command = "zoom"
	CommandPan              Command = "pan"
	CommandChangeLayer      Command = "change_layer"
	CommandDistance         Command = "distance"
	CommandGetETA           Command = "get_eta"
	CommandStartJourney     Command = "start_journey"
	CommandStopJourney      Command = "stop_journey"
	CommandSearchNearMe     Command = "search_near_me"
	CommandSearchPOI        Command = "search_poi"
	CommandGetWeather       Command = "get_weather"
	CommandHideWeather      Command = "hide_weather"
	CommandSendWhatsApp     Command = "send_whatsapp_location"
	CommandCheckTraffic     Command = "check_traffic"
	CommandShowTraffic      Command = "show_traffic"
	CommandHideTraffic      Command = "hide_traffic"
	CommandFindFasterRoute  Command = "find_faster_route"
	CommandSaveFavourite    Command = "save_favourite"
	CommandShowFavourites   Command = "show_favourites"
	CommandHideFavourites   Command = "hide_favourites"
	CommandError            Command = "error"
	CommandUnknown          Command = "unknown"
)

// TravelMode is the routing profile used for navigation and ETA requests.
type TravelMode string

const (
	ModeDriving TravelMode = "driving-car"
	ModeCycling TravelMode = "cycling-regular"
	ModeWalking TravelMode = "foot-walking"
)

// NormalizeMode coerces any unrecognized mode to driving.
func NormalizeMode(mode string) TravelMode {
	switch TravelMode(mode) {
	case ModeDriving, ModeCycling, ModeWalking:
		return TravelMode(mode)
	default:
		return ModeDriving
	}
}

// Zoom actions produced by the interpreter.
const (
	ZoomIn                = "in"
	ZoomOut               = "out"
	ZoomToLocation        = "to_location"
	ZoomToCurrentLocation = "to_current_location"
	ZoomToStart           = "to_start"
	ZoomToDestination     = "to_destination"
)

// MapLayers is the vocabulary accepted for change_layer.
var MapLayers = map[string]bool{
	"streets": true, "satellite": true, "grayscale": true, "humanitarian": true,
	"topographic": true, "watercolor": true, "transport": true, "cyclosm": true,
	"toner": true, "labels_overlay": true, "rail": true,
}

const DefaultLayer = "streets"

// Intent is a validated structured command derived from a spoken utterance.
// It is a tagged union over Command: only the fields relevant to the tag are
// populated, and Validate guarantees downstream code never sees a known tag
// with required fields missing.
type Intent struct {
	Command Command `json:"command"`

	// navigate
	Destination string   `json:"destination,omitempty"`
	Waypoints   []string `json:"waypoints,omitempty"`
	Mode        string   `json:"mode,omitempty"`

	// zoom
	Action   string  `json:"action,omitempty"`
	Location string  `json:"location,omitempty"`
	Level    float64 `json:"level,omitempty"`

	// pan
	Direction string `json:"direction,omitempty"`

	// change_layer
	LayerType string `json:"layer_type,omitempty"`

	// distance / get_eta
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// search_near_me / search_poi
	Query string `json:"query,omitempty"`

	// send_whatsapp_location
	Contact string `json:"contact,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// ErrorIntent is the canonical intent returned when interpretation fails.
func ErrorIntent(message string) Intent {
	return Intent{Command: CommandError, Message: message}
}

// UnknownIntent marks an utterance the model could not classify.
func UnknownIntent() Intent {
	return Intent{Command: CommandUnknown}
}

// DecodeIntent parses raw model output into an Intent. Any payload that does
// not carry a recognized command tag collapses to the error variant, so a
// partially typed object never travels past this boundary.
func DecodeIntent(raw []byte) Intent {
	var in Intent
	if err := json.Unmarshal(raw, &in); err != nil {
		return ErrorIntent("failed to interpret command")
	}
	in.Command = Command(strings.TrimSpace(string(in.Command)))
	if !in.known() {
		return UnknownIntent()
	}
	in.normalize()
	return in
}

func (in Intent) known() bool {
	switch in.Command {
	case CommandNavigate, CommandZoom, CommandPan, CommandChangeLayer,
		CommandDistance, CommandGetETA, CommandStartJourney, CommandStopJourney,
		CommandSearchNearMe, CommandSearchPOI, CommandGetWeather, CommandHideWeather,
		CommandSendWhatsApp, CommandCheckTraffic, CommandShowTraffic, CommandHideTraffic,
		CommandFindFasterRoute, CommandSaveFavourite, CommandShowFavourites,
		CommandHideFavourites, CommandError, CommandUnknown:
		return true
	}
	return false
}

func (in *Intent) normalize() {
	switch in.Command {
	case CommandNavigate, CommandGetETA:
		in.Mode = string(NormalizeMode(in.Mode))
	case CommandZoom:
		in.Action = strings.ToLower(strings.TrimSpace(in.Action))
		// The model sometimes emits the spoken aliases instead of the
		// canonical action names.
		switch in.Action {
		case "start_point":
			in.Action = ZoomToStart
		case "destination":
			in.Action = ZoomToDestination
		}
	case CommandChangeLayer:
		in.LayerType = strings.ToLower(strings.TrimSpace(in.LayerType))
		if in.LayerType == "" {
			in.LayerType = DefaultLayer
		}
	case CommandSendWhatsApp:
		in.Contact = strings.ToLower(strings.TrimSpace(in.Contact))
	}
}
