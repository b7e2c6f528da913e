package domain

// Topic names a one-way broadcast signal consumed by presentation
// collaborators. Signals are fire-and-forget; the core never reads a
// response back.
type Topic string

const (
	TopicCheckTraffic    Topic = "checkTraffic"
	TopicShowTraffic     Topic = "showTraffic"
	TopicHideTraffic     Topic = "hideTraffic"
	TopicFindFasterRoute Topic = "findFasterRoute"
	TopicSearchNearMe    Topic = "searchNearMe"
	TopicSearchPOI       Topic = "searchPOI"
	TopicSendWhatsApp    Topic = "sendWhatsapp"
	TopicShowWeatherCard Topic = "showWeatherCard"
	TopicHideWeatherCard Topic = "hideWeatherCard"
	TopicSaveFavourite   Topic = "saveFavourite"
	TopicShowFavourites  Topic = "showFavourites"
	TopicHideFavourites  Topic = "hideFavourites"
	TopicNavigate        Topic = "navigate"
	TopicZoom            Topic = "zoom"
	TopicPan             Topic = "pan"
	TopicLayer           Topic = "layer"
)

// Signal is the wire frame delivered to presentation subscribers.
type Signal struct {
	Topic   Topic `json:"topic"`
	Payload any   `json:"payload,omitempty"`
}

// SearchPayload accompanies searchNearMe and searchPOI.
type SearchPayload struct {
	Query    string `json:"query"`
	Location string `json:"location,omitempty"`
}

// ContactPayload accompanies sendWhatsapp.
type ContactPayload struct {
	Contact string `json:"contact"`
}

// MapTarget tells the map surface where to go, preserving the active layer.
type MapTarget struct {
	From      *Coordinate `json:"from,omitempty"`
	To        *Coordinate `json:"to,omitempty"`
	Zoom      string      `json:"zoom,omitempty"`
	ZoomLevel float64     `json:"zoom_level,omitempty"`
	Pan       string      `json:"pan,omitempty"`
	Via       []string    `json:"via,omitempty"`
	Mode      TravelMode  `json:"mode,omitempty"`
	Layer     string      `json:"layer"`
}
