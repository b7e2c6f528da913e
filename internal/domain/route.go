package domain

// RouteRequest describes one directions request: coordinates ordered
// [origin, waypoints..., destination].
type RouteRequest struct {
	Coordinates []Coordinate `json:"coordinates"`
	Mode        TravelMode   `json:"mode"`
}

// RouteResult is the outcome of a directions request after the ETA heuristic
// has been applied to the raw service duration.
type RouteResult struct {
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
	Polyline        []Coordinate `json:"polyline,omitempty"`
}

// NavigationResult carries everything the dispatcher needs to commit a
// successful navigation: the resolved destination, the resolved waypoints in
// request order, and the route.
type NavigationResult struct {
	Destination    string
	Origin         Coordinate
	DestCoords     Coordinate
	WaypointCoords []Coordinate
	Mode           TravelMode
	Route          RouteResult
}
