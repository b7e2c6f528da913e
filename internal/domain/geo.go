package domain

import "math"

// Coordinate is a WGS 84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SpeedUnknown marks a position fix whose device did not report a ground
// speed.
const SpeedUnknown = -1.0

// Position is a geolocation fix reported by the device.
type Position struct {
	Coordinate
	// Speed is the ground speed in m/s; SpeedUnknown when the device did
	// not report one.
	Speed float64 `json:"speed"`
}

const earthRadiusKm = 6371

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers, using the mean Earth radius.
func HaversineKm(from, to Coordinate) float64 {
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Lat*math.Pi/180)*math.Cos(to.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// PlanarDistance returns the raw coordinate-space distance in degrees between
// two points. Journey tracking reports this figure, not a geodesic distance,
// matching the tracked-journey status line format.
func PlanarDistance(from, to Coordinate) float64 {
	dLat := from.Lat - to.Lat
	dLng := from.Lng - to.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
