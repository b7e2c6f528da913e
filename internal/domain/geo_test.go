package domain

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	paris := Coordinate{Lat: 48.8566, Lng: 2.3522}
	london := Coordinate{Lat: 51.5074, Lng: -0.1278}

	got := HaversineKm(paris, london)
	if math.Abs(got-343.5) > 2 {
		t.Errorf("Paris-London distance = %.1f km, want ~343.5", got)
	}
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	p := Coordinate{Lat: 12.9716, Lng: 77.5946}
	if got := HaversineKm(p, p); got != 0 {
		t.Errorf("distance to self = %g, want 0", got)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := Coordinate{Lat: 34.0522, Lng: -118.2437}

	if d1, d2 := HaversineKm(a, b), HaversineKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %g vs %g", d1, d2)
	}
}

func TestPlanarDistance(t *testing.T) {
	a := Coordinate{Lat: 1, Lng: 1}
	b := Coordinate{Lat: 4, Lng: 5}

	if got := PlanarDistance(a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("planar distance = %g, want 5", got)
	}
}
