package navigation

import (
	"time"

	"github.com/terratalk/terratalk/internal/domain"
)

// AdjustDuration applies the realistic-travel-time heuristic to a raw routing
// service duration. Driving durations are scaled by a distance bucket and a
// rush-hour surcharge; cycling and walking get a flat factor.
func AdjustDuration(seconds, meters float64, mode domain.TravelMode, now time.Time) float64 {
	adjusted := seconds

	switch mode {
	case domain.ModeDriving:
		switch {
		case meters < 2000:
			adjusted = max(adjusted*3.0, 300)
		case meters < 5000:
			adjusted *= 2.5
		case meters < 12000:
			adjusted *= 2.2
		case meters < 20000:
			adjusted *= 2.0
		case meters < 50000:
			adjusted *= 1.8
		case meters < 100000:
			adjusted *= 1.7
		case meters < 200000:
			adjusted *= 1.65
		case meters < 300000:
			adjusted *= 1.6
		case meters < 500000:
			adjusted *= 1.55
		case meters < 700000:
			adjusted *= 1.5
		case meters < 900000:
			adjusted *= 1.45
		default:
			adjusted *= 1.4
		}
		hour := now.Hour()
		if (hour >= 7 && hour <= 10) || (hour >= 17 && hour <= 20) {
			adjusted *= 1.2
		}
	case domain.ModeCycling:
		adjusted *= 1.35
	case domain.ModeWalking:
		adjusted *= 1.25
	}

	return adjusted
}
