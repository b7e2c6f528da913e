package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VoiceCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terratalk_voice_commands_total",
		Help: "Total voice commands dispatched",
	}, []string{"intent", "status"})

	InterpreterLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terratalk_interpreter_latency_seconds",
		Help:    "Latency of transcript interpretation",
		Buckets: prometheus.DefBuckets,
	})

	ActiveJourneys = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "terratalk_active_journeys",
		Help: "Journeys currently being tracked",
	})

	GeocodeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terratalk_geocode_cache_hits_total",
		Help: "Geocoding lookups served from cache",
	})

	RouteRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terratalk_route_requests_total",
		Help: "Route computations by travel mode",
	}, []string{"mode", "status"})

	SignalClientsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "terratalk_signal_clients_connected",
		Help: "Presentation clients connected to the signal server",
	})
)
