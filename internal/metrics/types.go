package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	ActiveConnections   prometheus.Gauge
	ActiveRooms         prometheus.Gauge
	RoundsCompleted     prometheus.Counter
	MatchesPersisted    prometheus.Counter
	PersistenceFailures prometheus.Counter
	RaceDuration        prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
