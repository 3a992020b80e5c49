package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tyfighter_active_connections",
			Help: "The number of websocket connections currently open.",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tyfighter_active_rooms",
			Help: "The number of rooms currently live in the session store.",
		}),
		RoundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyfighter_rounds_completed_total",
			Help: "The total number of rounds where both players reported a result.",
		}),
		MatchesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyfighter_matches_persisted_total",
			Help: "The total number of match records written to the database.",
		}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tyfighter_persistence_failures_total",
			Help: "The total number of failed match record writes.",
		}),
		RaceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tyfighter_race_duration_seconds",
			Help:    "The self-reported race time of finishing players.",
			Buckets: []float64{15, 30, 45, 60, 90, 120, 180, 300},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tyfighter_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ActiveConnections,
		s.ActiveRooms,
		s.RoundsCompleted,
		s.MatchesPersisted,
		s.PersistenceFailures,
		s.RaceDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncActiveConnections() {
	s.ActiveConnections.Inc()
}

func (s *Service) DecActiveConnections() {
	s.ActiveConnections.Dec()
}

func (s *Service) IncActiveRooms() {
	s.ActiveRooms.Inc()
}

func (s *Service) DecActiveRooms() {
	s.ActiveRooms.Dec()
}

func (s *Service) IncRoundsCompleted() {
	s.RoundsCompleted.Inc()
}

func (s *Service) IncMatchesPersisted() {
	s.MatchesPersisted.Inc()
}

func (s *Service) IncPersistenceFailures() {
	s.PersistenceFailures.Inc()
}

func (s *Service) ObserveRaceDuration(seconds float64) {
	s.RaceDuration.Observe(seconds)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
