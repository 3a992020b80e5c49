package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncActiveConnections()
	DecActiveConnections()
	IncActiveRooms()
	DecActiveRooms()
	IncRoundsCompleted()
	IncMatchesPersisted()
	IncPersistenceFailures()
	ObserveRaceDuration(seconds float64)
	SetStartupTime(duration float64)
}
