package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	activeConnections   int
	activeRooms         int
	roundsCompleted     int
	matchesPersisted    int
	persistenceFailures int
	raceDurations       []float64
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncActiveConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeConnections++
}

func (m *Mock) DecActiveConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeConnections--
}

func (m *Mock) IncActiveRooms() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeRooms++
}

func (m *Mock) DecActiveRooms() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeRooms--
}

func (m *Mock) IncRoundsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsCompleted++
}

func (m *Mock) IncMatchesPersisted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesPersisted++
}

func (m *Mock) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailures++
}

func (m *Mock) ObserveRaceDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raceDurations = append(m.raceDurations, seconds)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ActiveConnections returns the current mock gauge value.
func (m *Mock) ActiveConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeConnections
}

// ActiveRooms returns the current mock gauge value.
func (m *Mock) ActiveRooms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeRooms
}

// RoundsCompleted returns the number of completed rounds observed.
func (m *Mock) RoundsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsCompleted
}

// PersistenceFailures returns the number of failed writes observed.
func (m *Mock) PersistenceFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistenceFailures
}
