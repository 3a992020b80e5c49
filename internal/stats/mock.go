package stats

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	RecordMatchFunc     func(ctx context.Context, rec MatchRecord) error
	PlayerMatchesFunc   func(ctx context.Context, guestID string) ([]MatchSummary, error)
	PlayerAggregateFunc func(ctx context.Context, guestID string) (Aggregate, error)

	RecordMatchCalls []MatchRecord
}

func (m *MockStore) RecordMatch(ctx context.Context, rec MatchRecord) error {
	m.mu.Lock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, rec)
	m.mu.Unlock()
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(ctx, rec)
	}
	return nil
}

func (m *MockStore) PlayerMatches(ctx context.Context, guestID string) ([]MatchSummary, error) {
	if m.PlayerMatchesFunc != nil {
		return m.PlayerMatchesFunc(ctx, guestID)
	}
	return nil, nil
}

func (m *MockStore) PlayerAggregate(ctx context.Context, guestID string) (Aggregate, error) {
	if m.PlayerAggregateFunc != nil {
		return m.PlayerAggregateFunc(ctx, guestID)
	}
	return Aggregate{GuestID: guestID}, nil
}

// Recorded returns a snapshot of the RecordMatch calls seen so far.
func (m *MockStore) Recorded() []MatchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MatchRecord, len(m.RecordMatchCalls))
	copy(out, m.RecordMatchCalls)
	return out
}
