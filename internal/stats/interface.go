package stats

import "context"

// Store persists completed rounds and serves per-player history. Writes are
// single-attempt: the orchestrator logs and drops any error, so the live
// round outcome is never affected by a failed durable write.
type Store interface {
	// RecordMatch inserts one immutable match row and folds both sides into
	// their running player aggregates, all in one transaction.
	RecordMatch(ctx context.Context, rec MatchRecord) error
	// PlayerMatches returns the player's match history, most recent first,
	// shaped for display.
	PlayerMatches(ctx context.Context, guestID string) ([]MatchSummary, error)
	// PlayerAggregate returns the player's running aggregate, or a zero
	// aggregate if the player has not completed a round yet.
	PlayerAggregate(ctx context.Context, guestID string) (Aggregate, error)
}
