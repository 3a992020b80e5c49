// Package stats is the persistence pipeline for completed rounds: one
// immutable match row plus a running aggregate per participant.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type store struct {
	db *sql.DB
}

// New creates a stats Store on top of the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) RecordMatch(ctx context.Context, rec MatchRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback()

	var textID sql.NullInt64
	if rec.TextID != 0 {
		textID = sql.NullInt64{Int64: rec.TextID, Valid: true}
	}

	now := time.Now()
	matchID := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (
			id, player1_guest_id, player2_guest_id, winner_guest_id,
			player1_wpm, player2_wpm, player1_accuracy, player2_accuracy,
			player1_time, player2_time, player1_chars_typed, player2_chars_typed,
			text_id, played_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		matchID, rec.Player1GuestID, rec.Player2GuestID, rec.WinnerGuestID,
		rec.Player1.WPM, rec.Player2.WPM, rec.Player1.Accuracy, rec.Player2.Accuracy,
		rec.Player1.TimeSeconds, rec.Player2.TimeSeconds,
		rec.Player1.CharsTyped, rec.Player2.CharsTyped, textID, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	if err := upsertAggregate(ctx, tx, rec.Player1GuestID, rec.Player1, rec.WinnerGuestID == rec.Player1GuestID, now); err != nil {
		return err
	}
	if err := upsertAggregate(ctx, tx, rec.Player2GuestID, rec.Player2, rec.WinnerGuestID == rec.Player2GuestID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match transaction: %w", err)
	}

	log.Info("Recorded match", "id", matchID, "winner", rec.WinnerGuestID)
	return nil
}

// upsertAggregate folds one side's round into the player's running totals.
// The averages are weighted running means over games_played; best_wpm only
// ever increases.
func upsertAggregate(ctx context.Context, tx *sql.Tx, guestID string, side SideResult, won bool, now time.Time) error {
	wonInc := 0
	if won {
		wonInc = 1
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO player_stats (
			guest_id, games_played, games_won, avg_wpm, best_wpm,
			avg_accuracy, total_characters_typed, updated_at
		) VALUES (?, 1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guest_id) DO UPDATE SET
			games_played = player_stats.games_played + 1,
			games_won = player_stats.games_won + excluded.games_won,
			avg_wpm = (player_stats.avg_wpm * player_stats.games_played + excluded.avg_wpm)
				/ (player_stats.games_played + 1),
			avg_accuracy = (player_stats.avg_accuracy * player_stats.games_played + excluded.avg_accuracy)
				/ (player_stats.games_played + 1),
			best_wpm = MAX(player_stats.best_wpm, excluded.best_wpm),
			total_characters_typed = player_stats.total_characters_typed + excluded.total_characters_typed,
			updated_at = excluded.updated_at`,
		guestID, wonInc, float64(side.WPM), side.WPM,
		float64(side.Accuracy), side.CharsTyped, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert player aggregate for %s: %w", guestID, err)
	}
	return nil
}

func (s *store) PlayerMatches(ctx context.Context, guestID string) ([]MatchSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.player1_guest_id, m.winner_guest_id,
			m.player1_wpm, m.player2_wpm, m.player1_accuracy, m.player2_accuracy,
			m.played_at,
			COALESCE(u1.display_name, 'unknown'), COALESCE(u2.display_name, 'unknown')
		FROM matches m
		LEFT JOIN anonymous_users u1 ON u1.guest_id = m.player1_guest_id
		LEFT JOIN anonymous_users u2 ON u2.guest_id = m.player2_guest_id
		WHERE m.player1_guest_id = ? OR m.player2_guest_id = ?
		ORDER BY m.played_at DESC
		LIMIT 50`,
		guestID, guestID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchSummary
	for rows.Next() {
		var (
			id, p1, winner string
			p1WPM, p2WPM   int
			p1Acc, p2Acc   int
			playedAt       int64
			p1Name, p2Name string
		)
		if err := rows.Scan(&id, &p1, &winner, &p1WPM, &p2WPM, &p1Acc, &p2Acc, &playedAt, &p1Name, &p2Name); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}

		m := MatchSummary{ID: id, PlayedAt: time.Unix(playedAt, 0)}
		if p1 == guestID {
			m.Opponent = p2Name
			m.PlayerWPM, m.OpponentWPM = p1WPM, p2WPM
			m.PlayerAccuracy = p1Acc
		} else {
			m.Opponent = p1Name
			m.PlayerWPM, m.OpponentWPM = p2WPM, p1WPM
			m.PlayerAccuracy = p2Acc
		}
		m.Result = "LOSS"
		if winner == guestID {
			m.Result = "WIN"
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *store) PlayerAggregate(ctx context.Context, guestID string) (Aggregate, error) {
	agg := Aggregate{GuestID: guestID}
	err := s.db.QueryRowContext(ctx, `
		SELECT games_played, games_won, avg_wpm, best_wpm, avg_accuracy, total_characters_typed
		FROM player_stats WHERE guest_id = ?`,
		guestID,
	).Scan(&agg.GamesPlayed, &agg.GamesWon, &agg.AvgWPM, &agg.BestWPM, &agg.AvgAccuracy, &agg.TotalCharactersTyped)
	if err == sql.ErrNoRows {
		return agg, nil
	}
	if err != nil {
		return agg, fmt.Errorf("failed to query player aggregate: %w", err)
	}
	return agg, nil
}
