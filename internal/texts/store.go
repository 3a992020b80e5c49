// Package texts serves the race-text corpus backed by the texts table.
package texts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
}

// New creates a corpus Provider on top of the given database.
func New(db *sql.DB) Provider {
	return &store{db: db}
}

// Random picks one paragraph uniformly at random. Lookup failures (including
// an empty table) are logged and answered with the fallback pangram.
func (s *store) Random(ctx context.Context) (Text, error) {
	var t Text
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content FROM texts ORDER BY RANDOM() LIMIT 1`,
	).Scan(&t.ID, &t.Content)
	if err != nil {
		log.Error("Failed to fetch race text, using fallback", "error", err)
		return Text{Content: FallbackText}, nil
	}
	return t, nil
}

// Seed inserts the built-in corpus when the texts table is empty. It reports
// how many paragraphs were inserted.
func Seed(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM texts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count texts: %w", err)
	}
	if count > 0 {
		log.Info("Texts table already seeded", "count", count)
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, content := range Corpus {
		if _, err := tx.ExecContext(ctx, `INSERT INTO texts (content) VALUES (?)`, content); err != nil {
			return 0, fmt.Errorf("failed to insert text: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Info("Seeded texts table", "count", len(Corpus))
	return len(Corpus), nil
}
