// Package identity bootstraps anonymous guest users.
package identity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
}

// New creates an identity Store on top of the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) GetOrCreate(ctx context.Context, guestID string) (User, error) {
	user, err := s.get(ctx, guestID)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return User{}, fmt.Errorf("failed to look up guest %s: %w", guestID, err)
	}

	user = User{
		GuestID:     guestID,
		DisplayName: randomName(),
		Theme:       DefaultTheme,
		CreatedAt:   time.Now(),
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO anonymous_users (guest_id, display_name, theme, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(guest_id) DO NOTHING`,
		user.GuestID, user.DisplayName, user.Theme, user.CreatedAt.Unix(),
	)
	if err != nil {
		return User{}, fmt.Errorf("failed to create guest %s: %w", guestID, err)
	}

	// A concurrent bootstrap for the same guest may have won the insert;
	// re-read so both callers see the same row.
	user, err = s.get(ctx, guestID)
	if err != nil {
		return User{}, fmt.Errorf("failed to re-read guest %s: %w", guestID, err)
	}
	log.Info("Guest initialized", "guestId", guestID, "displayName", user.DisplayName)
	return user, nil
}

func (s *store) get(ctx context.Context, guestID string) (User, error) {
	var user User
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT guest_id, display_name, theme, created_at
		FROM anonymous_users WHERE guest_id = ?`,
		guestID,
	).Scan(&user.GuestID, &user.DisplayName, &user.Theme, &createdAt)
	if err != nil {
		return User{}, err
	}
	user.CreatedAt = time.Unix(createdAt, 0)
	return user, nil
}

func (s *store) UpdateTheme(ctx context.Context, guestID, theme string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE anonymous_users SET theme = ? WHERE guest_id = ?`,
		theme, guestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update theme for %s: %w", guestID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("guest not found: %s", guestID)
	}
	return nil
}
