package identity

import (
	"context"
	"time"
)

// Store manages anonymous guest identities. Guests are keyed by a
// client-supplied opaque id; the server only decorates them with a display
// name and a theme.
type Store interface {
	// GetOrCreate returns the guest row for the given id, creating it with a
	// generated display name and the default theme on first sight.
	GetOrCreate(ctx context.Context, guestID string) (User, error)
	// UpdateTheme sets the guest's UI theme.
	UpdateTheme(ctx context.Context, guestID, theme string) error
}

// User is one anonymous guest.
type User struct {
	GuestID     string    `json:"guestId"`
	DisplayName string    `json:"displayName"`
	Theme       string    `json:"theme"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DefaultTheme is assigned to newly created guests.
const DefaultTheme = "rose-pine"
