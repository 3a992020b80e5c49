package identity

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkola/ty-fighter/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return db
}

func TestGetOrCreateBootstrapsGuest(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	user, err := store.GetOrCreate(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Equal(t, "guest-1", user.GuestID)
	assert.NotEmpty(t, user.DisplayName)
	assert.Equal(t, DefaultTheme, user.Theme)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestGetOrCreateIsStable(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	first, err := store.GetOrCreate(context.Background(), "guest-1")
	require.NoError(t, err)
	second, err := store.GetOrCreate(context.Background(), "guest-1")
	require.NoError(t, err)

	assert.Equal(t, first.DisplayName, second.DisplayName)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM anonymous_users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateTheme(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	_, err := store.GetOrCreate(context.Background(), "guest-1")
	require.NoError(t, err)

	require.NoError(t, store.UpdateTheme(context.Background(), "guest-1", "catppuccin"))

	user, err := store.GetOrCreate(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Equal(t, "catppuccin", user.Theme)
}

func TestUpdateThemeUnknownGuest(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	err := store.UpdateTheme(context.Background(), "nobody", "catppuccin")
	assert.ErrorContains(t, err, "guest not found")
}

func TestRandomNameShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{1,3}$`)
	for i := 0; i < 50; i++ {
		name := randomName()
		assert.Regexp(t, pattern, name)
	}
}
