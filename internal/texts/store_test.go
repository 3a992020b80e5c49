package texts

import (
	"context"
	"database/sql"
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

func TestSeedPopulatesEmptyTable(t *testing.T) {
	db := setupTestDB(t)

	inserted, err := Seed(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, len(Corpus), inserted)

	// Seeding again is a no-op.
	inserted, err = Seed(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM texts").Scan(&count))
	assert.Equal(t, len(Corpus), count)
}

func TestRandomReturnsSeededText(t *testing.T) {
	db := setupTestDB(t)
	_, err := Seed(context.Background(), db)
	require.NoError(t, err)

	provider := New(db)
	text, err := provider.Random(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, text.ID)
	assert.Contains(t, Corpus, text.Content)
}

func TestRandomFallsBackOnEmptyTable(t *testing.T) {
	db := setupTestDB(t)

	provider := New(db)
	text, err := provider.Random(context.Background())
	require.NoError(t, err)
	assert.Zero(t, text.ID)
	assert.Equal(t, FallbackText, text.Content)
}
