package season_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (season.SeasonStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)
	return season.New(db), db, teardown
}

func TestCurrent_EmptyDatabase(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Current(context.Background(), db)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnsureCurrent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	first, err := store.EnsureCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)
	assert.True(t, first.IsCurrent)

	again, err := store.EnsureCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "EnsureCurrent must not open a second season")

	current, err := store.Current(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)
}

func TestStartNew(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := store.EnsureCurrent(ctx)
	require.NoError(t, err)

	second, err := store.StartNew(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)

	t.Run("only one season is current", func(t *testing.T) {
		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM seasons WHERE is_current = 1`).Scan(&count))
		assert.Equal(t, 1, count)

		current, err := store.Current(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, second.ID, current.ID)
	})

	t.Run("list is newest first", func(t *testing.T) {
		seasons, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, seasons, 2)
		assert.Equal(t, 2, seasons[0].Number)
		assert.False(t, seasons[1].IsCurrent)
	})

	t.Run("lookup by number", func(t *testing.T) {
		first, err := store.GetByNumber(ctx, 1)
		require.NoError(t, err)
		assert.False(t, first.IsCurrent)

		_, err = store.GetByNumber(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestStartNew_EmptyDatabase(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	s, err := store.StartNew(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Number)
}
