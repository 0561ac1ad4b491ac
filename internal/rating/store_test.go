package rating_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB seeds match 1 played by steam ids 1..10, whose stats rows have
// ids 1..10, and match 2 played by steam ids 1..5 and 11..15 (stats ids 11..20).
func setupTestDB(t *testing.T) (rating.RatingStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	exec := func(query string, args ...any) {
		_, err := db.Exec(query, args...)
		require.NoError(t, err)
	}
	exec(`INSERT INTO seasons (id, number, started_at, is_current) VALUES (1, 1, 0, 1)`)
	for i := int64(1); i <= 16; i++ {
		exec(`INSERT INTO players (steam_id, nickname, created_at) VALUES (?, ?, 0)`, i, fmt.Sprintf("p%d", i))
		exec(`INSERT INTO season_stats (id, steam_id, season_id, pts) VALUES (?, ?, 1, 1000)`, i, i)
	}
	exec(`INSERT INTO matches (id, season_id, radiant_win, duration, game_mode, start_time, created_at) VALUES (1, 1, 1, 0, 2, 0, 0), (2, 1, 0, 0, 2, 0, 0)`)
	for slot := 0; slot < 10; slot++ {
		exec(`INSERT INTO player_match_stats (id, season_stats_id, match_id, old_pts, pts_diff, kills, deaths, assists, hero, hero_damage, last_hits, denies, level, player_slot)
			VALUES (?, ?, 1, 1000, 20, 0, 0, 0, 'axe', 0, 0, 0, 1, ?)`, slot+1, slot+1, slot)
		player := int64(slot + 1)
		if slot >= 5 {
			player = int64(slot + 6)
		}
		exec(`INSERT INTO player_match_stats (id, season_stats_id, match_id, old_pts, pts_diff, kills, deaths, assists, hero, hero_damage, last_hits, denies, level, player_slot)
			VALUES (?, ?, 2, 1000, 20, 0, 0, 0, 'axe', 0, 0, 0, 1, ?)`, slot+11, player, slot)
	}
	return rating.New(db), db, teardown
}

func TestRate(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	r, err := store.Rate(ctx, 1, 2, 1, 4)
	require.NoError(t, err)
	assert.NotZero(t, r.ID)
	assert.Equal(t, 4, r.Rating)

	tests := []struct {
		name    string
		matchID int64
		statsID int64
		rater   int64
		value   int
		err     error
	}{
		{"rating below range", 1, 3, 1, 0, apperrors.ErrInvalidRating},
		{"rating above range", 1, 3, 1, 6, apperrors.ErrInvalidRating},
		{"unknown stats row", 1, 999, 1, 3, apperrors.ErrNotFound},
		{"stats row of another match", 1, 12, 1, 3, apperrors.ErrNotFound},
		{"rater did not play", 1, 3, 16, 3, apperrors.ErrForbidden},
		{"rater played another match only", 1, 3, 11, 3, apperrors.ErrForbidden},
		{"own performance", 1, 1, 1, 5, apperrors.ErrForbidden},
		{"already rated", 1, 2, 1, 5, apperrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Rate(ctx, tt.matchID, tt.statsID, tt.rater, tt.value)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRate_ConcurrentDoubleRate(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Rate(ctx, 1, 7, 6, 3)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM player_match_ratings`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetRatings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	for rater, value := range map[int64]int{1: 4, 2: 4, 3: 5} {
		_, err := store.Rate(ctx, 1, 10, rater, value)
		require.NoError(t, err)
	}

	t.Run("without viewer", func(t *testing.T) {
		ratings, err := store.GetRatings(ctx, 1, nil)
		require.NoError(t, err)
		require.Len(t, ratings, 10)

		rated := ratings[10]
		require.NotNil(t, rated.AvgRating)
		assert.InDelta(t, 4.3333, *rated.AvgRating, 0.001)
		assert.Equal(t, 3, rated.RatingCount)
		assert.False(t, rated.AllowedToRate)

		assert.Nil(t, ratings[5].AvgRating, "unrated rows have no average")
		assert.Zero(t, ratings[5].RatingCount)
	})

	t.Run("participant viewer", func(t *testing.T) {
		viewer := int64(1)
		ratings, err := store.GetRatings(ctx, 1, &viewer)
		require.NoError(t, err)
		assert.False(t, ratings[1].AllowedToRate, "own row")
		assert.False(t, ratings[10].AllowedToRate, "already rated")
		assert.True(t, ratings[5].AllowedToRate)
	})

	t.Run("outsider viewer", func(t *testing.T) {
		viewer := int64(16)
		ratings, err := store.GetRatings(ctx, 1, &viewer)
		require.NoError(t, err)
		for id, sum := range ratings {
			assert.False(t, sum.AllowedToRate, "stats %d", id)
		}
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := store.GetRatings(ctx, 404, nil)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("player average", func(t *testing.T) {
		avg, count, err := store.PlayerAverage(ctx, 10)
		require.NoError(t, err)
		assert.InDelta(t, 4.3333, avg, 0.001)
		assert.Equal(t, 3, count)

		avg, count, err = store.PlayerAverage(ctx, 9)
		require.NoError(t, err)
		assert.Zero(t, avg)
		assert.Zero(t, count)
	})
}
