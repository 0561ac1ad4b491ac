package settlement_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/settlement"
	"github.com/mauv0809/gleague/internal/standings"
	"github.com/mauv0809/gleague/internal/steam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	engine    *settlement.Engine
	db        *sql.DB
	steam     *steam.MockClient
	seasons   season.SeasonStore
	standings standings.StandingsStore
	matches   match.MatchStore
}

func setupEngine(t *testing.T, openSeason bool) (*testEnv, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	env := &testEnv{
		db:        db,
		steam:     steam.NewMock(),
		seasons:   season.New(db),
		standings: standings.New(db, 1000),
		matches:   match.New(db),
	}
	if openSeason {
		_, err = env.seasons.EnsureCurrent(context.Background())
		require.NoError(t, err)
	}
	env.engine = settlement.NewEngine(db, env.seasons, player.New(db, env.steam), env.standings, env.matches, env.steam, 20)
	return env, teardown
}

// rawMatch builds a match between accounts 1-5 (Radiant) and 6-10 (Dire).
func rawMatch(id int64, radiantWin bool) *match.RawMatch {
	raw := &match.RawMatch{MatchID: id, RadiantWin: radiantWin, Duration: 2400, GameMode: 2, StartTime: 1700000000 + id}
	for slot := 0; slot < 10; slot++ {
		raw.Players = append(raw.Players, match.RawPlayer{
			AccountID:  int64(slot + 1),
			Kills:      slot,
			HeroID:     slot + 1,
			PlayerSlot: slot,
		})
	}
	return raw
}

func (env *testEnv) record(t *testing.T, accountID int64) *standings.SeasonStats {
	t.Helper()
	current, err := env.seasons.Current(context.Background(), env.db)
	require.NoError(t, err)
	st, err := env.standings.Get(context.Background(), steam.AccountToSteamID64(accountID), current.ID)
	require.NoError(t, err)
	return st
}

func (env *testEnv) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func assertSettlementInvariants(t *testing.T, env *testEnv, m *match.Match) {
	t.Helper()
	radiantSum, direSum := 0, 0
	for _, ps := range m.PlayersStats {
		if ps.IsRadiant() {
			radiantSum += ps.PtsDiff
		} else {
			direSum += ps.PtsDiff
		}
		st := env.record(t, ps.SteamID-76561197960265728)
		assert.Equal(t, st.Pts, ps.NewPts(), "old_pts + pts_diff must equal the season points after settlement")
	}
	assert.Equal(t, radiantSum, -direSum, "settlement must be zero-sum")
}

func TestSettle_Sequence(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()
	ctx := context.Background()

	t.Run("even teams, radiant wins", func(t *testing.T) {
		m, err := env.engine.Settle(ctx, rawMatch(1, true))
		require.NoError(t, err)
		require.Len(t, m.PlayersStats, 10)
		for _, ps := range m.PlayersStats {
			assert.Equal(t, 1000, ps.OldPts)
			if ps.IsRadiant() {
				assert.Equal(t, 20, ps.PtsDiff)
			} else {
				assert.Equal(t, -20, ps.PtsDiff)
			}
			assert.NotZero(t, ps.ID)
		}
		assert.Equal(t, "hero_1", m.PlayersStats[0].Hero)
		assert.Equal(t, steam.AccountToSteamID64(1), m.PlayersStats[0].SteamID)
		assertSettlementInvariants(t, env, m)

		st := env.record(t, 1)
		assert.Equal(t, 1, st.Wins)
		assert.Equal(t, 1, st.Streak)
		st = env.record(t, 6)
		assert.Equal(t, 1, st.Losses)
		assert.Equal(t, -1, st.Streak)
	})

	t.Run("favored radiant wins again", func(t *testing.T) {
		// 5100 vs 4900: magnitude 10.
		m, err := env.engine.Settle(ctx, rawMatch(2, true))
		require.NoError(t, err)
		radiant, dire := m.TeamPtsDiff()
		assert.Equal(t, 10, radiant)
		assert.Equal(t, -10, dire)
		assertSettlementInvariants(t, env, m)

		assert.Equal(t, 2, env.record(t, 2).Streak)
		assert.Equal(t, -2, env.record(t, 7).Streak)
	})

	t.Run("favored radiant loses", func(t *testing.T) {
		// 5150 vs 4850: magnitude capped at 15.
		m, err := env.engine.Settle(ctx, rawMatch(3, false))
		require.NoError(t, err)
		radiant, dire := m.TeamPtsDiff()
		assert.Equal(t, -35, radiant)
		assert.Equal(t, 35, dire)
		assertSettlementInvariants(t, env, m)

		st := env.record(t, 3)
		assert.Equal(t, 995, st.Pts)
		assert.Equal(t, -1, st.Streak, "a loss after a win streak resets the streak to -1")
		assert.Equal(t, 2, st.LongestWinStreak)
		assert.Equal(t, 1, st.LongestLoseStreak)

		st = env.record(t, 8)
		assert.Equal(t, 1005, st.Pts)
		assert.Equal(t, 1, st.Streak)
		assert.Equal(t, 2, st.LongestLoseStreak)
	})

	t.Run("stored match matches the returned one", func(t *testing.T) {
		stored, err := env.matches.Get(ctx, 3)
		require.NoError(t, err)
		require.Len(t, stored.PlayersStats, 10)
		radiant, dire := stored.TeamPtsDiff()
		assert.Equal(t, -35, radiant)
		assert.Equal(t, 35, dire)
		assert.Equal(t, 1, stored.SeasonNumber)
	})
}

func TestSettle_DuplicateMatch(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()
	ctx := context.Background()

	_, err := env.engine.Settle(ctx, rawMatch(42, true))
	require.NoError(t, err)
	before := *env.record(t, 1)

	_, err = env.engine.Settle(ctx, rawMatch(42, false))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMatch)
	assert.Equal(t, before, *env.record(t, 1), "standings must be untouched")
	assert.Equal(t, 10, env.count(t, "player_match_stats"))
}

func TestSettle_PlayerResolutionRollsBack(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()

	failing := steam.AccountToSteamID64(7)
	env.steam.PlayerSummaryFunc = func(ctx context.Context, steamID int64) (*steam.PlayerSummary, error) {
		if steamID == failing {
			return nil, errors.New("profile is private")
		}
		return &steam.PlayerSummary{SteamID: steamID, Nickname: "ok"}, nil
	}

	_, err := env.engine.Settle(context.Background(), rawMatch(1, true))
	assert.ErrorIs(t, err, apperrors.ErrPlayerResolution)
	for _, table := range []string{"players", "season_stats", "matches", "player_match_stats"} {
		assert.Zero(t, env.count(t, table), "%s must be empty after rollback", table)
	}
}

func TestSettle_ProfileLookupHoldsNoWriteLock(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()
	ctx := context.Background()

	var once sync.Once
	var seasonErr error
	env.steam.PlayerSummaryFunc = func(ctx context.Context, steamID int64) (*steam.PlayerSummary, error) {
		once.Do(func() {
			// A concurrent writer must get the database while profiles are fetched.
			writeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			_, seasonErr = env.seasons.StartNew(writeCtx)
		})
		return &steam.PlayerSummary{SteamID: steamID, Nickname: "slow"}, nil
	}

	m, err := env.engine.Settle(ctx, rawMatch(1, true))
	require.NoError(t, err)
	require.NoError(t, seasonErr, "starting a season during profile lookup must not hit a locked database")
	assert.Equal(t, 2, m.SeasonNumber)
	assert.Len(t, env.steam.PlayerSummaryCalls, 10)
}

func TestSettle_UnknownHero(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()

	raw := rawMatch(1, true)
	raw.Players[4].HeroID = 0

	_, err := env.engine.Settle(context.Background(), raw)
	assert.ErrorIs(t, err, apperrors.ErrUnknownHero)
	assert.Empty(t, env.steam.PlayerSummaryCalls, "no player may be resolved before heroes are")
	assert.Zero(t, env.count(t, "matches"))
}

func TestSettle_InvalidPayload(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()

	raw := rawMatch(1, true)
	raw.Players = raw.Players[:8]
	_, err := env.engine.Settle(context.Background(), raw)
	assert.ErrorIs(t, err, apperrors.ErrInvalidMatch)
}

func TestSettle_NoCurrentSeason(t *testing.T) {
	env, teardown := setupEngine(t, false)
	defer teardown()

	_, err := env.engine.Settle(context.Background(), rawMatch(1, true))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, env.count(t, "players"))
}

func TestPreview_WritesNothing(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()

	m, err := env.engine.Preview(context.Background(), rawMatch(1, false))
	require.NoError(t, err)
	radiant, dire := m.TeamPtsDiff()
	assert.Equal(t, -20, radiant)
	assert.Equal(t, 20, dire)

	for _, table := range []string{"players", "season_stats", "matches", "player_match_stats"} {
		assert.Zero(t, env.count(t, table), "%s must be empty after a preview", table)
	}
}

func TestSettle_ConcurrentMatchesSharingPlayers(t *testing.T) {
	env, teardown := setupEngine(t, true)
	defer teardown()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.engine.Settle(ctx, rawMatch(int64(i+1), i%2 == 0))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	for account := int64(1); account <= 10; account++ {
		st := env.record(t, account)
		assert.Equal(t, 4, st.Wins+st.Losses, "every settlement must be counted exactly once")

		var sum int
		require.NoError(t, env.db.QueryRow(`SELECT COALESCE(SUM(pts_diff), 0) FROM player_match_stats WHERE season_stats_id = ?`, st.ID).Scan(&sum))
		assert.Equal(t, 1000+sum, st.Pts, "no lost updates")
	}
}

type mockedEnv struct {
	engine    *settlement.Engine
	players   *player.MockStore
	standings *standings.MockStore
	matches   *match.MockStore
}

// setupMockedEngine runs the engine against mocked stores. The database only
// supplies the transaction.
func setupMockedEngine(t *testing.T) (*mockedEnv, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "test.db"), "", "")
	require.NoError(t, err)

	seasons := season.NewMock()
	seasons.CurrentFunc = func(ctx context.Context, q database.DBTX) (*season.Season, error) {
		return &season.Season{ID: 1, Number: 1, IsCurrent: true}, nil
	}
	env := &mockedEnv{
		players:   player.NewMock(),
		standings: standings.NewMock(),
		matches:   match.NewMock(),
	}
	env.engine = settlement.NewEngine(db, seasons, env.players, env.standings, env.matches, steam.NewMock(), 20)
	return env, teardown
}

func TestSettle_PassesResolvedProfilesToCreation(t *testing.T) {
	env, teardown := setupMockedEngine(t)
	defer teardown()

	unseen := steam.AccountToSteamID64(3)
	env.players.ResolveProfilesFunc = func(ctx context.Context, steamIDs []int64) (map[int64]*steam.PlayerSummary, error) {
		return map[int64]*steam.PlayerSummary{unseen: {SteamID: unseen, Nickname: "Ceb"}}, nil
	}
	var created []string
	env.players.GetOrCreateFunc = func(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*player.Player, error) {
		if profile != nil {
			created = append(created, profile.Nickname)
		}
		return &player.Player{SteamID: steamID}, nil
	}

	m, err := env.engine.Settle(context.Background(), rawMatch(1, true))
	require.NoError(t, err)
	require.Len(t, env.players.ResolveProfilesCalls, 1)
	assert.Len(t, env.players.ResolveProfilesCalls[0], 10)
	assert.Equal(t, []string{"Ceb"}, created)
	assert.Len(t, env.standings.UpdateCalls, 10)
	require.Len(t, env.matches.InsertCalls, 1)
	assert.Equal(t, m.ID, env.matches.InsertCalls[0].ID)
}

func TestSettle_StoreErrorsAreNotResolutionFailures(t *testing.T) {
	dbErr := errors.New("disk I/O error")

	tests := []struct {
		name  string
		setup func(env *mockedEnv)
		want  error
	}{
		{
			name: "player directory",
			setup: func(env *mockedEnv) {
				env.players.GetOrCreateFunc = func(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*player.Player, error) {
					return nil, context.Canceled
				}
			},
			want: context.Canceled,
		},
		{
			name: "season record",
			setup: func(env *mockedEnv) {
				env.standings.GetOrCreateFunc = func(ctx context.Context, q database.DBTX, steamID, seasonID int64) (*standings.SeasonStats, error) {
					return nil, dbErr
				}
			},
			want: dbErr,
		},
		{
			name: "match insert",
			setup: func(env *mockedEnv) {
				env.matches.InsertFunc = func(ctx context.Context, q database.DBTX, m *match.Match) error {
					return dbErr
				}
			},
			want: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, teardown := setupMockedEngine(t)
			defer teardown()
			tt.setup(env)

			_, err := env.engine.Settle(context.Background(), rawMatch(1, true))
			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, apperrors.ErrPlayerResolution)
		})
	}
}

func TestSettle_DuplicateSkipsPlayerCreation(t *testing.T) {
	env, teardown := setupMockedEngine(t)
	defer teardown()

	env.matches.ExistsFunc = func(ctx context.Context, q database.DBTX, id int64) (bool, error) {
		return true, nil
	}

	_, err := env.engine.Settle(context.Background(), rawMatch(7, true))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMatch)
	assert.Empty(t, env.players.GetOrCreateCalls)
	assert.Empty(t, env.standings.UpdateCalls)
	assert.Empty(t, env.matches.InsertCalls)
}
