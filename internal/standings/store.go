package standings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

const getOrCreateAttempts = 3

const selectStats = `SELECT id, steam_id, season_id, pts, wins, losses, streak, longest_winstreak, longest_losestreak FROM season_stats`

const selectStanding = `
	SELECT ss.id, ss.steam_id, ss.season_id, ss.pts, ss.wins, ss.losses, ss.streak, ss.longest_winstreak, ss.longest_losestreak, p.nickname
	FROM season_stats ss
	JOIN players p ON p.steam_id = ss.steam_id`

// New creates a new StandingsStore. Records start at basePts.
func New(db *sql.DB, basePts int) StandingsStore {
	return &store{db: db, basePts: basePts}
}

// GetOrCreate returns the player's record for the season, creating it on first
// touch. A concurrent creator that wins the insert race is resolved by fetching
// its row.
func (s *store) GetOrCreate(ctx context.Context, q database.DBTX, steamID, seasonID int64) (*SeasonStats, error) {
	for attempt := 1; attempt <= getOrCreateAttempts; attempt++ {
		stats, err := scanStats(q.QueryRowContext(ctx, selectStats+` WHERE steam_id = ? AND season_id = ?`, steamID, seasonID))
		if err == nil {
			return stats, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		res, err := q.ExecContext(ctx, `
			INSERT INTO season_stats (steam_id, season_id, pts)
			VALUES (?, ?, ?)
			ON CONFLICT(steam_id, season_id) DO NOTHING
		`, steamID, seasonID, s.basePts)
		if err != nil {
			return nil, fmt.Errorf("failed to create season stats for %d: %w", steamID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			log.Debug("Season stats created concurrently, refetching", "steamID", steamID, "seasonID", seasonID, "attempt", attempt)
		}
	}
	return nil, fmt.Errorf("season stats for %d in season %d could not be fetched after %d attempts", steamID, seasonID, getOrCreateAttempts)
}

func (s *store) Update(ctx context.Context, q database.DBTX, stats *SeasonStats) error {
	res, err := q.ExecContext(ctx, `
		UPDATE season_stats
		SET pts = ?, wins = ?, losses = ?, streak = ?, longest_winstreak = ?, longest_losestreak = ?
		WHERE id = ?
	`, stats.Pts, stats.Wins, stats.Losses, stats.Streak, stats.LongestWinStreak, stats.LongestLoseStreak, stats.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("season stats %d: %w", stats.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *store) Get(ctx context.Context, steamID, seasonID int64) (*SeasonStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, err := scanStats(s.db.QueryRowContext(ctx, selectStats+` WHERE steam_id = ? AND season_id = ?`, steamID, seasonID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("season stats for %d: %w", steamID, apperrors.ErrNotFound)
	}
	return stats, err
}

// Leaderboard returns the season's standings ordered by points, then wins.
func (s *store) Leaderboard(ctx context.Context, seasonID int64, limit, offset int) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectStanding+`
		WHERE ss.season_id = ?
		ORDER BY ss.pts DESC, ss.wins DESC, p.nickname COLLATE NOCASE
		LIMIT ? OFFSET ?
	`, seasonID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		st, err := scanStanding(rows)
		if err != nil {
			return nil, err
		}
		standings = append(standings, *st)
	}
	return standings, rows.Err()
}

// FindByNickname does a case-insensitive partial match on the nickname and
// returns the best ranked hit.
func (s *store) FindByNickname(ctx context.Context, seasonID int64, query string) (*Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	st, err := scanStanding(s.db.QueryRowContext(ctx, selectStanding+`
		WHERE ss.season_id = ? AND LOWER(p.nickname) LIKE ?
		ORDER BY LOWER(p.nickname) = ? DESC, ss.pts DESC
		LIMIT 1
	`, seasonID, pattern, strings.ToLower(strings.TrimSpace(query))))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", query, apperrors.ErrNotFound)
	}
	return st, err
}

func scanStats(scanner interface{ Scan(...any) error }) (*SeasonStats, error) {
	var st SeasonStats
	err := scanner.Scan(&st.ID, &st.SteamID, &st.SeasonID, &st.Pts, &st.Wins, &st.Losses,
		&st.Streak, &st.LongestWinStreak, &st.LongestLoseStreak)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func scanStanding(scanner interface{ Scan(...any) error }) (*Standing, error) {
	var st Standing
	err := scanner.Scan(&st.ID, &st.SteamID, &st.SeasonID, &st.Pts, &st.Wins, &st.Losses,
		&st.Streak, &st.LongestWinStreak, &st.LongestLoseStreak, &st.Nickname)
	if err != nil {
		return nil, err
	}
	if played := st.MatchesPlayed(); played > 0 {
		st.WinPercentage = float64(st.Wins) / float64(played) * 100
	}
	return &st, nil
}
