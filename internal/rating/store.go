package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// New creates a new RatingStore.
func New(db *sql.DB) RatingStore {
	return &store{db: db}
}

// Rate records a rating. The rater must have played the match, may not rate
// their own row and may rate each row only once.
func (s *store) Rate(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*Rating, error) {
	if value < MinRating || value > MaxRating {
		return nil, fmt.Errorf("rating %d: %w", value, apperrors.ErrInvalidRating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var statsMatchID int64
	err = tx.QueryRowContext(ctx, `SELECT match_id FROM player_match_stats WHERE id = ?`, statsID).Scan(&statsMatchID)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && statsMatchID != matchID) {
		return nil, fmt.Errorf("stats %d in match %d: %w", statsID, matchID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	ownStatsID, err := playedStatsID(ctx, tx, matchID, raterSteamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d did not play match %d: %w", raterSteamID, matchID, apperrors.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if ownStatsID == statsID {
		return nil, fmt.Errorf("player %d cannot rate their own performance: %w", raterSteamID, apperrors.ErrForbidden)
	}

	r := &Rating{RatedBySteamID: raterSteamID, PlayerMatchStatsID: statsID, Rating: value, CreatedAt: time.Now().Unix()}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO player_match_ratings (rated_by_steam_id, player_match_stats_id, rating, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(rated_by_steam_id, player_match_stats_id) DO NOTHING
	`, r.RatedBySteamID, r.PlayerMatchStatsID, r.Rating, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rating: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, fmt.Errorf("player %d already rated stats %d: %w", raterSteamID, statsID, apperrors.ErrForbidden)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	log.Debug("Rating recorded", "matchID", matchID, "statsID", statsID, "rater", raterSteamID, "rating", value)
	return r, nil
}

func (s *store) GetRatings(ctx context.Context, matchID int64, viewer *int64) (map[int64]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pms.id, AVG(r.rating), COUNT(r.id)
		FROM player_match_stats pms
		LEFT JOIN player_match_ratings r ON r.player_match_stats_id = pms.id
		WHERE pms.match_id = ?
		GROUP BY pms.id
	`, matchID)
	if err != nil {
		return nil, err
	}
	summaries := make(map[int64]Summary)
	for rows.Next() {
		var id int64
		var avg sql.NullFloat64
		var sum Summary
		if err := rows.Scan(&id, &avg, &sum.RatingCount); err != nil {
			rows.Close()
			return nil, err
		}
		if avg.Valid {
			sum.AvgRating = &avg.Float64
		}
		summaries[id] = sum
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("match %d: %w", matchID, apperrors.ErrNotFound)
	}

	if viewer == nil {
		return summaries, nil
	}
	ownStatsID, err := playedStatsID(ctx, s.db, matchID, *viewer)
	if errors.Is(err, sql.ErrNoRows) {
		return summaries, nil
	}
	if err != nil {
		return nil, err
	}
	rated, err := s.ratedBy(ctx, matchID, *viewer)
	if err != nil {
		return nil, err
	}
	for id, sum := range summaries {
		sum.AllowedToRate = id != ownStatsID && !rated[id]
		summaries[id] = sum
	}
	return summaries, nil
}

// PlayerAverage returns the mean of every rating the player has received.
func (s *store) PlayerAverage(ctx context.Context, steamID int64) (float64, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var avg sql.NullFloat64
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT AVG(r.rating), COUNT(r.id)
		FROM player_match_ratings r
		JOIN player_match_stats pms ON pms.id = r.player_match_stats_id
		JOIN season_stats ss ON ss.id = pms.season_stats_id
		WHERE ss.steam_id = ?
	`, steamID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg.Float64, count, nil
}

func (s *store) ratedBy(ctx context.Context, matchID, steamID int64) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.player_match_stats_id
		FROM player_match_ratings r
		JOIN player_match_stats pms ON pms.id = r.player_match_stats_id
		WHERE pms.match_id = ? AND r.rated_by_steam_id = ?
	`, matchID, steamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rated := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		rated[id] = true
	}
	return rated, rows.Err()
}

// playedStatsID returns the stats row id of steamID in the match, or sql.ErrNoRows.
func playedStatsID(ctx context.Context, q database.DBTX, matchID, steamID int64) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT pms.id
		FROM player_match_stats pms
		JOIN season_stats ss ON ss.id = pms.season_stats_id
		WHERE pms.match_id = ? AND ss.steam_id = ?
	`, matchID, steamID).Scan(&id)
	return id, err
}
