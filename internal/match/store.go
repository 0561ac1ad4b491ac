package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

const selectMatch = `
	SELECT m.id, m.season_id, s.number, m.radiant_win, m.duration, m.game_mode, m.start_time, m.created_at
	FROM matches m
	JOIN seasons s ON s.id = m.season_id`

const statsColumns = `pms.id, pms.season_stats_id, pms.match_id, ss.steam_id, p.nickname, pms.old_pts, pms.pts_diff,
	pms.kills, pms.deaths, pms.assists, pms.hero, pms.hero_damage, pms.hero_healing, pms.tower_damage,
	pms.last_hits, pms.denies, pms.level, pms.xp_per_min, pms.gold_per_min, pms.damage_taken, pms.player_slot`

const statsJoins = `
	FROM player_match_stats pms
	JOIN season_stats ss ON ss.id = pms.season_stats_id
	JOIN players p ON p.steam_id = ss.steam_id`

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{db: db}
}

func (s *store) Exists(ctx context.Context, q database.DBTX, id int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM matches WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

func (s *store) Insert(ctx context.Context, q database.DBTX, m *Match) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO matches (id, season_id, radiant_win, duration, game_mode, start_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.SeasonID, m.RadiantWin, m.Duration, m.GameMode, m.StartTime, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match %d: %w", m.ID, err)
	}

	for i := range m.PlayersStats {
		ps := &m.PlayersStats[i]
		ps.MatchID = m.ID
		res, err := q.ExecContext(ctx, `
			INSERT INTO player_match_stats (
				season_stats_id, match_id, old_pts, pts_diff, kills, deaths, assists, hero,
				hero_damage, hero_healing, tower_damage, last_hits, denies, level,
				xp_per_min, gold_per_min, damage_taken, player_slot
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, ps.SeasonStatsID, ps.MatchID, ps.OldPts, ps.PtsDiff, ps.Kills, ps.Deaths, ps.Assists, ps.Hero,
			ps.HeroDamage, ps.HeroHealing, ps.TowerDamage, ps.LastHits, ps.Denies, ps.Level,
			ps.XPPerMin, ps.GoldPerMin, ps.DamageTaken, ps.PlayerSlot)
		if err != nil {
			return fmt.Errorf("failed to insert stats for slot %d of match %d: %w", ps.PlayerSlot, m.ID, err)
		}
		if ps.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) Get(ctx context.Context, id int64) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMatch(s.db.QueryRowContext(ctx, selectMatch+` WHERE m.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if m.PlayersStats, err = s.loadStats(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns matches newest first.
func (s *store) List(ctx context.Context, limit, offset int) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectMatch+` ORDER BY m.start_time DESC, m.id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		matches = append(matches, *m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range matches {
		if matches[i].PlayersStats, err = s.loadStats(ctx, matches[i].ID); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (s *store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n)
	return n, err
}

// PlayerHistory returns the player's stats rows across all seasons, newest match first.
func (s *store) PlayerHistory(ctx context.Context, steamID int64, query HistoryQuery) (*HistoryPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query.Page < 1 {
		query.Page = 1
	}
	where := ` WHERE ss.steam_id = ?`
	args := []any{steamID}
	if query.Hero != "" {
		where += ` AND pms.hero = ?`
		args = append(args, query.Hero)
	}

	page := &HistoryPage{Page: query.Page, PerPage: query.PerPage, Entries: []HistoryEntry{}}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+statsJoins+where, args...).Scan(&page.Total); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+statsColumns+`, m.radiant_win, m.duration, m.game_mode, m.start_time`+statsJoins+`
		JOIN matches m ON m.id = pms.match_id`+where+`
		ORDER BY pms.match_id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PerPage, (query.Page-1)*query.PerPage)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e HistoryEntry
		dest := append(statsDest(&e.PlayerStats), &e.RadiantWin, &e.Duration, &e.GameMode, &e.StartTime)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		page.Entries = append(page.Entries, e)
	}
	return page, rows.Err()
}

// PointsHistory returns the player's points after each match of the season, oldest first.
func (s *store) PointsHistory(ctx context.Context, steamID, seasonID int64) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pms.old_pts + pms.pts_diff
		FROM player_match_stats pms
		JOIN season_stats ss ON ss.id = pms.season_stats_id
		WHERE ss.steam_id = ? AND ss.season_id = ?
		ORDER BY pms.match_id
	`, steamID, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []int{}
	for rows.Next() {
		var pts int
		if err := rows.Scan(&pts); err != nil {
			return nil, err
		}
		history = append(history, pts)
	}
	return history, rows.Err()
}

// SignatureHeroes returns the player's most played heroes.
func (s *store) SignatureHeroes(ctx context.Context, steamID int64, limit int) ([]HeroSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pms.hero, COUNT(*), SUM(CASE WHEN pms.pts_diff > 0 THEN 1 ELSE 0 END), AVG(pms.pts_diff)
		FROM player_match_stats pms
		JOIN season_stats ss ON ss.id = pms.season_stats_id
		WHERE ss.steam_id = ?
		GROUP BY pms.hero
		ORDER BY COUNT(*) DESC, AVG(pms.pts_diff) DESC, pms.hero
		LIMIT ?
	`, steamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	heroes := []HeroSummary{}
	for rows.Next() {
		var h HeroSummary
		if err := rows.Scan(&h.Hero, &h.Played, &h.Wins, &h.AvgPtsDiff); err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

func (s *store) loadStats(ctx context.Context, matchID int64) ([]PlayerStats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+statsColumns+statsJoins+` WHERE pms.match_id = ? ORDER BY pms.player_slot`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var ps PlayerStats
		if err := rows.Scan(statsDest(&ps)...); err != nil {
			log.Error("Failed to scan player match stats", "matchID", matchID, "error", err)
			return nil, err
		}
		stats = append(stats, ps)
	}
	return stats, rows.Err()
}

func statsDest(ps *PlayerStats) []any {
	return []any{
		&ps.ID, &ps.SeasonStatsID, &ps.MatchID, &ps.SteamID, &ps.Nickname, &ps.OldPts, &ps.PtsDiff,
		&ps.Kills, &ps.Deaths, &ps.Assists, &ps.Hero, &ps.HeroDamage, &ps.HeroHealing, &ps.TowerDamage,
		&ps.LastHits, &ps.Denies, &ps.Level, &ps.XPPerMin, &ps.GoldPerMin, &ps.DamageTaken, &ps.PlayerSlot,
	}
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var m Match
	err := scanner.Scan(&m.ID, &m.SeasonID, &m.SeasonNumber, &m.RadiantWin, &m.Duration, &m.GameMode, &m.StartTime, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
