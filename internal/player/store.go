package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/steam"
)

const selectPlayer = `SELECT steam_id, nickname, avatar, created_at FROM players`

// New creates a new PlayerStore that resolves unseen players through lookup.
func New(db *sql.DB, lookup ProfileLookup) PlayerStore {
	return &store{db: db, lookup: lookup}
}

// ResolveProfiles fetches the Steam profile of every id not yet in the
// directory. It only reads the database, so callers run it before opening the
// settlement transaction. Any lookup failure is reported as ErrPlayerResolution.
func (s *store) ResolveProfiles(ctx context.Context, steamIDs []int64) (map[int64]*steam.PlayerSummary, error) {
	profiles := make(map[int64]*steam.PlayerSummary)
	for _, steamID := range steamIDs {
		if _, ok := profiles[steamID]; ok {
			continue
		}
		_, err := scanPlayer(s.db.QueryRowContext(ctx, selectPlayer+` WHERE steam_id = ?`, steamID))
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		profile, err := s.lookup.PlayerSummary(ctx, steamID)
		if err != nil {
			log.Warn("Failed to resolve player profile", "steamID", steamID, "error", err)
			return nil, fmt.Errorf("%w: steam id %d: %v", apperrors.ErrPlayerResolution, steamID, err)
		}
		profiles[steamID] = profile
	}
	return profiles, nil
}

// GetOrCreate returns the stored player or creates it from profile, which
// must come from ResolveProfiles when the player is unseen.
func (s *store) GetOrCreate(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*Player, error) {
	p, err := scanPlayer(q.QueryRowContext(ctx, selectPlayer+` WHERE steam_id = ?`, steamID))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: steam id %d has no resolved profile", apperrors.ErrPlayerResolution, steamID)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO players (steam_id, nickname, avatar, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(steam_id) DO NOTHING
	`, steamID, profile.Nickname, profile.Avatar, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert player %d: %w", steamID, err)
	}
	log.Info("Created player", "steamID", steamID, "nickname", profile.Nickname)

	return scanPlayer(q.QueryRowContext(ctx, selectPlayer+` WHERE steam_id = ?`, steamID))
}

func (s *store) Get(ctx context.Context, steamID int64) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := scanPlayer(s.db.QueryRowContext(ctx, selectPlayer+` WHERE steam_id = ?`, steamID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %d: %w", steamID, apperrors.ErrNotFound)
	}
	return p, err
}

func (s *store) List(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectPlayer+` ORDER BY nickname COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	if err := scanner.Scan(&p.SteamID, &p.Nickname, &p.Avatar, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
