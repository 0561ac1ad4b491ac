package season

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

const selectSeason = `SELECT id, number, started_at, is_current FROM seasons`

// New creates a new SeasonStore.
func New(db *sql.DB) SeasonStore {
	return &store{db: db}
}

func (s *store) Current(ctx context.Context, q database.DBTX) (*Season, error) {
	season, err := scanSeason(q.QueryRowContext(ctx, selectSeason+` WHERE is_current = 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no current season: %w", apperrors.ErrNotFound)
	}
	return season, err
}

// EnsureCurrent returns the current season, opening season 1 on an empty database.
func (s *store) EnsureCurrent(ctx context.Context) (*Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Current(ctx, s.db)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO seasons (number, started_at, is_current)
		SELECT COALESCE(MAX(number), 0) + 1, ?, 1 FROM seasons WHERE true
		ON CONFLICT DO NOTHING
	`, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	current, err = s.Current(ctx, s.db)
	if err != nil {
		return nil, err
	}
	log.Info("Opened season", "number", current.Number)
	return current, nil
}

// StartNew closes the current season and opens the next one in a single transaction.
func (s *store) StartNew(ctx context.Context) (*Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `UPDATE seasons SET is_current = 0 WHERE is_current = 1`); err != nil {
		return nil, fmt.Errorf("failed to close current season: %w", err)
	}
	var next int
	if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) + 1 FROM seasons`).Scan(&next); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO seasons (number, started_at, is_current) VALUES (?, ?, 1)`, next, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to open season %d: %w", next, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	season, err := scanSeason(tx.QueryRowContext(ctx, selectSeason+` WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Started new season", "number", season.Number)
	return season, nil
}

func (s *store) List(ctx context.Context) ([]Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectSeason+` ORDER BY number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, *season)
	}
	return seasons, rows.Err()
}

func (s *store) GetByNumber(ctx context.Context, number int) (*Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	season, err := scanSeason(s.db.QueryRowContext(ctx, selectSeason+` WHERE number = ?`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("season %d: %w", number, apperrors.ErrNotFound)
	}
	return season, err
}

func scanSeason(scanner interface{ Scan(...any) error }) (*Season, error) {
	var season Season
	if err := scanner.Scan(&season.ID, &season.Number, &season.StartedAt, &season.IsCurrent); err != nil {
		return nil, err
	}
	return &season, nil
}
