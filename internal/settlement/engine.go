package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/player"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
	"github.com/mauv0809/gleague/internal/steam"
)

// Engine settles matches against the current season's standings.
type Engine struct {
	db        *sql.DB
	seasons   season.SeasonStore
	players   player.PlayerStore
	standings standings.StandingsStore
	matches   match.MatchStore
	heroes    HeroLookup
	baseDiff  int

	// mu serialises settlements within the process. Across processes the
	// immediate transaction lock does the same job.
	mu sync.Mutex
}

// NewEngine creates a settlement engine. baseDiff is the points swing of an even match.
func NewEngine(db *sql.DB, seasons season.SeasonStore, players player.PlayerStore, standingsStore standings.StandingsStore, matches match.MatchStore, heroes HeroLookup, baseDiff int) *Engine {
	return &Engine{
		db:        db,
		seasons:   seasons,
		players:   players,
		standings: standingsStore,
		matches:   matches,
		heroes:    heroes,
		baseDiff:  baseDiff,
	}
}

// Settle validates the raw match, applies the points redistribution to every
// participant's season record and persists the match. Nothing is written
// unless every step succeeds.
func (e *Engine) Settle(ctx context.Context, raw *match.RawMatch) (*match.Match, error) {
	return e.settle(ctx, raw, true)
}

func (e *Engine) Preview(ctx context.Context, raw *match.RawMatch) (*match.Match, error) {
	return e.settle(ctx, raw, false)
}

func (e *Engine) settle(ctx context.Context, raw *match.RawMatch, commit bool) (*match.Match, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	heroes, err := e.resolveHeroes(ctx, raw)
	if err != nil {
		return nil, err
	}
	steamIDs := make([]int64, len(raw.Players))
	for i, rp := range raw.Players {
		steamIDs[i] = steam.AccountToSteamID64(rp.AccountID)
	}
	profiles, err := e.players.ResolveProfiles(ctx, steamIDs)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer tx.Rollback()

	exists, err := e.matches.Exists(ctx, tx, raw.MatchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("match %d: %w", raw.MatchID, apperrors.ErrDuplicateMatch)
	}

	current, err := e.seasons.Current(ctx, tx)
	if err != nil {
		return nil, err
	}

	m := &match.Match{
		ID:           raw.MatchID,
		SeasonID:     current.ID,
		SeasonNumber: current.Number,
		RadiantWin:   raw.RadiantWin,
		Duration:     raw.Duration,
		GameMode:     raw.GameMode,
		StartTime:    raw.StartTime,
		CreatedAt:    time.Now().Unix(),
		PlayersStats: make([]match.PlayerStats, len(raw.Players)),
	}
	records := make([]*standings.SeasonStats, len(raw.Players))

	radiantTotal, direTotal := 0, 0
	for i, rp := range raw.Players {
		steamID := steamIDs[i]
		p, err := e.players.GetOrCreate(ctx, tx, steamID, profiles[steamID])
		if err != nil {
			return nil, err
		}
		record, err := e.standings.GetOrCreate(ctx, tx, steamID, current.ID)
		if err != nil {
			return nil, err
		}
		records[i] = record
		m.PlayersStats[i] = newPlayerStats(rp, p, record, heroes[rp.HeroID])

		if rp.IsRadiant() {
			radiantTotal += record.Pts
		} else {
			direTotal += record.Pts
		}
	}

	magnitude := HandicapMagnitude(radiantTotal, direTotal, e.baseDiff)
	radiantDelta, direDelta := TeamDeltas(radiantTotal > direTotal, raw.RadiantWin, e.baseDiff, magnitude)

	for i := range m.PlayersStats {
		delta := direDelta
		if m.PlayersStats[i].IsRadiant() {
			delta = radiantDelta
		}
		m.PlayersStats[i].PtsDiff = delta
		records[i].ApplyResult(delta)
		if err := e.standings.Update(ctx, tx, records[i]); err != nil {
			return nil, err
		}
	}

	sort.Slice(m.PlayersStats, func(i, j int) bool {
		return m.PlayersStats[i].PlayerSlot < m.PlayersStats[j].PlayerSlot
	})
	if err := e.matches.Insert(ctx, tx, m); err != nil {
		return nil, err
	}

	if !commit {
		log.Debug("Previewed settlement", "matchID", m.ID, "radiantDelta", radiantDelta, "magnitude", magnitude)
		return m, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement of match %d: %w", m.ID, err)
	}

	log.Info("Settled match", "matchID", m.ID, "season", current.Number,
		"radiantTotal", radiantTotal, "direTotal", direTotal, "radiantDelta", radiantDelta, "radiantWin", m.RadiantWin)
	return m, nil
}

// resolveHeroes maps every hero id in the match to its name. Unknown ids abort
// the settlement before the transaction opens.
func (e *Engine) resolveHeroes(ctx context.Context, raw *match.RawMatch) (map[int]string, error) {
	heroes := make(map[int]string, len(raw.Players))
	for _, rp := range raw.Players {
		if _, ok := heroes[rp.HeroID]; ok {
			continue
		}
		name, err := e.heroes.HeroName(ctx, rp.HeroID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnknownHero) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to resolve hero %d: %w", rp.HeroID, err)
		}
		heroes[rp.HeroID] = name
	}
	return heroes, nil
}

func newPlayerStats(rp match.RawPlayer, p *player.Player, record *standings.SeasonStats, hero string) match.PlayerStats {
	return match.PlayerStats{
		SeasonStatsID: record.ID,
		SteamID:       p.SteamID,
		Nickname:      p.Nickname,
		OldPts:        record.Pts,
		Kills:         rp.Kills,
		Deaths:        rp.Deaths,
		Assists:       rp.Assists,
		Hero:          hero,
		HeroDamage:    rp.HeroDamage,
		HeroHealing:   rp.HeroHealing,
		TowerDamage:   rp.TowerDamage,
		LastHits:      rp.LastHits,
		Denies:        rp.Denies,
		Level:         rp.Level,
		XPPerMin:      rp.XPPerMin,
		GoldPerMin:    rp.GoldPerMin,
		DamageTaken:   rp.DamageTaken,
		PlayerSlot:    rp.PlayerSlot,
	}
}
