package match

import (
	"database/sql"
	"fmt"
	"sync"
)

// store handles match persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// RawMatch is the ingestion payload produced by dem2json or the Steam match API.
type RawMatch struct {
	MatchID    int64       `json:"match_id"`
	RadiantWin bool        `json:"radiant_win"`
	Duration   int         `json:"duration"`
	GameMode   int         `json:"game_mode"`
	StartTime  int64       `json:"start_time"`
	Players    []RawPlayer `json:"players"`
}

// RawPlayer holds one player's counters from the ingestion payload. AccountID
// is the 32-bit Dota account id.
type RawPlayer struct {
	AccountID   int64 `json:"account_id"`
	Kills       int   `json:"kills"`
	Deaths      int   `json:"deaths"`
	Assists     int   `json:"assists"`
	HeroID      int   `json:"hero_id"`
	HeroDamage  int   `json:"hero_damage"`
	HeroHealing *int  `json:"hero_healing"`
	TowerDamage *int  `json:"tower_damage"`
	LastHits    int   `json:"last_hits"`
	Denies      int   `json:"denies"`
	Level       int   `json:"level"`
	XPPerMin    *int  `json:"xp_per_min"`
	GoldPerMin  *int  `json:"gold_per_min"`
	DamageTaken *int  `json:"damage_taken"`
	PlayerSlot  int   `json:"player_slot"`
}

// IsRadiant reports whether the slot belongs to the Radiant team.
func (p RawPlayer) IsRadiant() bool {
	return p.PlayerSlot < 5
}

// Match is a settled match.
type Match struct {
	ID           int64         `json:"id"`
	SeasonID     int64         `json:"season_id"`
	SeasonNumber int           `json:"season_number"`
	RadiantWin   bool          `json:"radiant_win"`
	Duration     int           `json:"duration"`
	GameMode     int           `json:"game_mode"`
	StartTime    int64         `json:"start_time"`
	CreatedAt    int64         `json:"created_at"`
	PlayersStats []PlayerStats `json:"players_stats"`
}

// PlayerStats is one player's performance in a match together with the
// points they had before it and the points it moved.
type PlayerStats struct {
	ID            int64  `json:"id"`
	SeasonStatsID int64  `json:"season_stats_id"`
	MatchID       int64  `json:"match_id"`
	SteamID       int64  `json:"steam_id,string"`
	Nickname      string `json:"nickname"`
	OldPts        int    `json:"old_pts"`
	PtsDiff       int    `json:"pts_diff"`
	Kills         int    `json:"kills"`
	Deaths        int    `json:"deaths"`
	Assists       int    `json:"assists"`
	Hero          string `json:"hero"`
	HeroDamage    int    `json:"hero_damage"`
	HeroHealing   *int   `json:"hero_healing,omitempty"`
	TowerDamage   *int   `json:"tower_damage,omitempty"`
	LastHits      int    `json:"last_hits"`
	Denies        int    `json:"denies"`
	Level         int    `json:"level"`
	XPPerMin      *int   `json:"xp_per_min,omitempty"`
	GoldPerMin    *int   `json:"gold_per_min,omitempty"`
	DamageTaken   *int   `json:"damage_taken,omitempty"`
	PlayerSlot    int    `json:"player_slot"`
}

func (p PlayerStats) IsRadiant() bool {
	return p.PlayerSlot < 5
}

// NewPts is the player's season points right after the match.
func (p PlayerStats) NewPts() int {
	return p.OldPts + p.PtsDiff
}

// HistoryQuery selects a page of a player's match history.
type HistoryQuery struct {
	Hero    string
	Page    int
	PerPage int
}

// HistoryEntry is one row of a player's match history.
type HistoryEntry struct {
	PlayerStats
	RadiantWin bool  `json:"radiant_win"`
	Duration   int   `json:"duration"`
	GameMode   int   `json:"game_mode"`
	StartTime  int64 `json:"start_time"`
}

// Won reports whether the player was on the winning side.
func (h HistoryEntry) Won() bool {
	return h.IsRadiant() == h.RadiantWin
}

// HistoryPage is a page of match history plus the total row count.
type HistoryPage struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// Pages returns the number of pages the history spans.
func (h HistoryPage) Pages() int {
	if h.PerPage <= 0 {
		return 0
	}
	return (h.Total + h.PerPage - 1) / h.PerPage
}

// HeroSummary aggregates a player's results on one hero.
type HeroSummary struct {
	Hero       string  `json:"hero"`
	Played     int     `json:"played"`
	Wins       int     `json:"wins"`
	AvgPtsDiff float64 `json:"avg_pts_diff"`
}

var gameModes = map[int]string{
	1:  "All Pick",
	2:  "Captains Mode",
	3:  "Random Draft",
	4:  "Single Draft",
	5:  "All Random",
	8:  "Reverse Captains Mode",
	16: "Captains Draft",
	22: "Ranked All Pick",
}

// GameModeName maps a Dota game mode code to its display name.
func GameModeName(mode int) string {
	if name, ok := gameModes[mode]; ok {
		return name
	}
	return "unknown"
}

func (m Match) GameModeString() string {
	return GameModeName(m.GameMode)
}

func (m Match) WinnerString() string {
	if m.RadiantWin {
		return "Radiant"
	}
	return "Dire"
}

// DurationString formats the duration as m:ss.
func (m Match) DurationString() string {
	return fmt.Sprintf("%d:%02d", m.Duration/60, m.Duration%60)
}

// TeamPtsDiff returns the points delta applied to each side.
func (m Match) TeamPtsDiff() (radiant, dire int) {
	for _, p := range m.PlayersStats {
		if p.IsRadiant() {
			radiant = p.PtsDiff
		} else {
			dire = p.PtsDiff
		}
	}
	return radiant, dire
}
