package standings

import (
	"database/sql"
	"sync"
)

// store handles season standings persistence.
type store struct {
	db      *sql.DB
	basePts int
	mu      sync.RWMutex
}

// SeasonStats is one player's cumulative record within one season.
// Streak is positive for a run of wins and negative for a run of losses.
type SeasonStats struct {
	ID                int64 `json:"id"`
	SteamID           int64 `json:"steam_id,string"`
	SeasonID          int64 `json:"season_id"`
	Pts               int   `json:"pts"`
	Wins              int   `json:"wins"`
	Losses            int   `json:"losses"`
	Streak            int   `json:"streak"`
	LongestWinStreak  int   `json:"longest_winstreak"`
	LongestLoseStreak int   `json:"longest_losestreak"`
}

// Standing is a leaderboard row.
type Standing struct {
	SeasonStats
	Nickname      string  `json:"nickname"`
	WinPercentage float64 `json:"win_percentage"`
}

// ApplyResult records the outcome of one settled match. A positive diff is a win.
// A loss that ends a win streak resets the streak to -1.
func (s *SeasonStats) ApplyResult(ptsDiff int) {
	s.Pts += ptsDiff
	if ptsDiff > 0 {
		s.Wins++
		if s.Streak > 0 {
			s.Streak++
		} else {
			s.Streak = 1
		}
		if s.Streak > s.LongestWinStreak {
			s.LongestWinStreak = s.Streak
		}
		return
	}

	s.Losses++
	if s.Streak > 0 {
		s.Streak = -1
	} else {
		s.Streak--
	}
	if -s.Streak > s.LongestLoseStreak {
		s.LongestLoseStreak = -s.Streak
	}
}

// MatchesPlayed is wins plus losses.
func (s SeasonStats) MatchesPlayed() int {
	return s.Wins + s.Losses
}
