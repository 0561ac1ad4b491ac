package rating

import (
	"database/sql"
	"sync"
)

const (
	MinRating = 1
	MaxRating = 5
)

// store handles rating persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Rating is one participant's grade of a teammate's or opponent's performance.
type Rating struct {
	ID                 int64 `json:"id"`
	RatedBySteamID     int64 `json:"rated_by_steam_id,string"`
	PlayerMatchStatsID int64 `json:"player_match_stats_id"`
	Rating             int   `json:"rating"`
	CreatedAt          int64 `json:"created_at"`
}

// Summary describes the ratings of one stats row. AvgRating is nil while the
// row is unrated.
type Summary struct {
	AvgRating     *float64 `json:"avg_rating"`
	RatingCount   int      `json:"rating_count"`
	AllowedToRate bool     `json:"allowed_to_rate"`
}
