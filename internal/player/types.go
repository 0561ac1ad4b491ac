package player

import (
	"database/sql"
	"sync"
)

// store handles player persistence.
type store struct {
	db     *sql.DB
	lookup ProfileLookup
	mu     sync.RWMutex
}

// Player is a league member identified by their 64-bit Steam ID.
type Player struct {
	SteamID   int64  `json:"steam_id,string"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	CreatedAt int64  `json:"created_at"`
}
