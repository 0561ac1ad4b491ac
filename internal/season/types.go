package season

import (
	"database/sql"
	"sync"
)

// store handles season persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Season is a competitive period. Exactly one season is current at a time.
type Season struct {
	ID        int64 `json:"id"`
	Number    int   `json:"number"`
	StartedAt int64 `json:"started_at"`
	IsCurrent bool  `json:"is_current"`
}
