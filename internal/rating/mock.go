package rating

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the RatingStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	RateFunc          func(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*Rating, error)
	GetRatingsFunc    func(ctx context.Context, matchID int64, viewer *int64) (map[int64]Summary, error)
	PlayerAverageFunc func(ctx context.Context, steamID int64) (float64, int, error)

	RateCalls []Rating
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateCalls = nil
}

func (m *MockStore) Rate(ctx context.Context, matchID, statsID, raterSteamID int64, value int) (*Rating, error) {
	m.mu.Lock()
	m.RateCalls = append(m.RateCalls, Rating{RatedBySteamID: raterSteamID, PlayerMatchStatsID: statsID, Rating: value})
	m.mu.Unlock()
	if m.RateFunc != nil {
		return m.RateFunc(ctx, matchID, statsID, raterSteamID, value)
	}
	return &Rating{ID: 1, RatedBySteamID: raterSteamID, PlayerMatchStatsID: statsID, Rating: value}, nil
}

func (m *MockStore) GetRatings(ctx context.Context, matchID int64, viewer *int64) (map[int64]Summary, error) {
	if m.GetRatingsFunc != nil {
		return m.GetRatingsFunc(ctx, matchID, viewer)
	}
	return map[int64]Summary{}, nil
}

func (m *MockStore) PlayerAverage(ctx context.Context, steamID int64) (float64, int, error) {
	if m.PlayerAverageFunc != nil {
		return m.PlayerAverageFunc(ctx, steamID)
	}
	return 0, 0, nil
}
