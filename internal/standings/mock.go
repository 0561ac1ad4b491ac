package standings

import (
	"context"
	"sync"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// MockStore is a mock implementation of the StandingsStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	GetOrCreateFunc    func(ctx context.Context, q database.DBTX, steamID, seasonID int64) (*SeasonStats, error)
	UpdateFunc         func(ctx context.Context, q database.DBTX, stats *SeasonStats) error
	GetFunc            func(ctx context.Context, steamID, seasonID int64) (*SeasonStats, error)
	LeaderboardFunc    func(ctx context.Context, seasonID int64, limit, offset int) ([]Standing, error)
	FindByNicknameFunc func(ctx context.Context, seasonID int64, query string) (*Standing, error)

	UpdateCalls         []SeasonStats
	LeaderboardCalls    []LeaderboardCall
	FindByNicknameCalls []string
}

// LeaderboardCall records the arguments of a Leaderboard call.
type LeaderboardCall struct {
	SeasonID int64
	Limit    int
	Offset   int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = nil
	m.LeaderboardCalls = nil
	m.FindByNicknameCalls = nil
}

func (m *MockStore) GetOrCreate(ctx context.Context, q database.DBTX, steamID, seasonID int64) (*SeasonStats, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, q, steamID, seasonID)
	}
	return &SeasonStats{SteamID: steamID, SeasonID: seasonID, Pts: 1000}, nil
}

func (m *MockStore) Update(ctx context.Context, q database.DBTX, stats *SeasonStats) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, *stats)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, q, stats)
	}
	return nil
}

func (m *MockStore) Get(ctx context.Context, steamID, seasonID int64) (*SeasonStats, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, steamID, seasonID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockStore) Leaderboard(ctx context.Context, seasonID int64, limit, offset int) ([]Standing, error) {
	m.mu.Lock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, LeaderboardCall{SeasonID: seasonID, Limit: limit, Offset: offset})
	m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, seasonID, limit, offset)
	}
	return nil, nil
}

func (m *MockStore) FindByNickname(ctx context.Context, seasonID int64, query string) (*Standing, error) {
	m.mu.Lock()
	m.FindByNicknameCalls = append(m.FindByNicknameCalls, query)
	m.mu.Unlock()
	if m.FindByNicknameFunc != nil {
		return m.FindByNicknameFunc(ctx, seasonID, query)
	}
	return nil, apperrors.ErrNotFound
}
