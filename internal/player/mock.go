package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
	"github.com/mauv0809/gleague/internal/steam"
)

// MockStore is a mock implementation of the PlayerStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	ResolveProfilesFunc func(ctx context.Context, steamIDs []int64) (map[int64]*steam.PlayerSummary, error)
	GetOrCreateFunc     func(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*Player, error)
	GetFunc             func(ctx context.Context, steamID int64) (*Player, error)
	ListFunc            func(ctx context.Context) ([]Player, error)

	ResolveProfilesCalls [][]int64
	GetOrCreateCalls     []int64
	GetCalls             []int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveProfilesCalls = nil
	m.GetOrCreateCalls = nil
	m.GetCalls = nil
}

func (m *MockStore) ResolveProfiles(ctx context.Context, steamIDs []int64) (map[int64]*steam.PlayerSummary, error) {
	m.mu.Lock()
	m.ResolveProfilesCalls = append(m.ResolveProfilesCalls, steamIDs)
	m.mu.Unlock()
	if m.ResolveProfilesFunc != nil {
		return m.ResolveProfilesFunc(ctx, steamIDs)
	}
	return map[int64]*steam.PlayerSummary{}, nil
}

func (m *MockStore) GetOrCreate(ctx context.Context, q database.DBTX, steamID int64, profile *steam.PlayerSummary) (*Player, error) {
	m.mu.Lock()
	m.GetOrCreateCalls = append(m.GetOrCreateCalls, steamID)
	m.mu.Unlock()
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, q, steamID, profile)
	}
	return &Player{SteamID: steamID, Nickname: fmt.Sprintf("player-%d", steamID)}, nil
}

func (m *MockStore) Get(ctx context.Context, steamID int64) (*Player, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, steamID)
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, steamID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockStore) List(ctx context.Context) ([]Player, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}
