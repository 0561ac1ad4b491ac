package match

import (
	"context"
	"sync"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// MockStore is a mock implementation of the MatchStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	ExistsFunc          func(ctx context.Context, q database.DBTX, id int64) (bool, error)
	InsertFunc          func(ctx context.Context, q database.DBTX, m *Match) error
	GetFunc             func(ctx context.Context, id int64) (*Match, error)
	ListFunc            func(ctx context.Context, limit, offset int) ([]Match, error)
	PlayerHistoryFunc   func(ctx context.Context, steamID int64, query HistoryQuery) (*HistoryPage, error)
	PointsHistoryFunc   func(ctx context.Context, steamID, seasonID int64) ([]int, error)
	SignatureHeroesFunc func(ctx context.Context, steamID int64, limit int) ([]HeroSummary, error)
	CountFunc           func(ctx context.Context) (int, error)

	InsertCalls        []*Match
	ListCalls          []ListCall
	PlayerHistoryCalls []HistoryQuery
}

// ListCall records the arguments of a List call.
type ListCall struct {
	Limit  int
	Offset int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls = nil
	m.ListCalls = nil
	m.PlayerHistoryCalls = nil
}

func (m *MockStore) Exists(ctx context.Context, q database.DBTX, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, q, id)
	}
	return false, nil
}

func (m *MockStore) Insert(ctx context.Context, q database.DBTX, match *Match) error {
	m.mu.Lock()
	m.InsertCalls = append(m.InsertCalls, match)
	m.mu.Unlock()
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, q, match)
	}
	return nil
}

func (m *MockStore) Get(ctx context.Context, id int64) (*Match, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockStore) List(ctx context.Context, limit, offset int) ([]Match, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, ListCall{Limit: limit, Offset: offset})
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockStore) PlayerHistory(ctx context.Context, steamID int64, query HistoryQuery) (*HistoryPage, error) {
	m.mu.Lock()
	m.PlayerHistoryCalls = append(m.PlayerHistoryCalls, query)
	m.mu.Unlock()
	if m.PlayerHistoryFunc != nil {
		return m.PlayerHistoryFunc(ctx, steamID, query)
	}
	return &HistoryPage{Page: query.Page, PerPage: query.PerPage}, nil
}

func (m *MockStore) PointsHistory(ctx context.Context, steamID, seasonID int64) ([]int, error) {
	if m.PointsHistoryFunc != nil {
		return m.PointsHistoryFunc(ctx, steamID, seasonID)
	}
	return []int{}, nil
}

func (m *MockStore) SignatureHeroes(ctx context.Context, steamID int64, limit int) ([]HeroSummary, error) {
	if m.SignatureHeroesFunc != nil {
		return m.SignatureHeroesFunc(ctx, steamID, limit)
	}
	return []HeroSummary{}, nil
}

func (m *MockStore) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}
