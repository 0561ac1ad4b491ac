package season

import (
	"context"
	"sync"

	"github.com/mauv0809/gleague/internal/database"
	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// MockStore is a mock implementation of the SeasonStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	CurrentFunc       func(ctx context.Context, q database.DBTX) (*Season, error)
	EnsureCurrentFunc func(ctx context.Context) (*Season, error)
	StartNewFunc      func(ctx context.Context) (*Season, error)
	ListFunc          func(ctx context.Context) ([]Season, error)
	GetByNumberFunc   func(ctx context.Context, number int) (*Season, error)

	StartNewCalls    int
	GetByNumberCalls []int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartNewCalls = 0
	m.GetByNumberCalls = nil
}

func (m *MockStore) Current(ctx context.Context, q database.DBTX) (*Season, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx, q)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockStore) EnsureCurrent(ctx context.Context) (*Season, error) {
	if m.EnsureCurrentFunc != nil {
		return m.EnsureCurrentFunc(ctx)
	}
	return &Season{ID: 1, Number: 1, IsCurrent: true}, nil
}

func (m *MockStore) StartNew(ctx context.Context) (*Season, error) {
	m.mu.Lock()
	m.StartNewCalls++
	m.mu.Unlock()
	if m.StartNewFunc != nil {
		return m.StartNewFunc(ctx)
	}
	return &Season{ID: 2, Number: 2, IsCurrent: true}, nil
}

func (m *MockStore) List(ctx context.Context) ([]Season, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) GetByNumber(ctx context.Context, number int) (*Season, error) {
	m.mu.Lock()
	m.GetByNumberCalls = append(m.GetByNumberCalls, number)
	m.mu.Unlock()
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, apperrors.ErrNotFound
}
