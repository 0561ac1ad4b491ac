package settlement

import (
	"context"
	"sync"

	"github.com/mauv0809/gleague/internal/match"
)

// MockSettler is a mock implementation of the Settler interface for testing.
type MockSettler struct {
	mu sync.Mutex

	SettleFunc  func(ctx context.Context, raw *match.RawMatch) (*match.Match, error)
	PreviewFunc func(ctx context.Context, raw *match.RawMatch) (*match.Match, error)

	SettleCalls  []*match.RawMatch
	PreviewCalls []*match.RawMatch
}

// NewMock creates a new mock instance.
func NewMock() *MockSettler {
	return &MockSettler{}
}

// Reset clears all call records.
func (m *MockSettler) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SettleCalls = nil
	m.PreviewCalls = nil
}

func (m *MockSettler) Settle(ctx context.Context, raw *match.RawMatch) (*match.Match, error) {
	m.mu.Lock()
	m.SettleCalls = append(m.SettleCalls, raw)
	m.mu.Unlock()
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, raw)
	}
	return &match.Match{ID: raw.MatchID, RadiantWin: raw.RadiantWin}, nil
}

func (m *MockSettler) Preview(ctx context.Context, raw *match.RawMatch) (*match.Match, error) {
	m.mu.Lock()
	m.PreviewCalls = append(m.PreviewCalls, raw)
	m.mu.Unlock()
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, raw)
	}
	return &match.Match{ID: raw.MatchID, RadiantWin: raw.RadiantWin}, nil
}
