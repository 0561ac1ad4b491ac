package steam

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/mauv0809/gleague/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
// Without overrides it resolves every profile to "player-<steamID>" and every
// hero id to "hero_<id>".
type MockClient struct {
	mu sync.Mutex

	PlayerSummaryFunc func(ctx context.Context, steamID int64) (*PlayerSummary, error)
	HeroNameFunc      func(ctx context.Context, heroID int) (string, error)
	HeroesFunc        func(ctx context.Context) (map[int]string, error)

	PlayerSummaryCalls []int64
	HeroNameCalls      []int
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerSummaryCalls = nil
	m.HeroNameCalls = nil
}

func (m *MockClient) PlayerSummary(ctx context.Context, steamID int64) (*PlayerSummary, error) {
	m.mu.Lock()
	m.PlayerSummaryCalls = append(m.PlayerSummaryCalls, steamID)
	m.mu.Unlock()
	if m.PlayerSummaryFunc != nil {
		return m.PlayerSummaryFunc(ctx, steamID)
	}
	return &PlayerSummary{SteamID: steamID, Nickname: fmt.Sprintf("player-%d", steamID)}, nil
}

func (m *MockClient) HeroName(ctx context.Context, heroID int) (string, error) {
	m.mu.Lock()
	m.HeroNameCalls = append(m.HeroNameCalls, heroID)
	m.mu.Unlock()
	if m.HeroNameFunc != nil {
		return m.HeroNameFunc(ctx, heroID)
	}
	if heroID <= 0 {
		return "", fmt.Errorf("hero id %d: %w", heroID, apperrors.ErrUnknownHero)
	}
	return fmt.Sprintf("hero_%d", heroID), nil
}

func (m *MockClient) Heroes(ctx context.Context) (map[int]string, error) {
	if m.HeroesFunc != nil {
		return m.HeroesFunc(ctx)
	}
	return map[int]string{}, nil
}
