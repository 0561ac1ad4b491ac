package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/gleague/internal/match"
	"github.com/mauv0809/gleague/internal/season"
	"github.com/mauv0809/gleague/internal/standings"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendMatchResultFunc   func(ctx context.Context, m *match.Match, dryRun bool) error
	SendSeasonStartedFunc func(ctx context.Context, s *season.Season, dryRun bool) error

	// Call records
	SendMatchResultCalls []struct {
		Match  *match.Match
		DryRun bool
	}
	SendSeasonStartedCalls []*season.Season
	LeaderboardCalls       [][]standings.Standing
	PlayerStatsCalls       []*standings.Standing
	PlayerNotFoundCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendSeasonStartedCalls = nil
	m.LeaderboardCalls = nil
	m.PlayerStatsCalls = nil
	m.PlayerNotFoundCalls = nil
}

func (m *Mock) SendMatchResult(ctx context.Context, mt *match.Match, dryRun bool) error {
	m.mu.Lock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match  *match.Match
		DryRun bool
	}{mt, dryRun})
	m.mu.Unlock()
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(ctx, mt, dryRun)
	}
	return nil
}

func (m *Mock) SendSeasonStarted(ctx context.Context, s *season.Season, dryRun bool) error {
	m.mu.Lock()
	m.SendSeasonStartedCalls = append(m.SendSeasonStartedCalls, s)
	m.mu.Unlock()
	if m.SendSeasonStartedFunc != nil {
		return m.SendSeasonStartedFunc(ctx, s, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(board []standings.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, board)
	return map[string]any{"response_type": "in_channel", "text": "leaderboard"}, nil
}

func (m *Mock) FormatPlayerStatsResponse(st *standings.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerStatsCalls = append(m.PlayerStatsCalls, st)
	return map[string]any{"response_type": "in_channel", "text": st.Nickname}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerNotFoundCalls = append(m.PlayerNotFoundCalls, query)
	return map[string]any{"response_type": "ephemeral", "text": "not found: " + query}, nil
}
