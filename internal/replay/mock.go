package replay

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/mauv0809/gleague/internal/match"
)

// MockConverter is a mock implementation of the Converter interface for testing.
type MockConverter struct {
	mu sync.Mutex

	ConvertFunc func(ctx context.Context, replay io.Reader) (*match.RawMatch, error)

	ConvertCalls [][]byte
}

// NewMock creates a new mock instance.
func NewMock() *MockConverter {
	return &MockConverter{}
}

func (m *MockConverter) Convert(ctx context.Context, replay io.Reader) (*match.RawMatch, error) {
	data, err := io.ReadAll(replay)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.ConvertCalls = append(m.ConvertCalls, data)
	m.mu.Unlock()
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, bytes.NewReader(data))
	}
	return &match.RawMatch{}, nil
}
