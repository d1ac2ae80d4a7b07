package testutil

import (
	"context"

	"github.com/shillcollin/voicepipe/dialogue"
)

// MockEngine is a mock dialogue engine for testing.
type MockEngine struct {
	// GenerateFunc allows customizing the generate behavior.
	GenerateFunc func(ctx context.Context, userText string) (*dialogue.Result, error)

	// ClearMemoryFunc allows customizing the reset behavior.
	ClearMemoryFunc func(ctx context.Context) error

	// Result is returned when GenerateFunc is nil.
	Result dialogue.Result

	// Track calls for assertions.
	GenerateCalls []string
	ResetCalls    int
}

// NewMockEngine creates a mock engine returning the given result.
func NewMockEngine(result dialogue.Result) *MockEngine {
	return &MockEngine{Result: result}
}

// Generate implements dialogue.Engine.
func (m *MockEngine) Generate(ctx context.Context, userText string) (*dialogue.Result, error) {
	m.GenerateCalls = append(m.GenerateCalls, userText)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userText)
	}
	result := m.Result
	return &result, nil
}

// ClearMemory implements dialogue.Engine.
func (m *MockEngine) ClearMemory(ctx context.Context) error {
	m.ResetCalls++
	if m.ClearMemoryFunc != nil {
		return m.ClearMemoryFunc(ctx)
	}
	return nil
}
