package mock

import (
	"context"

	"github.com/bloop16/homestate/ai"
)

// MockChatModel is a test double for ai.ChatModel.
type MockChatModel struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns the content of the last message echoed back.
	GenerateFunc func(ctx context.Context, messages []ai.Message) (string, error)

	callCount int
}

// NewMockChatModel creates a mock chat model with default echo behavior.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// Generate produces a canned answer or delegates to GenerateFunc.
func (m *MockChatModel) Generate(ctx context.Context, messages []ai.Message) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}

	if len(messages) == 0 {
		return "", nil
	}
	return messages[len(messages)-1].Content, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockChatModel) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
