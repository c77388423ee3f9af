package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/ollama"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Answer(ctx context.Context, docText, question string) (string, error) {
	args := m.Called(ctx, docText, question)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Chat(ctx context.Context, msgs []ollama.Message) (string, error) {
	args := m.Called(ctx, msgs)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Health(ctx context.Context) ollama.Status {
	args := m.Called(ctx)
	return args.Get(0).(ollama.Status)
}

func (m *MockClient) Models(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) Model() string {
	args := m.Called()
	return args.String(0)
}
