package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, sessionID, message string) (*model.ChatResult, error) {
	args := m.Called(ctx, sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatResult), args.Error(1)
}

func (m *MockChatService) ChatWithPDF(ctx context.Context, sessionID, pdfURL, message string) (*model.ChatResult, error) {
	args := m.Called(ctx, sessionID, pdfURL, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatResult), args.Error(1)
}

func (m *MockChatService) History(sessionID string) ([]model.ChatMessage, bool) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Bool(1)
}

func (m *MockChatService) ClearSession(sessionID string) bool {
	args := m.Called(sessionID)
	return args.Bool(0)
}
