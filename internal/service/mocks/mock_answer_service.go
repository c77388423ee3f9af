package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sj4597225-coder/ai-BATTLE-ARENA/internal/model"
)

type MockAnswerService struct {
	mock.Mock
}

func (m *MockAnswerService) Process(ctx context.Context, req model.AnswerRequest) (*model.AnswerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnswerResponse), args.Error(1)
}
