package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendSuggestionDecision(ctx context.Context, toEmail string, s *domain.SuggestedEntity) error {
	args := m.Called(ctx, toEmail, s)
	return args.Error(0)
}
