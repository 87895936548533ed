package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// MockSuggestionRepo is a mock implementation of port.SuggestionRepository.
type MockSuggestionRepo struct {
	mock.Mock
}

func (m *MockSuggestionRepo) UpsertPending(ctx context.Context, s *domain.SuggestedEntity) (*domain.SuggestedEntity, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuggestedEntity), args.Error(1)
}

func (m *MockSuggestionRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.SuggestedEntity, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SuggestedEntity), args.Error(1)
}

func (m *MockSuggestionRepo) ListPending(ctx context.Context, companyID uuid.UUID) ([]domain.SuggestedEntity, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SuggestedEntity), args.Error(1)
}

func (m *MockSuggestionRepo) ListByStatus(ctx context.Context, companyID uuid.UUID, status domain.SuggestionStatus, offset, limit int) ([]domain.SuggestedEntity, int, error) {
	args := m.Called(ctx, companyID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SuggestedEntity), args.Int(1), args.Error(2)
}

func (m *MockSuggestionRepo) UpdateDecision(ctx context.Context, s *domain.SuggestedEntity) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
