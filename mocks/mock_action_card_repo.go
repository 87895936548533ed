package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// MockActionCardRepo is a mock implementation of port.ActionCardRepository.
type MockActionCardRepo struct {
	mock.Mock
}

func (m *MockActionCardRepo) Create(ctx context.Context, card *domain.ActionCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockActionCardRepo) CreateBatch(ctx context.Context, cards []domain.ActionCard) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockActionCardRepo) GetByID(ctx context.Context, companyID, cardID uuid.UUID) (*domain.ActionCard, error) {
	args := m.Called(ctx, companyID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActionCard), args.Error(1)
}

func (m *MockActionCardRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, status *domain.ActionCardStatus, offset, limit int) ([]domain.ActionCard, int, error) {
	args := m.Called(ctx, companyID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ActionCard), args.Int(1), args.Error(2)
}

func (m *MockActionCardRepo) TransitionStatus(ctx context.Context, companyID, cardID uuid.UUID, expected, next domain.ActionCardStatus) error {
	args := m.Called(ctx, companyID, cardID, expected, next)
	return args.Error(0)
}
