package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// MockConversationStore is a mock implementation of port.ConversationStore.
type MockConversationStore struct {
	mock.Mock
}

func (m *MockConversationStore) Create(ctx context.Context, companyID uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationStore) Append(ctx context.Context, id string, msg domain.ConversationMessage) error {
	args := m.Called(ctx, id, msg)
	return args.Error(0)
}

func (m *MockConversationStore) SetStatus(ctx context.Context, id string, status domain.ConversationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
