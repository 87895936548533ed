package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// MockWebEnricher is a mock implementation of port.WebEnricher.
type MockWebEnricher struct {
	mock.Mock
}

func (m *MockWebEnricher) Lookup(ctx context.Context, name string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
