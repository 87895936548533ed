package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// SuggestionRepository persists proposed reference entities awaiting review.
type SuggestionRepository interface {
	// UpsertPending atomically creates a pending suggestion or, when an open
	// suggestion with the same (company, kind, normalized name) exists,
	// increments its usage count, bumps last_suggested_at and keeps the higher
	// confidence. Returns the surviving row.
	UpsertPending(ctx context.Context, s *domain.SuggestedEntity) (*domain.SuggestedEntity, error)
	GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.SuggestedEntity, error)
	ListPending(ctx context.Context, companyID uuid.UUID) ([]domain.SuggestedEntity, error)
	ListByStatus(ctx context.Context, companyID uuid.UUID, status domain.SuggestionStatus, offset, limit int) ([]domain.SuggestedEntity, int, error)
	UpdateDecision(ctx context.Context, s *domain.SuggestedEntity) error
}
