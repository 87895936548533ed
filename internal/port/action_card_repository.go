package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// ActionCardRepository persists action cards and guards their state machine.
type ActionCardRepository interface {
	Create(ctx context.Context, card *domain.ActionCard) error
	CreateBatch(ctx context.Context, cards []domain.ActionCard) error
	GetByID(ctx context.Context, companyID, cardID uuid.UUID) (*domain.ActionCard, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, status *domain.ActionCardStatus, offset, limit int) ([]domain.ActionCard, int, error)
	// TransitionStatus performs a compare-and-swap update: the row is only
	// updated when its current status equals expected. Returns
	// domain.ErrCardTransition when the swap loses.
	TransitionStatus(ctx context.Context, companyID, cardID uuid.UUID, expected, next domain.ActionCardStatus) error
}
