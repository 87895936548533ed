package port

import (
	"context"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// WebEnricher looks up externally sourced company data for a proposed entity
// name. Implementations must return domain.ErrNoEnrichmentResult when the
// lookup succeeds but finds nothing.
type WebEnricher interface {
	Lookup(ctx context.Context, name string) (*domain.CompanyProfile, error)
}
