package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

type suggestionRepo struct {
	db *sqlx.DB
}

// NewSuggestionRepo creates a new PostgreSQL-backed SuggestionRepository.
func NewSuggestionRepo(db *sqlx.DB) port.SuggestionRepository {
	return &suggestionRepo{db: db}
}

// UpsertPending relies on the partial unique index on
// (company_id, kind, normalized_name) WHERE status = 'pending'. Concurrent
// proposals for the same name collapse into one row with a bumped usage count.
func (r *suggestionRepo) UpsertPending(ctx context.Context, s *domain.SuggestedEntity) (*domain.SuggestedEntity, error) {
	now := time.Now().UTC()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Status = domain.SuggestionStatusPending
	s.UsageCount = 1
	s.FirstSuggestedAt = now
	s.LastSuggestedAt = now

	query := `INSERT INTO suggested_entities (
		id, company_id, kind, suggested_name, normalized_name, confidence,
		usage_count, status, context, enrichment, created_by,
		first_suggested_at, last_suggested_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (company_id, kind, normalized_name) WHERE status = 'pending'
	DO UPDATE SET
		usage_count       = suggested_entities.usage_count + 1,
		confidence        = GREATEST(suggested_entities.confidence, EXCLUDED.confidence),
		enrichment        = COALESCE(suggested_entities.enrichment, EXCLUDED.enrichment),
		last_suggested_at = EXCLUDED.last_suggested_at
	RETURNING *`

	var out domain.SuggestedEntity
	err := r.db.GetContext(ctx, &out, query,
		s.ID, s.CompanyID, s.Kind, s.SuggestedName, s.NormalizedName, s.Confidence,
		s.UsageCount, s.Status, s.Context, s.Enrichment, s.CreatedBy,
		s.FirstSuggestedAt, s.LastSuggestedAt)
	if err != nil {
		return nil, fmt.Errorf("suggestionRepo.UpsertPending: %w", err)
	}
	return &out, nil
}

func (r *suggestionRepo) GetByID(ctx context.Context, companyID, id uuid.UUID) (*domain.SuggestedEntity, error) {
	var s domain.SuggestedEntity
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM suggested_entities WHERE id = $1 AND company_id = $2", id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("suggestionRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *suggestionRepo) ListPending(ctx context.Context, companyID uuid.UUID) ([]domain.SuggestedEntity, error) {
	var list []domain.SuggestedEntity
	err := r.db.SelectContext(ctx, &list,
		`SELECT * FROM suggested_entities WHERE company_id = $1 AND status = 'pending'
		 ORDER BY usage_count DESC, last_suggested_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("suggestionRepo.ListPending: %w", err)
	}
	return list, nil
}

func (r *suggestionRepo) ListByStatus(ctx context.Context, companyID uuid.UUID, status domain.SuggestionStatus, offset, limit int) ([]domain.SuggestedEntity, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM suggested_entities WHERE company_id = $1 AND status = $2",
		companyID, status)
	if err != nil {
		return nil, 0, fmt.Errorf("suggestionRepo.ListByStatus count: %w", err)
	}

	var list []domain.SuggestedEntity
	err = r.db.SelectContext(ctx, &list,
		`SELECT * FROM suggested_entities WHERE company_id = $1 AND status = $2
		 ORDER BY last_suggested_at DESC LIMIT $3 OFFSET $4`,
		companyID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("suggestionRepo.ListByStatus: %w", err)
	}
	return list, total, nil
}

func (r *suggestionRepo) UpdateDecision(ctx context.Context, s *domain.SuggestedEntity) error {
	query := `UPDATE suggested_entities SET
		status = $1, created_entity_id = $2, reviewed_by = $3, review_notes = $4
		WHERE id = $5 AND company_id = $6`

	res, err := r.db.ExecContext(ctx, query,
		s.Status, s.CreatedEntityID, s.ReviewedBy, s.ReviewNotes, s.ID, s.CompanyID)
	if err != nil {
		return fmt.Errorf("suggestionRepo.UpdateDecision: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("suggestionRepo.UpdateDecision rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrSuggestionNotFound
	}
	return nil
}
