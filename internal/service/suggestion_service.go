package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
	"github.com/pil1/IngridProduction-sub001/internal/resolve"
)

// SuggestionService owns the suggested-entity review workflow: deduplicated
// proposal, idempotent approval, rejection, and merging into existing rows.
type SuggestionService struct {
	repo         port.SuggestionRepository
	categoryRepo port.CategoryRepository
	vendorRepo   port.VendorRepository
	email        port.EmailSender
	notifyEmail  string
}

// NewSuggestionService builds the service. email may be nil; notifyEmail is
// the reviewer address decisions are reported to.
func NewSuggestionService(
	repo port.SuggestionRepository,
	categoryRepo port.CategoryRepository,
	vendorRepo port.VendorRepository,
	email port.EmailSender,
	notifyEmail string,
) *SuggestionService {
	return &SuggestionService{
		repo:         repo,
		categoryRepo: categoryRepo,
		vendorRepo:   vendorRepo,
		email:        email,
		notifyEmail:  notifyEmail,
	}
}

// Propose records a new-entity match as a pending suggestion. Re-proposing
// the same normalized name collapses into the open row with a bumped usage
// count instead of creating a duplicate.
func (s *SuggestionService) Propose(ctx context.Context, sec domain.SecurityContext, match *domain.EntityMatch) (*domain.SuggestedEntity, error) {
	sg := &domain.SuggestedEntity{
		CompanyID:      sec.CompanyID,
		Kind:           match.Kind,
		SuggestedName:  match.EntityName,
		NormalizedName: resolve.NormalizeName(match.EntityName, match.Kind),
		Confidence:     match.Confidence,
		Context:        match.Reason,
		CreatedBy:      sec.UserID,
	}
	if match.Enrichment != nil {
		raw, err := json.Marshal(match.Enrichment)
		if err != nil {
			return nil, fmt.Errorf("marshaling enrichment: %w", err)
		}
		sg.Enrichment = raw
	}
	return s.repo.UpsertPending(ctx, sg)
}

// Approve creates the real reference entity and closes the suggestion.
// Approving an already-approved suggestion is a no-op returning the existing
// row, so repeated clicks resolve to the same entity id.
func (s *SuggestionService) Approve(ctx context.Context, sec domain.SecurityContext, id uuid.UUID, notes string) (*domain.SuggestedEntity, error) {
	sg, err := s.repo.GetByID(ctx, sec.CompanyID, id)
	if err != nil {
		return nil, err
	}
	switch sg.Status {
	case domain.SuggestionStatusApproved:
		return sg, nil
	case domain.SuggestionStatusRejected, domain.SuggestionStatusMerged:
		return nil, domain.ErrSuggestionClosed
	}

	entityID, err := s.createEntity(ctx, sec, sg)
	if err != nil {
		return nil, err
	}

	sg.Status = domain.SuggestionStatusApproved
	sg.CreatedEntityID = &entityID
	sg.ReviewedBy = &sec.UserID
	sg.ReviewNotes = notes
	if err := s.repo.UpdateDecision(ctx, sg); err != nil {
		return nil, err
	}

	s.notify(ctx, sg)
	return sg, nil
}

// Reject closes the suggestion without creating anything.
func (s *SuggestionService) Reject(ctx context.Context, sec domain.SecurityContext, id uuid.UUID, notes string) (*domain.SuggestedEntity, error) {
	sg, err := s.repo.GetByID(ctx, sec.CompanyID, id)
	if err != nil {
		return nil, err
	}
	switch sg.Status {
	case domain.SuggestionStatusRejected:
		return sg, nil
	case domain.SuggestionStatusApproved, domain.SuggestionStatusMerged:
		return nil, domain.ErrSuggestionClosed
	}

	sg.Status = domain.SuggestionStatusRejected
	sg.ReviewedBy = &sec.UserID
	sg.ReviewNotes = notes
	if err := s.repo.UpdateDecision(ctx, sg); err != nil {
		return nil, err
	}

	s.notify(ctx, sg)
	return sg, nil
}

// Merge closes the suggestion by pointing it at an existing reference entity
// instead of creating a new one.
func (s *SuggestionService) Merge(ctx context.Context, sec domain.SecurityContext, id, targetEntityID uuid.UUID, notes string) (*domain.SuggestedEntity, error) {
	sg, err := s.repo.GetByID(ctx, sec.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if sg.Status != domain.SuggestionStatusPending {
		if sg.Status == domain.SuggestionStatusMerged && sg.CreatedEntityID != nil && *sg.CreatedEntityID == targetEntityID {
			return sg, nil
		}
		return nil, domain.ErrSuggestionClosed
	}

	// The merge target must exist for this company.
	switch sg.Kind {
	case domain.EntityKindCategory:
		if _, err := s.categoryRepo.GetByID(ctx, sec.CompanyID, targetEntityID); err != nil {
			return nil, err
		}
	case domain.EntityKindVendor:
		if _, err := s.vendorRepo.GetByID(ctx, sec.CompanyID, targetEntityID); err != nil {
			return nil, err
		}
	}

	sg.Status = domain.SuggestionStatusMerged
	sg.CreatedEntityID = &targetEntityID
	sg.ReviewedBy = &sec.UserID
	sg.ReviewNotes = notes
	if err := s.repo.UpdateDecision(ctx, sg); err != nil {
		return nil, err
	}

	s.notify(ctx, sg)
	return sg, nil
}

// ListPending returns the open queue ordered by usage count.
func (s *SuggestionService) ListPending(ctx context.Context, sec domain.SecurityContext) ([]domain.SuggestedEntity, error) {
	return s.repo.ListPending(ctx, sec.CompanyID)
}

// ListByStatus pages through suggestions in a given status.
func (s *SuggestionService) ListByStatus(ctx context.Context, sec domain.SecurityContext, status domain.SuggestionStatus, offset, limit int) ([]domain.SuggestedEntity, int, error) {
	return s.repo.ListByStatus(ctx, sec.CompanyID, status, offset, limit)
}

// createEntity finds or creates the reference entity for a suggestion. The
// lookup by name makes approval safe under at-least-once retries: a retry
// that crashed after the create but before the decision was stamped reuses
// the entity instead of creating a second one.
func (s *SuggestionService) createEntity(ctx context.Context, sec domain.SecurityContext, sg *domain.SuggestedEntity) (uuid.UUID, error) {
	var profile domain.CompanyProfile
	if len(sg.Enrichment) > 0 {
		if err := json.Unmarshal(sg.Enrichment, &profile); err != nil {
			log.Printf("service.SuggestionService: decoding enrichment for %s: %v", sg.ID, err)
		}
	}

	switch sg.Kind {
	case domain.EntityKindCategory:
		if existing, err := s.categoryRepo.GetByName(ctx, sec.CompanyID, sg.SuggestedName); err == nil {
			return existing.ID, nil
		} else if !errors.Is(err, domain.ErrCategoryNotFound) {
			return uuid.Nil, err
		}
		cat := &domain.Category{
			ID:        uuid.New(),
			CompanyID: sec.CompanyID,
			Name:      sg.SuggestedName,
		}
		if err := s.categoryRepo.Create(ctx, cat); err != nil {
			return uuid.Nil, err
		}
		return cat.ID, nil
	case domain.EntityKindVendor:
		if existing, err := s.vendorRepo.GetByName(ctx, sec.CompanyID, sg.SuggestedName); err == nil {
			return existing.ID, nil
		} else if !errors.Is(err, domain.ErrVendorNotFound) {
			return uuid.Nil, err
		}
		v := &domain.Vendor{
			ID:        uuid.New(),
			CompanyID: sec.CompanyID,
			Name:      sg.SuggestedName,
			Email:     profile.Email,
			Phone:     profile.Phone,
			Website:   profile.Website,
			Address:   profile.Address,
		}
		if err := s.vendorRepo.Create(ctx, v); err != nil {
			return uuid.Nil, err
		}
		return v.ID, nil
	}
	return uuid.Nil, fmt.Errorf("unknown suggestion kind %q", sg.Kind)
}

// notify reports the decision by email, best-effort.
func (s *SuggestionService) notify(ctx context.Context, sg *domain.SuggestedEntity) {
	if s.email == nil || s.notifyEmail == "" {
		return
	}
	if err := s.email.SendSuggestionDecision(ctx, s.notifyEmail, sg); err != nil {
		log.Printf("service.SuggestionService: sending decision email for %s: %v", sg.ID, err)
	}
}
