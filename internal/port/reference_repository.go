package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// CategoryRepository is the reference-data store for expense categories.
// The resolver consumes it read-only; writes happen on suggestion approval.
type CategoryRepository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Category, error)
	GetByID(ctx context.Context, companyID, categoryID uuid.UUID) (*domain.Category, error)
	// GetByName looks a category up by exact name within the company.
	// Approval uses it to reuse an entity a retried request already created.
	GetByName(ctx context.Context, companyID uuid.UUID, name string) (*domain.Category, error)
	Create(ctx context.Context, cat *domain.Category) error
}

// VendorRepository is the reference-data store for vendors.
type VendorRepository interface {
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Vendor, error)
	GetByID(ctx context.Context, companyID, vendorID uuid.UUID) (*domain.Vendor, error)
	// GetByName looks a vendor up by exact name within the company.
	GetByName(ctx context.Context, companyID uuid.UUID, name string) (*domain.Vendor, error)
	Create(ctx context.Context, v *domain.Vendor) error
}

// ContactRepository stores contacts created from business cards.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contact, error)
}

// ExpenseRepository is the system of record for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, exp *domain.Expense) error
	GetBySourceCard(ctx context.Context, companyID, cardID uuid.UUID) (*domain.Expense, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
}
