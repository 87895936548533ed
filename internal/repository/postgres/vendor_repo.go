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

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	err := r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors WHERE company_id = $1 ORDER BY name", companyID)
	if err != nil {
		return nil, fmt.Errorf("vendorRepo.ListByCompany: %w", err)
	}
	return vendors, nil
}

func (r *vendorRepo) GetByID(ctx context.Context, companyID, vendorID uuid.UUID) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM vendors WHERE id = $1 AND company_id = $2", vendorID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByID: %w", err)
	}
	return &v, nil
}

func (r *vendorRepo) GetByName(ctx context.Context, companyID uuid.UUID, name string) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM vendors WHERE company_id = $1 AND name = $2", companyID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByName: %w", err)
	}
	return &v, nil
}

func (r *vendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `INSERT INTO vendors (
		id, company_id, name, email, phone, website, address, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.CompanyID, v.Name, v.Email, v.Phone, v.Website, v.Address,
		v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}
