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

type categoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepo creates a new PostgreSQL-backed CategoryRepository.
func NewCategoryRepo(db *sqlx.DB) port.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.SelectContext(ctx, &cats,
		"SELECT * FROM categories WHERE company_id = $1 ORDER BY name", companyID)
	if err != nil {
		return nil, fmt.Errorf("categoryRepo.ListByCompany: %w", err)
	}
	return cats, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, companyID, categoryID uuid.UUID) (*domain.Category, error) {
	var cat domain.Category
	err := r.db.GetContext(ctx, &cat,
		"SELECT * FROM categories WHERE id = $1 AND company_id = $2", categoryID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetByID: %w", err)
	}
	return &cat, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, companyID uuid.UUID, name string) (*domain.Category, error) {
	var cat domain.Category
	err := r.db.GetContext(ctx, &cat,
		"SELECT * FROM categories WHERE company_id = $1 AND name = $2", companyID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("categoryRepo.GetByName: %w", err)
	}
	return &cat, nil
}

func (r *categoryRepo) Create(ctx context.Context, cat *domain.Category) error {
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	query := `INSERT INTO categories (
		id, company_id, name, description, gl_account, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		cat.ID, cat.CompanyID, cat.Name, cat.Description, cat.GLAccount,
		cat.CreatedAt, cat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("categoryRepo.Create: %w", err)
	}
	return nil
}
