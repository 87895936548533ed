package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

type contactRepo struct {
	db *sqlx.DB
}

// NewContactRepo creates a new PostgreSQL-backed ContactRepository.
func NewContactRepo(db *sqlx.DB) port.ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	contact.CreatedAt = time.Now().UTC()

	query := `INSERT INTO contacts (
		id, company_id, full_name, title, email, phone, employer, created_by, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.CompanyID, contact.FullName, contact.Title,
		contact.Email, contact.Phone, contact.Employer, contact.CreatedBy, contact.CreatedAt)
	if err != nil {
		return fmt.Errorf("contactRepo.Create: %w", err)
	}
	return nil
}

func (r *contactRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contacts WHERE company_id = $1 ORDER BY full_name", companyID)
	if err != nil {
		return nil, fmt.Errorf("contactRepo.ListByCompany: %w", err)
	}
	return contacts, nil
}
