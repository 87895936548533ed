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

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, exp *domain.Expense) error {
	exp.CreatedAt = time.Now().UTC()

	query := `INSERT INTO expenses (
		id, company_id, vendor_id, category_id, vendor_name, description,
		amount, currency, tax_amount, expense_date, source_card, created_by, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		exp.ID, exp.CompanyID, exp.VendorID, exp.CategoryID, exp.VendorName, exp.Description,
		exp.Amount, exp.Currency, exp.TaxAmount, exp.ExpenseDate, exp.SourceCard,
		exp.CreatedBy, exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) GetBySourceCard(ctx context.Context, companyID, cardID uuid.UUID) (*domain.Expense, error) {
	var exp domain.Expense
	err := r.db.GetContext(ctx, &exp,
		"SELECT * FROM expenses WHERE source_card = $1 AND company_id = $2", cardID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("expenseRepo.GetBySourceCard: %w", err)
	}
	return &exp, nil
}

func (r *expenseRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM expenses WHERE company_id = $1", companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByCompany count: %w", err)
	}

	var expenses []domain.Expense
	err = r.db.SelectContext(ctx, &expenses,
		`SELECT * FROM expenses WHERE company_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByCompany: %w", err)
	}
	return expenses, total, nil
}
