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

type actionCardRepo struct {
	db *sqlx.DB
}

// NewActionCardRepo creates a new PostgreSQL-backed ActionCardRepository.
func NewActionCardRepo(db *sqlx.DB) port.ActionCardRepository {
	return &actionCardRepo{db: db}
}

const cardInsert = `INSERT INTO action_cards (
	id, company_id, conversation_id, type, title, data, confidence, priority,
	status, approval_required, expires_at, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (r *actionCardRepo) Create(ctx context.Context, card *domain.ActionCard) error {
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, cardInsert,
		card.ID, card.CompanyID, card.ConversationID, card.Type, card.Title,
		card.Data, card.Confidence, card.Priority, card.Status,
		card.ApprovalRequired, card.ExpiresAt, card.CreatedBy,
		card.CreatedAt, card.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actionCardRepo.Create: %w", err)
	}
	return nil
}

func (r *actionCardRepo) CreateBatch(ctx context.Context, cards []domain.ActionCard) error {
	if len(cards) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("actionCardRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for i := range cards {
		card := &cards[i]
		card.CreatedAt = now
		card.UpdatedAt = now
		_, err := tx.ExecContext(ctx, cardInsert,
			card.ID, card.CompanyID, card.ConversationID, card.Type, card.Title,
			card.Data, card.Confidence, card.Priority, card.Status,
			card.ApprovalRequired, card.ExpiresAt, card.CreatedBy,
			card.CreatedAt, card.UpdatedAt)
		if err != nil {
			return fmt.Errorf("actionCardRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("actionCardRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *actionCardRepo) GetByID(ctx context.Context, companyID, cardID uuid.UUID) (*domain.ActionCard, error) {
	var card domain.ActionCard
	err := r.db.GetContext(ctx, &card,
		"SELECT * FROM action_cards WHERE id = $1 AND company_id = $2", cardID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("actionCardRepo.GetByID: %w", err)
	}
	return &card, nil
}

func (r *actionCardRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, status *domain.ActionCardStatus, offset, limit int) ([]domain.ActionCard, int, error) {
	where := "WHERE company_id = $1"
	args := []interface{}{companyID}
	if status != nil {
		where += " AND status = $2"
		args = append(args, *status)
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM action_cards "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("actionCardRepo.ListByCompany count: %w", err)
	}

	listArgs := append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM action_cards %s ORDER BY priority, created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)

	var cards []domain.ActionCard
	err = r.db.SelectContext(ctx, &cards, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("actionCardRepo.ListByCompany: %w", err)
	}
	return cards, total, nil
}

// TransitionStatus is a compare-and-swap: the UPDATE matches on the expected
// status, so a concurrent transition makes this one lose with zero rows.
func (r *actionCardRepo) TransitionStatus(ctx context.Context, companyID, cardID uuid.UUID, expected, next domain.ActionCardStatus) error {
	if !domain.CanTransition(expected, next) {
		return domain.ErrCardTransition
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE action_cards SET status = $1, updated_at = $2
		 WHERE id = $3 AND company_id = $4 AND status = $5`,
		next, time.Now().UTC(), cardID, companyID, expected)
	if err != nil {
		return fmt.Errorf("actionCardRepo.TransitionStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("actionCardRepo.TransitionStatus rows: %w", err)
	}
	if rows == 0 {
		// Either the card is gone or another caller won the swap.
		if _, getErr := r.GetByID(ctx, companyID, cardID); getErr != nil {
			return getErr
		}
		return domain.ErrCardTransition
	}
	return nil
}
