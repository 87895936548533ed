package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/repository/postgres"
)

var suggestionColumns = []string{
	"id", "company_id", "kind", "suggested_name", "normalized_name", "confidence",
	"usage_count", "status", "context", "enrichment", "created_by",
	"created_entity_id", "reviewed_by", "review_notes",
	"first_suggested_at", "last_suggested_at",
}

func suggestionRow(id, companyID, createdBy uuid.UUID, name string, usage int, confidence float64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(suggestionColumns).AddRow(
		id.String(), companyID.String(), "vendor", name, name, confidence,
		usage, "pending", "", []byte(nil), createdBy.String(),
		nil, nil, "",
		now, now,
	)
}

// The dedup property lives in the upsert SQL: re-proposing an open suggestion
// must hit the ON CONFLICT branch keyed on the pending partial index and bump
// the usage count instead of inserting a second row.
func TestSuggestionUpsertPending_DedupIncrementsUsage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSuggestionRepo(sqlx.NewDb(db, "pgx"))

	companyID := uuid.New()
	createdBy := uuid.New()
	surviving := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"ON CONFLICT (company_id, kind, normalized_name) WHERE status = 'pending'",
	)).WillReturnRows(suggestionRow(surviving, companyID, createdBy, "quantum widgets", 2, 0.35))

	out, err := repo.UpsertPending(context.Background(), &domain.SuggestedEntity{
		CompanyID:      companyID,
		Kind:           domain.EntityKindVendor,
		SuggestedName:  "Quantum Widgets",
		NormalizedName: "quantum widgets",
		Confidence:     0.30,
		CreatedBy:      createdBy,
	})

	require.NoError(t, err)
	assert.Equal(t, surviving, out.ID)
	assert.Equal(t, 2, out.UsageCount)
	assert.Equal(t, domain.SuggestionStatusPending, out.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestionUpsertPending_UsageCountGoesBackToRepo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewSuggestionRepo(sqlx.NewDb(db, "pgx"))

	companyID := uuid.New()
	createdBy := uuid.New()
	id := uuid.New()

	mock.ExpectQuery(`usage_count\s+= suggested_entities\.usage_count \+ 1`).
		WillReturnRows(suggestionRow(id, companyID, createdBy, "snacks", 1, 0.4))

	out, err := repo.UpsertPending(context.Background(), &domain.SuggestedEntity{
		CompanyID:      companyID,
		Kind:           domain.EntityKindVendor,
		SuggestedName:  "Snacks",
		NormalizedName: "snacks",
		Confidence:     0.4,
		CreatedBy:      createdBy,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.UsageCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
