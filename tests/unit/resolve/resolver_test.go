package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/resolve"
	"github.com/pil1/IngridProduction-sub001/mocks"
)

func refs(names ...string) []resolve.ReferenceEntity {
	out := make([]resolve.ReferenceEntity, len(names))
	for i, n := range names {
		out[i] = resolve.ReferenceEntity{ID: uuid.New(), Name: n}
	}
	return out
}

func TestResolve_ExactMatch_IgnoresCaseAndSuffix(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	entities := refs("Microsoft Corporation")

	match := r.Resolve(context.Background(), "MICROSOFT CORP.", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeExact, match.MatchType)
	assert.Equal(t, 0.95, match.Confidence)
	assert.False(t, match.NeedsApproval)
	require.NotNil(t, match.EntityID)
	assert.Equal(t, entities[0].ID, *match.EntityID)
}

func TestResolve_FuzzyMatch_AtThresholdAccepted(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	// Similarity is exactly 0.80: 2 edits over length 10.
	entities := refs("aaaaabbbcc")

	match := r.Resolve(context.Background(), "aaaaabbbbb", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeFuzzy, match.MatchType)
	assert.InDelta(t, 0.80, match.Confidence, 1e-9)
	assert.True(t, match.NeedsApproval, "below 0.90 still needs approval")
	assert.NotNil(t, match.EntityID)
}

func TestResolve_FuzzyMatch_BelowThresholdFallsThrough(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	// Similarity 0.70: 3 edits over length 10.
	entities := refs("aaaaabbccc")

	match := r.Resolve(context.Background(), "aaaaabbbbb", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeNew, match.MatchType)
	assert.Nil(t, match.EntityID)
	assert.True(t, match.NeedsApproval)
	assert.InDelta(t, 0.30, match.Confidence, 1e-9)
}

func TestResolve_FuzzyMatch_HighSimilarityNoApproval(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	// Similarity 0.90: 1 edit over length 10.
	entities := refs("aaaaabbbbc")

	match := r.Resolve(context.Background(), "aaaaabbbbb", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeFuzzy, match.MatchType)
	assert.False(t, match.NeedsApproval)
}

func TestResolve_FuzzyTie_FirstEntityWins_Deterministic(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	entities := refs("aaaaabbbcc", "aaaaabbbdd")

	first := r.Resolve(context.Background(), "aaaaabbbbb", entities)
	require.NotNil(t, first)
	require.NotNil(t, first.EntityID)
	assert.Equal(t, entities[0].ID, *first.EntityID)

	for i := 0; i < 10; i++ {
		again := r.Resolve(context.Background(), "aaaaabbbbb", entities)
		require.NotNil(t, again)
		require.NotNil(t, again.EntityID)
		assert.Equal(t, *first.EntityID, *again.EntityID)
		assert.Equal(t, first.Confidence, again.Confidence)
	}
}

func TestResolve_SemanticAlias_VendorAbbreviation(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindVendor, nil)
	entities := refs("Microsoft Corporation")

	match := r.Resolve(context.Background(), "MSFT AZURE", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeSemantic, match.MatchType)
	require.NotNil(t, match.EntityID)
	assert.Equal(t, entities[0].ID, *match.EntityID)
	assert.True(t, match.NeedsApproval, "semantic matches always need approval")
	assert.InDelta(t, 0.95, match.Confidence, 1e-9)
}

func TestResolve_SemanticAlias_CategoryShorthand(t *testing.T) {
	r := resolve.NewResolver(domain.EntityKindCategory, nil)
	entities := refs("Technology")

	match := r.Resolve(context.Background(), "Tech", entities)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeSemantic, match.MatchType)
	assert.True(t, match.NeedsApproval)
}

func TestResolve_NewEntity_EnrichedVendor(t *testing.T) {
	enricher := new(mocks.MockWebEnricher)
	enricher.On("Lookup", mock.Anything, "Quantum Widgets").
		Return(&domain.CompanyProfile{Name: "Quantum Widgets", Website: "https://quantumwidgets.example"}, nil)

	r := resolve.NewResolver(domain.EntityKindVendor, &resolve.Options{Enricher: enricher})

	match := r.Resolve(context.Background(), "Quantum Widgets", nil)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeWebEnriched, match.MatchType)
	assert.InDelta(t, 0.60, match.Confidence, 1e-9)
	assert.True(t, match.NeedsApproval)
	require.NotNil(t, match.Enrichment)
	assert.Equal(t, "https://quantumwidgets.example", match.Enrichment.Website)
}

func TestResolve_NewEntity_EnrichmentFailureStaysNew(t *testing.T) {
	enricher := new(mocks.MockWebEnricher)
	enricher.On("Lookup", mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	r := resolve.NewResolver(domain.EntityKindVendor, &resolve.Options{Enricher: enricher})

	match := r.Resolve(context.Background(), "Quantum Widgets", nil)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeNew, match.MatchType)
	assert.InDelta(t, 0.30, match.Confidence, 1e-9)
	assert.Nil(t, match.Enrichment)
}

func TestResolve_NewEntity_CategoryNeverEnriched(t *testing.T) {
	enricher := new(mocks.MockWebEnricher)

	r := resolve.NewResolver(domain.EntityKindCategory, &resolve.Options{Enricher: enricher})

	match := r.Resolve(context.Background(), "Underwater Basket Weaving", nil)

	require.NotNil(t, match)
	assert.Equal(t, domain.MatchTypeNew, match.MatchType)
	enricher.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
}

func TestNormalizeName_VendorSuffixStripping(t *testing.T) {
	assert.Equal(t, "microsoft", resolve.NormalizeName("Microsoft Corporation", domain.EntityKindVendor))
	assert.Equal(t, "johnson and johnson", resolve.NormalizeName("Johnson & Johnson, Inc.", domain.EntityKindVendor))
	// Category names keep trailing words.
	assert.Equal(t, "holding company", resolve.NormalizeName("Holding Company", domain.EntityKindCategory))
	// A name that is nothing but a suffix keeps its last word.
	assert.Equal(t, "llc", resolve.NormalizeName("LLC", domain.EntityKindVendor))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, resolve.Similarity("abc", "abc"))
	assert.Equal(t, 1.0, resolve.Similarity("", ""))
	assert.InDelta(t, 0.8, resolve.Similarity("aaaaabbbbb", "aaaaabbbcc"), 1e-9)
	assert.Equal(t, 0.0, resolve.Similarity("abc", "xyz"))
}
