package resolve

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// ReferenceEntity is the minimal view of a reference-data row the cascade
// compares against. Callers must pass entities in a stable order; tie-breaks
// depend on it.
type ReferenceEntity struct {
	ID   uuid.UUID
	Name string
}

// Options tune the new-entity fallback of a resolver.
type Options struct {
	// Enricher is optional; when set, new-entity proposals are augmented with
	// web-sourced company data.
	Enricher           port.WebEnricher
	EnrichTimeout      time.Duration
	NewConfidence      float64
	EnrichedConfidence float64
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.EnrichTimeout == 0 {
		out.EnrichTimeout = 10 * time.Second
	}
	if out.NewConfidence == 0 {
		out.NewConfidence = 0.30
	}
	if out.EnrichedConfidence == 0 {
		out.EnrichedConfidence = 0.60
	}
	return out
}

// Resolver reconciles a free-text name against existing reference entities
// through the fixed cascade: exact, fuzzy, semantic, then a new-entity
// proposal. One implementation serves both kinds; construct one per kind.
type Resolver struct {
	kind     domain.EntityKind
	matchers []Matcher
	opts     Options
}

// NewResolver builds a resolver for the given entity kind.
func NewResolver(kind domain.EntityKind, opts *Options) *Resolver {
	return &Resolver{
		kind: kind,
		matchers: []Matcher{
			&exactMatcher{kind: kind},
			&fuzzyMatcher{kind: kind},
			newSemanticMatcher(kind),
		},
		opts: opts.withDefaults(),
	}
}

// Resolve runs the cascade and returns the first satisfied stage's match.
// The result is deterministic for a fixed (candidateName, entities) input.
func (r *Resolver) Resolve(ctx context.Context, candidateName string, entities []ReferenceEntity) *domain.EntityMatch {
	normalized := NormalizeName(candidateName, r.kind)
	if normalized == "" {
		return r.newEntityMatch(ctx, candidateName)
	}

	candidates := make([]candidateEntity, len(entities))
	for i, e := range entities {
		candidates[i] = candidateEntity{
			ReferenceEntity: e,
			normalized:      NormalizeName(e.Name, r.kind),
		}
	}

	for _, m := range r.matchers {
		if match, ok := m.Match(normalized, candidates); ok {
			return match
		}
	}

	return r.newEntityMatch(ctx, candidateName)
}

// newEntityMatch is the cascade's fallback: propose a new entity, optionally
// enriched with external company data. Always requires approval.
func (r *Resolver) newEntityMatch(ctx context.Context, candidateName string) *domain.EntityMatch {
	match := &domain.EntityMatch{
		Kind:          r.kind,
		EntityName:    candidateName,
		Confidence:    r.opts.NewConfidence,
		MatchType:     domain.MatchTypeNew,
		Reason:        "no acceptable match in reference data",
		NeedsApproval: true,
	}

	if r.opts.Enricher == nil || r.kind != domain.EntityKindVendor {
		return match
	}

	enrichCtx, cancel := context.WithTimeout(ctx, r.opts.EnrichTimeout)
	defer cancel()

	profile, err := r.opts.Enricher.Lookup(enrichCtx, candidateName)
	if err != nil {
		// Enrichment is best-effort; the proposal stands without it.
		log.Printf("resolve.Resolver: enrichment lookup for %q failed: %v", candidateName, err)
		return match
	}

	match.MatchType = domain.MatchTypeWebEnriched
	match.Confidence = r.opts.EnrichedConfidence
	match.Reason = "no match in reference data; proposal enriched from web lookup"
	match.Enrichment = profile
	return match
}
