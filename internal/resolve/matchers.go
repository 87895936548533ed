package resolve

import (
	"fmt"
	"strings"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// Resolution thresholds. Fuzzy acceptance is inclusive at the threshold;
// semantic similarity must strictly exceed its threshold.
const (
	ExactMatchConfidence   = 0.95
	FuzzyAcceptThreshold   = 0.80
	FuzzyApprovalThreshold = 0.90
	SemanticSimThreshold   = 0.80
)

// candidateEntity pairs a reference entity with its pre-normalized name.
type candidateEntity struct {
	ReferenceEntity
	normalized string
}

// Matcher is one stage of the resolution cascade. Stages receive the
// normalized candidate and the entity list in its original, stable order.
type Matcher interface {
	Name() string
	Match(normalized string, entities []candidateEntity) (*domain.EntityMatch, bool)
}

// exactMatcher accepts case/punctuation-normalized string equality.
type exactMatcher struct {
	kind domain.EntityKind
}

func (m *exactMatcher) Name() string { return "exact" }

func (m *exactMatcher) Match(normalized string, entities []candidateEntity) (*domain.EntityMatch, bool) {
	for i := range entities {
		e := &entities[i]
		if e.normalized == normalized {
			id := e.ID
			return &domain.EntityMatch{
				Kind:          m.kind,
				EntityID:      &id,
				EntityName:    e.Name,
				Confidence:    ExactMatchConfidence,
				MatchType:     domain.MatchTypeExact,
				Reason:        "exact name match",
				NeedsApproval: false,
			}, true
		}
	}
	return nil, false
}

// fuzzyMatcher accepts the best edit-distance similarity at or above the
// acceptance threshold. Ties keep the first-seen entity.
type fuzzyMatcher struct {
	kind domain.EntityKind
}

func (m *fuzzyMatcher) Name() string { return "fuzzy" }

func (m *fuzzyMatcher) Match(normalized string, entities []candidateEntity) (*domain.EntityMatch, bool) {
	bestIdx := -1
	bestSim := 0.0
	for i := range entities {
		sim := Similarity(normalized, entities[i].normalized)
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestSim < FuzzyAcceptThreshold {
		return nil, false
	}

	e := &entities[bestIdx]
	id := e.ID
	return &domain.EntityMatch{
		Kind:          m.kind,
		EntityID:      &id,
		EntityName:    e.Name,
		Confidence:    bestSim,
		MatchType:     domain.MatchTypeFuzzy,
		Reason:        fmt.Sprintf("fuzzy match (similarity %.2f)", bestSim),
		NeedsApproval: bestSim < FuzzyApprovalThreshold,
	}, true
}

// semanticMatcher resolves through the static alias table: the candidate is
// mapped to a canonical name, which must then string-match an existing
// entity. Semantic matches always require approval.
type semanticMatcher struct {
	kind    domain.EntityKind
	aliases []aliasEntry
}

func newSemanticMatcher(kind domain.EntityKind) *semanticMatcher {
	return &semanticMatcher{kind: kind, aliases: aliasTable(kind)}
}

func (m *semanticMatcher) Name() string { return "semantic" }

func (m *semanticMatcher) Match(normalized string, entities []candidateEntity) (*domain.EntityMatch, bool) {
	canonical, alias, ok := m.lookup(normalized)
	if !ok {
		return nil, false
	}

	bestIdx := -1
	bestSim := 0.0
	for i := range entities {
		sim := Similarity(canonical, entities[i].normalized)
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestSim <= SemanticSimThreshold {
		return nil, false
	}

	e := &entities[bestIdx]
	id := e.ID
	// Scale into [0.75, 0.95] so semantic never outranks an exact match.
	confidence := 0.75 + (bestSim-SemanticSimThreshold)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return &domain.EntityMatch{
		Kind:          m.kind,
		EntityID:      &id,
		EntityName:    e.Name,
		Confidence:    confidence,
		MatchType:     domain.MatchTypeSemantic,
		Reason:        fmt.Sprintf("alias %q resolved to %q", alias, canonical),
		NeedsApproval: true,
	}, true
}

// lookup finds the alias-table entry the candidate refers to: an alias equal
// to the candidate, contained in it as a word, or highly similar to it.
func (m *semanticMatcher) lookup(normalized string) (canonical, alias string, ok bool) {
	words := strings.Fields(normalized)
	for _, entry := range m.aliases {
		for _, a := range append([]string{entry.canonical}, entry.aliases...) {
			if a == normalized || containsWord(words, a) || Similarity(a, normalized) > SemanticSimThreshold {
				return entry.canonical, a, true
			}
		}
	}
	return "", "", false
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}
