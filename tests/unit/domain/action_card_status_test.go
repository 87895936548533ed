package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ActionCardStatus
		to      domain.ActionCardStatus
		allowed bool
	}{
		{"pending to approved", domain.CardStatusPending, domain.CardStatusApproved, true},
		{"pending to rejected", domain.CardStatusPending, domain.CardStatusRejected, true},
		{"approved to executing", domain.CardStatusApproved, domain.CardStatusExecuting, true},
		{"executing to completed", domain.CardStatusExecuting, domain.CardStatusCompleted, true},

		{"completed never re-executes", domain.CardStatusCompleted, domain.CardStatusExecuting, false},
		{"rejected never executes", domain.CardStatusRejected, domain.CardStatusExecuting, false},
		{"completed cannot be re-approved", domain.CardStatusCompleted, domain.CardStatusApproved, false},
		{"rejected cannot be approved", domain.CardStatusRejected, domain.CardStatusApproved, false},
		{"no skipping approval", domain.CardStatusPending, domain.CardStatusExecuting, false},
		{"no skipping execution", domain.CardStatusApproved, domain.CardStatusCompleted, false},
		{"no backward edge", domain.CardStatusApproved, domain.CardStatusPending, false},
		{"executing cannot be rejected", domain.CardStatusExecuting, domain.CardStatusRejected, false},
		{"same state is not a transition", domain.CardStatusPending, domain.CardStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, domain.CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	all := []domain.ActionCardStatus{
		domain.CardStatusPending,
		domain.CardStatusApproved,
		domain.CardStatusRejected,
		domain.CardStatusExecuting,
		domain.CardStatusCompleted,
	}
	for _, terminal := range []domain.ActionCardStatus{domain.CardStatusCompleted, domain.CardStatusRejected} {
		for _, to := range all {
			assert.False(t, domain.CanTransition(terminal, to), "%s -> %s must be rejected", terminal, to)
		}
	}
}
