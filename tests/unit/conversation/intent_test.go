package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pil1/IngridProduction-sub001/internal/conversation"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    domain.IntentType
	}{
		{"I want to upload a receipt", domain.IntentProcessDocument},
		{"please scan this invoice", domain.IntentProcessDocument},
		{"log what I spent on lunch", domain.IntentCreateExpense},
		{"what is the status of my pending cards", domain.IntentQueryStatus},
		{"how do I get started", domain.IntentHelp},
		{"blue elephants juggle quietly", domain.IntentUnknown},
	}
	for _, tc := range cases {
		got := conversation.DetectIntent(tc.message)
		assert.Equal(t, tc.want, got.Primary, tc.message)
	}
}

func TestDetectIntent_UnknownHasLowConfidence(t *testing.T) {
	got := conversation.DetectIntent("blue elephants juggle quietly")
	assert.Equal(t, 0.3, got.Confidence)
}

func TestDetectIntent_MoreHitsMoreConfidence(t *testing.T) {
	one := conversation.DetectIntent("upload this")
	two := conversation.DetectIntent("upload this receipt document")
	assert.Greater(t, two.Confidence, one.Confidence)
}

func TestDetectIntent_PhraseKeywordsCountDouble(t *testing.T) {
	got := conversation.DetectIntent("here is a business card")
	assert.Equal(t, domain.IntentProcessDocument, got.Primary)
	// "business card" scores 2 on its own.
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestDetectIntent_ConfidenceCapped(t *testing.T) {
	got := conversation.DetectIntent("upload attach receipt invoice scan document business card")
	assert.LessOrEqual(t, got.Confidence, 0.95)
}
