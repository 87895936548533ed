package extractor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/extractor"
	"github.com/pil1/IngridProduction-sub001/internal/port"
	"github.com/pil1/IngridProduction-sub001/mocks"
)

func fallbackOutput(provider string) *port.RawExtraction {
	return &port.RawExtraction{
		Text:       "INVOICE #123",
		Confidence: 0.9,
		Provider:   provider,
	}
}

func TestFallbackExtractor_FirstSucceeds(t *testing.T) {
	e1 := new(mocks.MockDocumentExtractor)
	e2 := new(mocks.MockDocumentExtractor)
	e3 := new(mocks.MockDocumentExtractor)

	input := port.ExtractInput{FileBytes: []byte("test"), ContentType: "application/pdf", DocumentType: domain.DocumentTypeInvoice}
	e1.On("Extract", mock.Anything, input).Return(fallbackOutput("claude"), nil)

	fe := extractor.NewFallbackExtractor(
		[]port.DocumentExtractor{e1, e2, e3},
		[]string{"claude", "openai", "docai"},
	)

	result, err := fe.Extract(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "claude", result.Provider)
	e2.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	e3.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestFallbackExtractor_FirstFails_SecondSucceeds(t *testing.T) {
	e1 := new(mocks.MockDocumentExtractor)
	e2 := new(mocks.MockDocumentExtractor)

	input := port.ExtractInput{FileBytes: []byte("test"), ContentType: "application/pdf", DocumentType: domain.DocumentTypeInvoice}
	e1.On("Extract", mock.Anything, input).Return(nil, errors.New("generic error"))
	e2.On("Extract", mock.Anything, input).Return(fallbackOutput("openai"), nil)

	fe := extractor.NewFallbackExtractor(
		[]port.DocumentExtractor{e1, e2},
		[]string{"claude", "openai"},
	)

	result, err := fe.Extract(context.Background(), input)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "openai", result.Provider)
}

func TestFallbackExtractor_RateLimitOpensCircuit(t *testing.T) {
	e1 := new(mocks.MockDocumentExtractor)
	e2 := new(mocks.MockDocumentExtractor)

	input := port.ExtractInput{FileBytes: []byte("test"), ContentType: "application/pdf", DocumentType: domain.DocumentTypeInvoice}
	rlErr := extractor.NewRateLimitError("claude", errors.New("429"), 60)
	e1.On("Extract", mock.Anything, input).Return(nil, rlErr).Once()
	e2.On("Extract", mock.Anything, input).Return(fallbackOutput("openai"), nil).Twice()

	fe := extractor.NewFallbackExtractor(
		[]port.DocumentExtractor{e1, e2},
		[]string{"claude", "openai"},
	)

	// First call: claude rate-limited, openai serves.
	result, err := fe.Extract(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "openai", result.Provider)

	// Second call: claude's circuit is open, so it is skipped entirely.
	result, err = fe.Extract(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "openai", result.Provider)
	e1.AssertNumberOfCalls(t, "Extract", 1)
}

func TestFallbackExtractor_AllFail(t *testing.T) {
	e1 := new(mocks.MockDocumentExtractor)
	e2 := new(mocks.MockDocumentExtractor)

	input := port.ExtractInput{FileBytes: []byte("test"), ContentType: "application/pdf", DocumentType: domain.DocumentTypeReceipt}
	e1.On("Extract", mock.Anything, input).Return(nil, errors.New("boom"))
	e2.On("Extract", mock.Anything, input).Return(nil, errors.New("also boom"))

	fe := extractor.NewFallbackExtractor(
		[]port.DocumentExtractor{e1, e2},
		[]string{"claude", "openai"},
	)

	result, err := fe.Extract(context.Background(), input)

	assert.Nil(t, result)
	var exErr *extractor.ExtractionError
	assert.ErrorAs(t, err, &exErr)
}

func TestRateLimitError_DefaultRetryAfter(t *testing.T) {
	err := extractor.NewRateLimitError("claude", errors.New("429"), 0)
	assert.Equal(t, "claude", err.Provider)
	assert.Equal(t, float64(60), err.RetryAfter.Seconds())
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, extractor.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("soon"))
}
