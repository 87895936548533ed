package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/cards"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
	"github.com/pil1/IngridProduction-sub001/internal/resolve"
	"github.com/pil1/IngridProduction-sub001/internal/service"
	"github.com/pil1/IngridProduction-sub001/internal/validator"
	"github.com/pil1/IngridProduction-sub001/mocks"
)

type pipelineFixture struct {
	extractor    *mocks.MockDocumentExtractor
	categoryRepo *mocks.MockCategoryRepo
	vendorRepo   *mocks.MockVendorRepo
	cardRepo     *mocks.MockActionCardRepo
	sgRepo       *mocks.MockSuggestionRepo
	svc          *service.PipelineService
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		extractor:    new(mocks.MockDocumentExtractor),
		categoryRepo: new(mocks.MockCategoryRepo),
		vendorRepo:   new(mocks.MockVendorRepo),
		cardRepo:     new(mocks.MockActionCardRepo),
		sgRepo:       new(mocks.MockSuggestionRepo),
	}
	suggestions := service.NewSuggestionService(f.sgRepo, f.categoryRepo, f.vendorRepo, nil, "")
	f.svc = service.NewPipelineService(
		f.extractor,
		nil, "",
		f.categoryRepo,
		f.vendorRepo,
		f.cardRepo,
		nil,
		resolve.NewResolver(domain.EntityKindCategory, nil),
		resolve.NewResolver(domain.EntityKindVendor, nil),
		validator.NewEngineWithClock(10000, func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
		cards.NewGenerator(0.80, 0),
		suggestions,
		25,
	)
	return f
}

const receiptText = `Corner Cafe
2024-03-15
Receipt
Subtotal: 115.00
HST (13%): 14.95
Total: $129.95
Thank you for shopping`

func TestProcessDocument_EmptyFileRejected(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.svc.ProcessDocument(context.Background(), operatorContext(), service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessDocument_OversizedFileRejected(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.svc.ProcessDocument(context.Background(), operatorContext(), service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   make([]byte, 26*1024*1024),
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessDocument_UnsupportedTypeRejectedBeforeExtraction(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.svc.ProcessDocument(context.Background(), operatorContext(), service.ProcessInput{
		Filename:    "archive.zip",
		ContentType: "application/zip",
		FileBytes:   []byte("PK"),
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessDocument_ExtensionFallbackAccepted(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	// Octet-stream uploads pass when the extension is recognized.
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).Return([]domain.Vendor{}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.sgRepo.On("UpsertPending", mock.Anything, mock.Anything).
		Return(&domain.SuggestedEntity{Status: domain.SuggestionStatusPending}, nil)

	_, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.pdf",
		ContentType: "application/octet-stream",
		FileBytes:   []byte("%PDF"),
	})

	assert.NoError(t, err)
}

func TestProcessDocument_ExtractionFailure_DegradedResult(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err, "a dead provider chain degrades, it does not fail")
	assert.True(t, got.Degraded)
	assert.Equal(t, domain.DocumentTypeReceipt, got.Analysis.DocumentType, "filename still classifies")
	assert.Equal(t, 0.5, got.Analysis.Confidence)
	assert.Empty(t, got.Analysis.Fields)
	require.Len(t, got.Analysis.Warnings, 1)
	assert.Contains(t, got.Analysis.Warnings[0], "manual entry required")
	assert.Empty(t, got.Cards)
	f.cardRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestProcessDocument_KnownVendor_ExactMatchAndCards(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()
	vendorID := uuid.New()

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).
		Return([]domain.Vendor{{ID: vendorID, CompanyID: sec.CompanyID, Name: "Corner Cafe"}}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.ActionCard) bool {
		return len(batch) == 1 && batch[0].Type == domain.ActionCardCreateExpense
	})).Return(nil)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err)
	assert.False(t, got.Degraded)
	assert.Equal(t, domain.DocumentTypeReceipt, got.Analysis.DocumentType)

	require.Len(t, got.Matches, 1)
	match := got.Matches[0]
	assert.Equal(t, domain.MatchTypeExact, match.MatchType)
	require.NotNil(t, match.EntityID)
	assert.Equal(t, vendorID, *match.EntityID)

	require.Len(t, got.Cards, 1)
	assert.Equal(t, domain.CardStatusPending, got.Cards[0].Status)
	assert.True(t, got.Cards[0].ApprovalRequired)

	// Exact matches never open suggestions.
	assert.Empty(t, got.Suggestions)
	f.sgRepo.AssertNotCalled(t, "UpsertPending", mock.Anything, mock.Anything)
}

func TestProcessDocument_UnknownVendor_OpensSuggestion(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).Return([]domain.Vendor{}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.ActionCard) bool {
		// A brand-new vendor yields both an expense card and a vendor card.
		return len(batch) == 2
	})).Return(nil)
	f.sgRepo.On("UpsertPending", mock.Anything, mock.MatchedBy(func(sg *domain.SuggestedEntity) bool {
		return sg.Kind == domain.EntityKindVendor && sg.SuggestedName == "Corner Cafe"
	})).Return(&domain.SuggestedEntity{
		ID:            uuid.New(),
		CompanyID:     sec.CompanyID,
		Kind:          domain.EntityKindVendor,
		SuggestedName: "Corner Cafe",
		Status:        domain.SuggestionStatusPending,
		UsageCount:    1,
	}, nil)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, domain.MatchTypeNew, got.Matches[0].MatchType)
	assert.Nil(t, got.Matches[0].EntityID)

	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, "Corner Cafe", got.Suggestions[0].SuggestedName)
	f.sgRepo.AssertExpectations(t)
}

func TestProcessDocument_SuggestionFailureDoesNotFailPipeline(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).Return([]domain.Vendor{}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.sgRepo.On("UpsertPending", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err)
	assert.Empty(t, got.Suggestions)
	require.Len(t, got.Cards, 2)
}

func TestProcessDocument_VendorListFailureSkipsResolution(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).Return(nil, assert.AnError)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err, "reference data being down degrades matching, not the pipeline")
	assert.Empty(t, got.Matches)
}

func TestProcessDocument_BusinessCard_NoResolution(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()

	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(&port.RawExtraction{
		Text: "Dana Smith\nAcme Consulting\nMobile: 555-0100\ndana@acme.example\nwww.acme.example",
	}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []domain.ActionCard) bool {
		return len(batch) == 1 && batch[0].Type == domain.ActionCardCreateContact
	})).Return(nil)

	got, err := f.svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "business-card.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeBusinessCard, got.Analysis.DocumentType)
	assert.Empty(t, got.Matches)
	f.vendorRepo.AssertNotCalled(t, "ListByCompany", mock.Anything, mock.Anything)
}

func TestProcessDocument_ArchiveFailureIsNotFatal(t *testing.T) {
	f := newPipelineFixture()
	sec := operatorContext()
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	suggestions := service.NewSuggestionService(f.sgRepo, f.categoryRepo, f.vendorRepo, nil, "")
	svc := service.NewPipelineService(
		f.extractor, storage, "documents",
		f.categoryRepo, f.vendorRepo, f.cardRepo, nil,
		resolve.NewResolver(domain.EntityKindCategory, nil),
		resolve.NewResolver(domain.EntityKindVendor, nil),
		validator.NewEngine(10000),
		cards.NewGenerator(0.80, 0),
		suggestions, 25,
	)

	f.extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.RawExtraction{Text: receiptText, Confidence: 0.9, Provider: "claude"}, nil)
	f.vendorRepo.On("ListByCompany", mock.Anything, sec.CompanyID).
		Return([]domain.Vendor{{ID: uuid.New(), Name: "Corner Cafe"}}, nil)
	f.cardRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ProcessDocument(context.Background(), sec, service.ProcessInput{
		Filename:    "receipt.jpg",
		ContentType: "image/jpeg",
		FileBytes:   []byte("fake image"),
	})

	assert.NoError(t, err)
	storage.AssertExpectations(t)
}
