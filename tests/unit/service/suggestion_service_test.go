package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/service"
	"github.com/pil1/IngridProduction-sub001/mocks"
)

func newSuggestionService(repo *mocks.MockSuggestionRepo, catRepo *mocks.MockCategoryRepo, venRepo *mocks.MockVendorRepo, email *mocks.MockEmailSender) *service.SuggestionService {
	notify := ""
	var sender *mocks.MockEmailSender
	if email != nil {
		notify = "reviewer@example.com"
		sender = email
	}
	if sender == nil {
		return service.NewSuggestionService(repo, catRepo, venRepo, nil, notify)
	}
	return service.NewSuggestionService(repo, catRepo, venRepo, sender, notify)
}

func pendingSuggestion(companyID uuid.UUID, kind domain.EntityKind, name string) *domain.SuggestedEntity {
	return &domain.SuggestedEntity{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Kind:          kind,
		SuggestedName: name,
		Status:        domain.SuggestionStatusPending,
		UsageCount:    1,
	}
}

func TestSuggestionPropose_NormalizesName(t *testing.T) {
	sec := operatorContext()
	repo := new(mocks.MockSuggestionRepo)

	repo.On("UpsertPending", mock.Anything, mock.MatchedBy(func(sg *domain.SuggestedEntity) bool {
		return sg.SuggestedName == "Quantum Widgets Inc." &&
			sg.NormalizedName == "quantum widgets" &&
			sg.Kind == domain.EntityKindVendor &&
			sg.CompanyID == sec.CompanyID
	})).Return(pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets Inc."), nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), new(mocks.MockVendorRepo), nil)

	got, err := svc.Propose(context.Background(), sec, &domain.EntityMatch{
		Kind:       domain.EntityKindVendor,
		EntityName: "Quantum Widgets Inc.",
		MatchType:  domain.MatchTypeNew,
		Confidence: 0.30,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusPending, got.Status)
	repo.AssertExpectations(t)
}

func TestSuggestionApprove_CreatesVendorAndCloses(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")

	repo := new(mocks.MockSuggestionRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	email := new(mocks.MockEmailSender)

	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)
	vendorRepo.On("GetByName", mock.Anything, sec.CompanyID, "Quantum Widgets").Return(nil, domain.ErrVendorNotFound)
	vendorRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vendor) bool {
		return v.Name == "Quantum Widgets" && v.CompanyID == sec.CompanyID
	})).Return(nil)
	repo.On("UpdateDecision", mock.Anything, mock.MatchedBy(func(s *domain.SuggestedEntity) bool {
		return s.Status == domain.SuggestionStatusApproved && s.CreatedEntityID != nil && s.ReviewedBy != nil
	})).Return(nil)
	email.On("SendSuggestionDecision", mock.Anything, "reviewer@example.com", mock.Anything).Return(nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), vendorRepo, email)

	got, err := svc.Approve(context.Background(), sec, sg.ID, "looks good")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusApproved, got.Status)
	require.NotNil(t, got.CreatedEntityID)
	assert.Equal(t, "looks good", got.ReviewNotes)
	vendorRepo.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestSuggestionApprove_Idempotent(t *testing.T) {
	sec := operatorContext()
	entityID := uuid.New()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	sg.Status = domain.SuggestionStatusApproved
	sg.CreatedEntityID = &entityID

	repo := new(mocks.MockSuggestionRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), vendorRepo, nil)

	got, err := svc.Approve(context.Background(), sec, sg.ID, "")

	require.NoError(t, err)
	require.NotNil(t, got.CreatedEntityID)
	assert.Equal(t, entityID, *got.CreatedEntityID)
	vendorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}

func TestSuggestionApprove_RetriedApprovalReusesExistingVendor(t *testing.T) {
	// An earlier approval created the vendor but never stamped the decision.
	// The retried approval must reuse that vendor, not create a second one.
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	existing := &domain.Vendor{ID: uuid.New(), CompanyID: sec.CompanyID, Name: "Quantum Widgets"}

	repo := new(mocks.MockSuggestionRepo)
	vendorRepo := new(mocks.MockVendorRepo)

	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)
	vendorRepo.On("GetByName", mock.Anything, sec.CompanyID, "Quantum Widgets").Return(existing, nil)
	repo.On("UpdateDecision", mock.Anything, mock.MatchedBy(func(s *domain.SuggestedEntity) bool {
		return s.Status == domain.SuggestionStatusApproved &&
			s.CreatedEntityID != nil && *s.CreatedEntityID == existing.ID
	})).Return(nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), vendorRepo, nil)

	got, err := svc.Approve(context.Background(), sec, sg.ID, "")

	require.NoError(t, err)
	require.NotNil(t, got.CreatedEntityID)
	assert.Equal(t, existing.ID, *got.CreatedEntityID)
	vendorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSuggestionApprove_RejectedIsClosed(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindCategory, "Snacks")
	sg.Status = domain.SuggestionStatusRejected

	repo := new(mocks.MockSuggestionRepo)
	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), new(mocks.MockVendorRepo), nil)

	_, err := svc.Approve(context.Background(), sec, sg.ID, "")

	assert.ErrorIs(t, err, domain.ErrSuggestionClosed)
}

func TestSuggestionApprove_CategoryKind(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindCategory, "Snacks")

	repo := new(mocks.MockSuggestionRepo)
	catRepo := new(mocks.MockCategoryRepo)

	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)
	catRepo.On("GetByName", mock.Anything, sec.CompanyID, "Snacks").Return(nil, domain.ErrCategoryNotFound)
	catRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Snacks" && c.CompanyID == sec.CompanyID
	})).Return(nil)
	repo.On("UpdateDecision", mock.Anything, mock.Anything).Return(nil)

	svc := newSuggestionService(repo, catRepo, new(mocks.MockVendorRepo), nil)

	got, err := svc.Approve(context.Background(), sec, sg.ID, "")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusApproved, got.Status)
	catRepo.AssertExpectations(t)
}

func TestSuggestionReject_Idempotent(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	sg.Status = domain.SuggestionStatusRejected

	repo := new(mocks.MockSuggestionRepo)
	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), new(mocks.MockVendorRepo), nil)

	got, err := svc.Reject(context.Background(), sec, sg.ID, "")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusRejected, got.Status)
	repo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}

func TestSuggestionMerge_TargetMustExist(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	target := uuid.New()

	repo := new(mocks.MockSuggestionRepo)
	vendorRepo := new(mocks.MockVendorRepo)

	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)
	vendorRepo.On("GetByID", mock.Anything, sec.CompanyID, target).Return(nil, domain.ErrVendorNotFound)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), vendorRepo, nil)

	_, err := svc.Merge(context.Background(), sec, sg.ID, target, "")

	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
	repo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}

func TestSuggestionMerge_Success(t *testing.T) {
	sec := operatorContext()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	target := uuid.New()

	repo := new(mocks.MockSuggestionRepo)
	vendorRepo := new(mocks.MockVendorRepo)

	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)
	vendorRepo.On("GetByID", mock.Anything, sec.CompanyID, target).
		Return(&domain.Vendor{ID: target, CompanyID: sec.CompanyID, Name: "Quantum Widgets LLC"}, nil)
	repo.On("UpdateDecision", mock.Anything, mock.MatchedBy(func(s *domain.SuggestedEntity) bool {
		return s.Status == domain.SuggestionStatusMerged && s.CreatedEntityID != nil && *s.CreatedEntityID == target
	})).Return(nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), vendorRepo, nil)

	got, err := svc.Merge(context.Background(), sec, sg.ID, target, "same vendor")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusMerged, got.Status)
}

func TestSuggestionMerge_RepeatedSameTargetIsNoop(t *testing.T) {
	sec := operatorContext()
	target := uuid.New()
	sg := pendingSuggestion(sec.CompanyID, domain.EntityKindVendor, "Quantum Widgets")
	sg.Status = domain.SuggestionStatusMerged
	sg.CreatedEntityID = &target

	repo := new(mocks.MockSuggestionRepo)
	repo.On("GetByID", mock.Anything, sec.CompanyID, sg.ID).Return(sg, nil)

	svc := newSuggestionService(repo, new(mocks.MockCategoryRepo), new(mocks.MockVendorRepo), nil)

	got, err := svc.Merge(context.Background(), sec, sg.ID, target, "")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionStatusMerged, got.Status)
	repo.AssertNotCalled(t, "UpdateDecision", mock.Anything, mock.Anything)
}
