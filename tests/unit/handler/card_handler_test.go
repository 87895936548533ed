package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/handler"
	"github.com/pil1/IngridProduction-sub001/internal/middleware"
	"github.com/pil1/IngridProduction-sub001/internal/service"
	"github.com/pil1/IngridProduction-sub001/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSecurity() domain.SecurityContext {
	return domain.SecurityContext{
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
		Capabilities: map[domain.Capability]bool{
			domain.CapCreateExpense: true,
		},
	}
}

// cardRouter wires the card routes behind a stub security context so handler
// behavior can be tested without minting JWTs.
func cardRouter(cardRepo *mocks.MockActionCardRepo, sec domain.SecurityContext) *gin.Engine {
	svc := service.NewCardService(cardRepo, new(mocks.MockExpenseRepo), new(mocks.MockVendorRepo), new(mocks.MockContactRepo))
	h := handler.NewCardHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySecurity, sec)
	})
	r.GET("/cards", h.List)
	r.GET("/cards/:id", h.Get)
	r.POST("/cards/:id/approve", h.Approve)
	r.POST("/cards/:id/reject", h.Reject)
	return r
}

type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total  int `json:"total"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCardHandler_List(t *testing.T) {
	sec := testSecurity()
	cardRepo := new(mocks.MockActionCardRepo)
	cardRepo.On("ListByCompany", mock.Anything, sec.CompanyID, (*domain.ActionCardStatus)(nil), 0, 50).
		Return([]domain.ActionCard{{ID: uuid.New(), Status: domain.CardStatusPending}}, 1, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	cardRouter(cardRepo, sec).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestCardHandler_ListWithStatusFilter(t *testing.T) {
	sec := testSecurity()
	pending := domain.CardStatusPending
	cardRepo := new(mocks.MockActionCardRepo)
	cardRepo.On("ListByCompany", mock.Anything, sec.CompanyID, &pending, 0, 50).
		Return([]domain.ActionCard{}, 0, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cards?status=pending", nil)
	cardRouter(cardRepo, sec).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	cardRepo.AssertExpectations(t)
}

func TestCardHandler_GetInvalidID(t *testing.T) {
	sec := testSecurity()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cards/not-a-uuid", nil)
	cardRouter(new(mocks.MockActionCardRepo), sec).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func TestCardHandler_GetNotFound(t *testing.T) {
	sec := testSecurity()
	cardID := uuid.New()
	cardRepo := new(mocks.MockActionCardRepo)
	cardRepo.On("GetByID", mock.Anything, sec.CompanyID, cardID).Return(nil, domain.ErrCardNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cards/"+cardID.String(), nil)
	cardRouter(cardRepo, sec).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CARD_NOT_FOUND", env.Error.Code)
}

func TestCardHandler_ApproveConflict(t *testing.T) {
	sec := testSecurity()
	cardID := uuid.New()
	cardRepo := new(mocks.MockActionCardRepo)
	cardRepo.On("GetByID", mock.Anything, sec.CompanyID, cardID).
		Return(&domain.ActionCard{ID: cardID, CompanyID: sec.CompanyID, Type: domain.ActionCardCreateExpense, Status: domain.CardStatusRejected}, nil)
	cardRepo.On("TransitionStatus", mock.Anything, sec.CompanyID, cardID, domain.CardStatusPending, domain.CardStatusApproved).
		Return(domain.ErrCardTransition)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cards/"+cardID.String()+"/approve", nil)
	cardRouter(cardRepo, sec).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CARD_TRANSITION", env.Error.Code)
}

func TestCardHandler_MissingSecurityContext(t *testing.T) {
	svc := service.NewCardService(new(mocks.MockActionCardRepo), new(mocks.MockExpenseRepo), new(mocks.MockVendorRepo), new(mocks.MockContactRepo))
	h := handler.NewCardHandler(svc)
	r := gin.New()
	r.GET("/cards", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrEmptyDocument, http.StatusBadRequest, "EMPTY_DOCUMENT"},
		{domain.ErrSuggestionClosed, http.StatusConflict, "SUGGESTION_CLOSED"},
		{domain.ErrCardTransition, http.StatusConflict, "CARD_TRANSITION"},
		{domain.ErrConversationClosed, http.StatusConflict, "CONVERSATION_CLOSED"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		status, code, _ := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code, tc.code)
	}
}
