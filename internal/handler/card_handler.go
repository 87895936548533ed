package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/service"
)

// CardHandler handles the action card endpoints.
type CardHandler struct {
	cards *service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// List handles GET /api/v1/cards with an optional status filter.
func (h *CardHandler) List(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	var status *domain.ActionCardStatus
	if s := c.Query("status"); s != "" {
		st := domain.ActionCardStatus(s)
		status = &st
	}

	offset, limit := pagination(c)
	list, total, err := h.cards.List(c.Request.Context(), sec, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/cards/:id.
func (h *CardHandler) Get(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "card id must be a UUID")
		return
	}

	card, err := h.cards.Get(c.Request.Context(), sec, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}

// Approve handles POST /api/v1/cards/:id/approve.
func (h *CardHandler) Approve(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "card id must be a UUID")
		return
	}

	card, err := h.cards.Approve(c.Request.Context(), sec, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}

// Reject handles POST /api/v1/cards/:id/reject.
func (h *CardHandler) Reject(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "card id must be a UUID")
		return
	}

	card, err := h.cards.Reject(c.Request.Context(), sec, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, card)
}
