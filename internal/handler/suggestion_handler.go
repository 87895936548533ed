package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/export"
	"github.com/pil1/IngridProduction-sub001/internal/service"
)

// SuggestionHandler handles the suggested-entity review endpoints.
type SuggestionHandler struct {
	suggestions *service.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggestions *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

type decisionRequest struct {
	Notes string `json:"notes"`
}

type mergeRequest struct {
	TargetEntityID uuid.UUID `json:"target_entity_id" binding:"required"`
	Notes          string    `json:"notes"`
}

// List handles GET /api/v1/suggestions. Without a status filter it returns
// the pending queue ordered by usage count.
func (h *SuggestionHandler) List(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	statusStr := c.Query("status")
	if statusStr == "" || statusStr == string(domain.SuggestionStatusPending) {
		list, err := h.suggestions.ListPending(c.Request.Context(), sec)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, list)
		return
	}

	offset, limit := pagination(c)
	list, total, err := h.suggestions.ListByStatus(c.Request.Context(), sec, domain.SuggestionStatus(statusStr), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Approve handles POST /api/v1/suggestions/:id/approve.
func (h *SuggestionHandler) Approve(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "suggestion id must be a UUID")
		return
	}
	var req decisionRequest
	_ = c.ShouldBindJSON(&req)

	sg, err := h.suggestions.Approve(c.Request.Context(), sec, id, req.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sg)
}

// Reject handles POST /api/v1/suggestions/:id/reject.
func (h *SuggestionHandler) Reject(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "suggestion id must be a UUID")
		return
	}
	var req decisionRequest
	_ = c.ShouldBindJSON(&req)

	sg, err := h.suggestions.Reject(c.Request.Context(), sec, id, req.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sg)
}

// Merge handles POST /api/v1/suggestions/:id/merge.
func (h *SuggestionHandler) Merge(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "suggestion id must be a UUID")
		return
	}
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "target_entity_id is required")
		return
	}

	sg, err := h.suggestions.Merge(c.Request.Context(), sec, id, req.TargetEntityID, req.Notes)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sg)
}

// Export handles GET /api/v1/suggestions/export. It streams the pending
// queue as a spreadsheet.
func (h *SuggestionHandler) Export(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	list, err := h.suggestions.ListPending(c.Request.Context(), sec)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="suggestions.xlsx"`)
	if err := export.WriteSuggestionsXLSX(c.Writer, list); err != nil {
		HandleError(c, err)
	}
}

// pagination reads offset/limit query parameters with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
