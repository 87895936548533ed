package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pil1/IngridProduction-sub001/internal/service"
)

// ConversationHandler handles the conversational front end endpoints.
type ConversationHandler struct {
	conversations *service.ConversationService
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(conversations *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Start handles POST /api/v1/conversations.
func (h *ConversationHandler) Start(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	conv, err := h.conversations.Start(c.Request.Context(), sec)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, conv)
}

// Get handles GET /api/v1/conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	conv, err := h.conversations.Get(c.Request.Context(), sec, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conv)
}

// Message handles POST /api/v1/conversations/:id/messages.
func (h *ConversationHandler) Message(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "message is required")
		return
	}

	reply, intent, err := h.conversations.HandleMessage(c.Request.Context(), sec, c.Param("id"), req.Message)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reply": reply, "intent": intent})
}

// Close handles POST /api/v1/conversations/:id/close.
func (h *ConversationHandler) Close(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	if err := h.conversations.Close(c.Request.Context(), sec, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"closed": true})
}
