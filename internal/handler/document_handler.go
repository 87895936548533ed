package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pil1/IngridProduction-sub001/internal/service"
)

// DocumentHandler handles document upload and processing requests.
type DocumentHandler struct {
	pipeline *service.PipelineService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(pipeline *service.PipelineService) *DocumentHandler {
	return &DocumentHandler{pipeline: pipeline}
}

// Process handles POST /api/v1/documents. The request is multipart form data
// with a "file" part and an optional "conversation_id" field.
func (h *DocumentHandler) Process(c *gin.Context) {
	sec, ok := securityContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart field 'file' is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "uploaded file could not be read")
		return
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "uploaded file could not be read")
		return
	}

	input := service.ProcessInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileBytes:   fileBytes,
	}
	if convID := c.PostForm("conversation_id"); convID != "" {
		input.ConversationID = &convID
	}

	result, err := h.pipeline.ProcessDocument(c.Request.Context(), sec, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
