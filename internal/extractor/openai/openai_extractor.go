package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pil1/IngridProduction-sub001/internal/config"
	"github.com/pil1/IngridProduction-sub001/internal/extractor"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o"
	maxTokens       = 8192
)

type payload = map[string]any

// Extractor runs documents through the OpenAI Chat Completions API in
// JSON-object mode.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor builds an OpenAI-backed extractor from provider config.
func NewExtractor(cfg *config.ExtractorProviderConfig) *Extractor {
	return NewExtractorWithEndpoint(cfg, defaultEndpoint)
}

// NewExtractorWithEndpoint overrides the API endpoint, used by tests.
func NewExtractorWithEndpoint(cfg *config.ExtractorProviderConfig, endpoint string) *Extractor {
	e := &Extractor{
		apiKey:   cfg.APIKey,
		model:    cfg.DefaultModel,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
	if e.model == "" {
		e.model = defaultModel
	}
	if cfg.TimeoutSecs > 0 {
		e.client.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return e
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.RawExtraction, error) {
	doc, err := documentBlock(input)
	if err != nil {
		return nil, err
	}
	prompt := extractor.BuildExtractionPrompt(input.DocumentType)

	body, err := e.post(ctx, payload{
		"model":                 e.model,
		"max_completion_tokens": maxTokens,
		"response_format":       payload{"type": "json_object"},
		"messages": []payload{
			{"role": "user", "content": []payload{doc, {"type": "text", "text": prompt}}},
		},
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding completions response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completions response carried no choices")
	}
	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("model output truncated at %d tokens", maxTokens)
	}

	return extractor.ParseModelJSON([]byte(resp.Choices[0].Message.Content), "openai")
}

func (e *Extractor) post(ctx context.Context, body payload) ([]byte, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding completions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading openai response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return respBody, nil
	case http.StatusTooManyRequests:
		cause := fmt.Errorf("openai returned 429: %s", respBody)
		return nil, extractor.NewRateLimitError("openai", cause, extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
	default:
		return nil, fmt.Errorf("openai returned %d: %s", resp.StatusCode, respBody)
	}
}

// documentBlock encodes the file as a data URL in the block shape the Chat
// Completions API expects for its media type.
func documentBlock(input port.ExtractInput) (payload, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", input.ContentType, base64.StdEncoding.EncodeToString(input.FileBytes))

	switch input.ContentType {
	case "application/pdf":
		return payload{
			"type": "file",
			"file": payload{"filename": "document.pdf", "file_data": dataURL},
		}, nil
	case "image/jpeg", "image/png":
		return payload{
			"type":      "image_url",
			"image_url": payload{"url": dataURL},
		}, nil
	default:
		return nil, fmt.Errorf("openai extractor cannot handle %s", input.ContentType)
	}
}
