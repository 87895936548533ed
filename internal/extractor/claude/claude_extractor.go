package claude

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
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	apiVersion      = "2023-06-01"
	defaultModel    = "claude-sonnet-4-20250514"
	maxTokens       = 8192
)

type payload = map[string]any

// Extractor sends documents to the Anthropic Messages API and maps the
// model's JSON output onto a RawExtraction.
type Extractor struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewExtractor builds a Claude-backed extractor from provider config.
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
		"model":      e.model,
		"max_tokens": maxTokens,
		"messages": []payload{
			{"role": "user", "content": []payload{doc, {"type": "text", "text": prompt}}},
		},
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding messages response: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("messages response carried no content blocks")
	}
	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("model output truncated at %d tokens", maxTokens)
	}

	return extractor.ParseModelJSON([]byte(resp.Content[0].Text), "claude")
}

// post marshals the request, attaches auth headers, and returns the raw
// response body. 429s surface as RateLimitError so the fallback chain can
// open this provider's circuit.
func (e *Extractor) post(ctx context.Context, body payload) ([]byte, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding messages request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading anthropic response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return respBody, nil
	case http.StatusTooManyRequests:
		cause := fmt.Errorf("anthropic returned 429: %s", respBody)
		return nil, extractor.NewRateLimitError("claude", cause, extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
	default:
		return nil, fmt.Errorf("anthropic returned %d: %s", resp.StatusCode, respBody)
	}
}

// documentBlock encodes the file as the content block the Messages API
// expects for its media type. PDFs ride in a document block, images in an
// image block.
func documentBlock(input port.ExtractInput) (payload, error) {
	source := payload{
		"type":       "base64",
		"media_type": input.ContentType,
		"data":       base64.StdEncoding.EncodeToString(input.FileBytes),
	}

	switch input.ContentType {
	case "application/pdf":
		return payload{"type": "document", "source": source}, nil
	case "image/jpeg", "image/png":
		return payload{"type": "image", "source": source}, nil
	default:
		return nil, fmt.Errorf("claude extractor cannot handle %s", input.ContentType)
	}
}
