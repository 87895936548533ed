package docai

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

// Extractor implements port.DocumentExtractor against a Document-AI style
// structured extraction service. Unlike the vision-language providers, this
// backend returns typed entities with per-entity confidences, so field
// candidates come straight from the service instead of a prompted JSON
// contract.
type Extractor struct {
	apiKey    string
	processor string
	endpoint  string
	client    *http.Client
}

// NewExtractor creates a Document-AI-backed extractor from a provider config.
// The provider endpoint must be set in config; there is no public default.
func NewExtractor(cfg *config.ExtractorProviderConfig) (*Extractor, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("docai: endpoint is required")
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Extractor{
		apiKey:    cfg.APIKey,
		processor: cfg.DefaultModel,
		endpoint:  cfg.Endpoint,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.RawExtraction, error) {
	switch input.ContentType {
	case "application/pdf", "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
	}

	reqBody := map[string]interface{}{
		"processor": e.processor,
		"rawDocument": map[string]interface{}{
			"content":  base64.StdEncoding.EncodeToString(input.FileBytes),
			"mimeType": input.ContentType,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling docai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("docai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extractor.NewRateLimitError("docai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody)
}

// apiResponse models the processing response: full text plus typed entities.
type apiResponse struct {
	Document struct {
		Text     string `json:"text"`
		Entities []struct {
			Type        string  `json:"type"`
			MentionText string  `json:"mentionText"`
			Confidence  float64 `json:"confidence"`
		} `json:"entities"`
		Pages []struct {
			Tables []struct {
				HeaderRows []tableRow `json:"headerRows"`
				BodyRows   []tableRow `json:"bodyRows"`
			} `json:"tables"`
		} `json:"pages"`
	} `json:"document"`
}

type tableRow struct {
	Cells []struct {
		Text string `json:"text"`
	} `json:"cells"`
}

// entityFieldNames maps service entity types to the normalizer's field names.
var entityFieldNames = map[string]string{
	"supplier_name":  "vendor_name",
	"receipt_date":   "transaction_date",
	"invoice_date":   "invoice_date",
	"due_date":       "due_date",
	"invoice_id":     "invoice_number",
	"net_amount":     "subtotal",
	"total_tax_amount": "tax_amount",
	"total_amount":   "total_amount",
	"currency":       "currency",
	"payment_type":   "payment_method",
}

func parseResponse(body []byte) (*port.RawExtraction, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if resp.Document.Text == "" && len(resp.Document.Entities) == 0 {
		return nil, fmt.Errorf("empty document from API")
	}

	out := &port.RawExtraction{
		Text:     resp.Document.Text,
		Provider: "docai",
	}

	var sum float64
	for _, ent := range resp.Document.Entities {
		name, ok := entityFieldNames[ent.Type]
		if !ok {
			name = ent.Type
		}
		out.Fields = append(out.Fields, port.FieldCandidate{
			Name:       name,
			Value:      ent.MentionText,
			Confidence: ent.Confidence,
		})
		sum += ent.Confidence
	}
	if len(out.Fields) > 0 {
		out.Confidence = sum / float64(len(out.Fields))
	} else {
		// Text-only result: legible but unstructured
		out.Confidence = 0.6
	}

	for _, page := range resp.Document.Pages {
		for _, t := range page.Tables {
			out.Tables = append(out.Tables, convertTable(t.HeaderRows, t.BodyRows))
		}
	}

	return out, nil
}

func convertTable(header, body []tableRow) port.Table {
	var tbl port.Table
	rows := append(append([]tableRow{}, header...), body...)
	tbl.Rows = len(rows)
	for r, row := range rows {
		if len(row.Cells) > tbl.Cols {
			tbl.Cols = len(row.Cells)
		}
		for c, cell := range row.Cells {
			tbl.Cells = append(tbl.Cells, port.TableCell{Row: r, Col: c, Text: cell.Text})
		}
	}
	return tbl
}
