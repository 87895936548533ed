package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// modelResponse is the JSON contract vision-language providers are prompted
// to return.
type modelResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Fields     []struct {
		Name       string  `json:"name"`
		Value      string  `json:"value"`
		Confidence float64 `json:"confidence"`
	} `json:"fields"`
}

// ParseModelJSON parses the JSON a vision-language model produced into a
// RawExtraction. Markdown code fences around the object are tolerated.
func ParseModelJSON(raw []byte, provider string) (*port.RawExtraction, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp modelResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	out := &port.RawExtraction{
		Text:       resp.Text,
		Confidence: clamp01(resp.Confidence),
		Provider:   provider,
	}
	for _, f := range resp.Fields {
		if f.Name == "" || f.Value == "" {
			continue
		}
		out.Fields = append(out.Fields, port.FieldCandidate{
			Name:       f.Name,
			Value:      f.Value,
			Confidence: clamp01(f.Confidence),
		})
	}
	return out, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
