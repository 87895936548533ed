package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pil1/IngridProduction-sub001/internal/config"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

const defaultTimeout = 10 * time.Second

// HTTPEnricher looks up company profiles against an external enrichment API.
type HTTPEnricher struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ port.WebEnricher = (*HTTPEnricher)(nil)

// NewHTTPEnricher builds an enricher from configuration. The endpoint is
// required; the API key is sent as a bearer token when present.
func NewHTTPEnricher(cfg *config.EnrichmentConfig) (*HTTPEnricher, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("enrichment endpoint is required")
	}
	timeout := defaultTimeout
	if cfg.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return &HTTPEnricher{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type lookupResponse struct {
	Results []struct {
		Name        string `json:"name"`
		Website     string `json:"website"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Description string `json:"description"`
	} `json:"results"`
}

// Lookup fetches a company profile by name. An empty result set maps to
// domain.ErrNoEnrichmentResult so callers can distinguish "nothing found"
// from transport failure.
func (e *HTTPEnricher) Lookup(ctx context.Context, name string) (*domain.CompanyProfile, error) {
	u := fmt.Sprintf("%s?name=%s", e.endpoint, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating enrichment request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling enrichment API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading enrichment response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNoEnrichmentResult
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enrichment API returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding enrichment response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, domain.ErrNoEnrichmentResult
	}

	r := parsed.Results[0]
	if r.Name == "" {
		r.Name = name
	}
	return &domain.CompanyProfile{
		Name:        r.Name,
		Website:     r.Website,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Description: r.Description,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
