package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/shared/config"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

const maxResponseBytes = 1 << 20

// ApolloEnricher looks contacts up with Apollo's people/match endpoint.
type ApolloEnricher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  logger.Interface
}

var _ generation.Enricher = (*ApolloEnricher)(nil)

func NewApolloEnricher(cfg *config.EnrichmentConfig, log logger.Interface) *ApolloEnricher {
	return &ApolloEnricher{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.GetTimeout()},
		logger:  log,
	}
}

type matchRequest struct {
	LinkedInURL      string `json:"linkedin_url,omitempty"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
}

type matchResponse struct {
	Person *apolloPerson `json:"person"`
}

type apolloPerson struct {
	Email        string              `json:"email"`
	Title        string              `json:"title"`
	LinkedInURL  string              `json:"linkedin_url"`
	PhoneNumbers []apolloPhoneNumber `json:"phone_numbers"`
	Organization *apolloOrganization `json:"organization"`
}

type apolloPhoneNumber struct {
	RawNumber string `json:"raw_number"`
}

type apolloOrganization struct {
	Name                   string   `json:"name"`
	EstimatedNumEmployees  int      `json:"estimated_num_employees"`
	Industry               string   `json:"industry"`
	Technologies           []string `json:"technologies"`
	CurrentTechnologyNames []string `json:"current_technologies_names"`
}

// Enrich returns a copy of contact merged with whatever Apollo knows. The
// original map is returned untouched on any failure.
func (e *ApolloEnricher) Enrich(ctx context.Context, contact map[string]any) map[string]any {
	if e.apiKey == "" {
		e.logger.Debugw("apollo api key not configured, skipping enrichment")
		return contact
	}

	req, ok := buildMatchRequest(contact)
	if !ok {
		return contact
	}

	person, err := e.match(ctx, req)
	if err != nil {
		e.logger.Warnw("apollo enrichment failed", "error", err)
		return contact
	}
	if person == nil {
		return contact
	}
	return merge(contact, person)
}

func (e *ApolloEnricher) match(ctx context.Context, body matchRequest) (*apolloPerson, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := e.baseURL + "/people/match?" + url.Values{"api_key": {e.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out matchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Person, nil
}

// buildMatchRequest prefers the LinkedIn URL; otherwise it splits name into
// first and last name. ok is false when there is nothing to look up.
func buildMatchRequest(contact map[string]any) (matchRequest, bool) {
	if li := str(contact, "linkedin_url"); li != "" {
		return matchRequest{LinkedInURL: li}, true
	}

	name := str(contact, "name")
	if name == "" {
		return matchRequest{}, false
	}
	req := matchRequest{OrganizationName: str(contact, "company")}
	parts := strings.SplitN(name, " ", 2)
	req.FirstName = parts[0]
	if len(parts) == 2 {
		req.LastName = strings.TrimSpace(parts[1])
	}
	return req, true
}

func merge(contact map[string]any, p *apolloPerson) map[string]any {
	out := make(map[string]any, len(contact)+8)
	maps.Copy(out, contact)

	setIf(out, "email", p.Email)
	setIf(out, "title", p.Title)
	setIf(out, "linkedin_url", p.LinkedInURL)
	if len(p.PhoneNumbers) > 0 {
		setIf(out, "phone", p.PhoneNumbers[0].RawNumber)
	}

	if org := p.Organization; org != nil {
		setIf(out, "company", org.Name)
		setIf(out, "industry", org.Industry)
		if org.EstimatedNumEmployees > 0 {
			out["company_size"] = org.EstimatedNumEmployees
		}
		tech := org.Technologies
		if len(tech) == 0 {
			tech = org.CurrentTechnologyNames
		}
		if len(tech) > 0 {
			out["tech_stack"] = tech
		}
	}
	return out
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
