// Package remotive is a minimal client for the Remotive remote-jobs API.
package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://remotive.com"

// publication_date layouts seen in the wild; zone-less values are UTC
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Config defines Remotive client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the Remotive API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Job is a Remotive posting.
// PostedAt is nil when publication_date cannot be parsed.
type Job struct {
	ID                        int64
	Title                     string
	CompanyName               string
	URL                       string
	CandidateRequiredLocation string
	PostedAt                  *time.Time
}

type searchResponse struct {
	Jobs []posting `json:"jobs"`
}

type posting struct {
	ID                        int64  `json:"id"`
	URL                       string `json:"url"`
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	PublicationDate           string `json:"publication_date"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
}

// StatusError is returned for non-success responses
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remotive: unexpected status %d", e.StatusCode)
}

// NewClient builds a Remotive client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// SearchJobs runs a keyword search
func (c *Client) SearchJobs(ctx context.Context, search string) ([]Job, error) {
	u := c.baseURL + "/api/remote-jobs?search=" + url.QueryEscape(search)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("remotive: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remotive: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remotive: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Jobs))
	for _, p := range payload.Jobs {
		jobs = append(jobs, Job{
			ID:                        p.ID,
			Title:                     strings.TrimSpace(p.Title),
			CompanyName:               p.CompanyName,
			URL:                       p.URL,
			CandidateRequiredLocation: p.CandidateRequiredLocation,
			PostedAt:                  ParseDate(p.PublicationDate),
		})
	}
	return jobs, nil
}

// ParseDate parses a publication_date value, returning nil when no layout fits
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}
