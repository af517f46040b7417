package adzuna

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
	jobdomain "github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/pkg/adzuna"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const (
	sourceKey = "adzuna"
	maxPages  = 10
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Adapter over the paginated Adzuna API
type Provider struct {
	client searchClient
	logger *logging.Logger
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient, logger *logging.Logger) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{client: client, logger: logger.With("source", sourceKey)}, nil
}

// SourceKey returns provider identifier
func (p *Provider) SourceKey() string {
	return sourceKey
}

// Fetch walks result pages from 1 until max postings are collected, a page
// adds nothing, or the page cap is hit. A non-success status ends paging and
// keeps what was collected; any other failure yields nothing.
func (p *Provider) Fetch(ctx context.Context, q domain.Query, max int) []domain.RawJob {
	if max <= 0 {
		return nil
	}

	out := make([]domain.RawJob, 0, max)
	for page := 1; page <= maxPages && len(out) < max; page++ {
		jobs, err := p.client.SearchJobs(ctx, adzuna.SearchParams{
			What:   q.Title,
			Where:  q.Location,
			Remote: q.RemoteOnly,
			Page:   page,
		})
		if err != nil {
			var apiErr *adzuna.APIError
			if errors.As(err, &apiErr) {
				p.logger.Warn("non-success status, stopping pagination",
					"page", page, "status", apiErr.StatusCode, "collected", len(out))
				break
			}
			p.logger.Warn("fetch failed", "page", page, "err", domain.Upstream(err, "adzuna search"))
			return nil
		}

		added := 0
		for _, j := range jobs {
			if len(out) >= max {
				break
			}
			if j.Title == "" || j.URL == "" {
				continue
			}
			out = append(out, domain.RawJob{
				Source:      sourceKey,
				Title:       j.Title,
				Company:     j.CompanyName,
				Location:    j.Location,
				ApplyURL:    j.URL,
				PostedAt:    j.PostedAt,
				Description: j.Description,
			})
			added++
		}
		if added == 0 {
			break
		}
	}

	p.logger.Debug("fetched", "jobs", len(out))
	return out
}

var _ jobdomain.Adapter = (*Provider)(nil)
