package remotive

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobflow/internal/domain"
	jobdomain "github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/pkg/logging"
	"github.com/honeycarbs/jobflow/pkg/remotive"
)

const sourceKey = "remotive"

type searchClient interface {
	SearchJobs(ctx context.Context, search string) ([]remotive.Job, error)
}

// Provider implements job.Adapter over the Remotive API
type Provider struct {
	client searchClient
	logger *logging.Logger
}

// NewProvider builds a Remotive provider
func NewProvider(client searchClient, logger *logging.Logger) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("remotive provider: client is required")
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

// Fetch runs a single search request. Postings carry the query location,
// empty when none was asked for.
func (p *Provider) Fetch(ctx context.Context, q domain.Query, max int) []domain.RawJob {
	if max <= 0 {
		return nil
	}

	jobs, err := p.client.SearchJobs(ctx, q.Title)
	if err != nil {
		p.logger.Warn("fetch failed", "err", domain.Upstream(err, "remotive search"))
		return nil
	}

	out := make([]domain.RawJob, 0, min(len(jobs), max))
	for _, j := range jobs {
		if len(out) >= max {
			break
		}
		if j.Title == "" || j.URL == "" {
			continue
		}
		out = append(out, domain.RawJob{
			Source:   sourceKey,
			Title:    j.Title,
			Company:  j.CompanyName,
			Location: q.Location,
			ApplyURL: j.URL,
			PostedAt: j.PostedAt,
		})
	}

	p.logger.Debug("fetched", "jobs", len(out))
	return out
}

var _ jobdomain.Adapter = (*Provider)(nil)
