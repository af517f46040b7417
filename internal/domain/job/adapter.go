package job

//go:generate mockgen -source=adapter.go -destination=mocks/adapter.go -package=mocks

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// Adapter is an upstream job source (REST API, scraped site, ...)
type Adapter interface {
	// SourceKey is a stable lowercase identifier, e.g. "adzuna"
	SourceKey() string

	// Fetch returns at most max raw postings for q.
	// Failures are logged by the adapter and yield an empty result.
	Fetch(ctx context.Context, q domain.Query, max int) []domain.RawJob
}
