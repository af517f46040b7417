package tools

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/alert"
	"github.com/honeycarbs/jobflow/internal/domain/search"
)

// JobSearcher runs filtered searches and facet counts over a preference's pool
type JobSearcher interface {
	Search(ctx context.Context, p search.Params) (domain.ResultPage[domain.JobView], error)
	Facets(ctx context.Context, prefID domain.PreferenceID, companyContains, sortBy string) (domain.FacetCounts, error)
}

// PoolFetcher returns the merged pool for an ad-hoc query
type PoolFetcher interface {
	FetchAll(ctx context.Context, q domain.Query, max int) ([]domain.Job, error)
	SourceKeys() []string
}

// PreferenceService stores search preferences
type PreferenceService interface {
	Save(ctx context.Context, p domain.Preference) (domain.Preference, error)
	Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error)
}

// AlertService manages saved searches
type AlertService interface {
	Create(ctx context.Context, prefID domain.PreferenceID, contact, channel, frequency string) (domain.SavedSearch, error)
	Update(ctx context.Context, id domain.SavedSearchID, contact, channel, frequency string) (domain.SavedSearch, error)
	Delete(ctx context.Context, id domain.SavedSearchID) error
	List(ctx context.Context) ([]domain.SavedSearch, error)
	ProcessAlerts(ctx context.Context) (alert.Report, error)
}

// JobFinder rehydrates archived jobs
type JobFinder interface {
	FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}

// SheetsClient writes export rows to a spreadsheet
type SheetsClient interface {
	Export(ctx context.Context, params SheetsExportParams) (SheetsExportResult, error)
}
