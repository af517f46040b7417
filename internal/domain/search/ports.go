package search

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// Pool serves the merged job pool for a query
type Pool interface {
	FetchAll(ctx context.Context, q domain.Query, max int) ([]domain.Job, error)
	SourceKeys() []string
}

// PreferenceLookup resolves stored preferences
type PreferenceLookup interface {
	Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error)
}
