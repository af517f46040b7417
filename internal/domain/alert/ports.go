package alert

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/search"
)

// Store persists saved searches.
// Get and Delete return an error marked domain.ErrNotFound for unknown ids.
type Store interface {
	Save(ctx context.Context, s domain.SavedSearch) error
	Get(ctx context.Context, id domain.SavedSearchID) (domain.SavedSearch, error)
	List(ctx context.Context) ([]domain.SavedSearch, error)
	Delete(ctx context.Context, id domain.SavedSearchID) error
}

// Searcher runs filtered searches over a preference's pool
type Searcher interface {
	Search(ctx context.Context, p search.Params) (domain.ResultPage[domain.JobView], error)
}

// PreferenceLookup resolves stored preferences
type PreferenceLookup interface {
	Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error)
}

// Notifier delivers a digest over one channel
type Notifier interface {
	Send(ctx context.Context, d domain.Digest) error
}
