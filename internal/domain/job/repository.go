package job

//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// Repository archives merged pools
type Repository interface {
	// UpsertJobs creates or updates jobs keyed by ID
	UpsertJobs(ctx context.Context, jobs []domain.Job) error

	// FindByIDs loads archived jobs for the given IDs
	FindByIDs(ctx context.Context, ids []domain.JobID) ([]domain.Job, error)
}
