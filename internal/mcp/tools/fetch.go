package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const defaultFetchMax = 50

// FetchJobsParams defines the arguments for the fetch_jobs tool
type FetchJobsParams struct {
	Title      string `json:"title" jsonschema:"Job title or keywords"`
	Location   string `json:"location,omitempty" jsonschema:"Location text"`
	RemoteOnly bool   `json:"remote_only,omitempty" jsonschema:"Restrict to remote postings"`
	Max        int    `json:"max,omitempty" jsonschema:"Maximum jobs to return, 1-200, defaults to 50"`
}

// FetchJobsResult is the structured fetch_jobs output
type FetchJobsResult struct {
	Sources []string         `json:"sources"`
	Jobs    []domain.JobView `json:"jobs"`
}

type fetchTool struct {
	pool   PoolFetcher
	logger *logging.Logger
}

// WithFetchJobs registers the fetch_jobs tool
func WithFetchJobs(pool PoolFetcher, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := fetchTool{pool: pool, logger: toolLogger(logger, "fetch_jobs")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "fetch_jobs",
			Description: "Fetch, normalize and merge postings from every configured job source for an ad-hoc query",
		}, handler.handle)
	}
}

func (t fetchTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params FetchJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, nil, fmt.Errorf("fetch_jobs: title is required")
	}

	limit := params.Max
	if limit <= 0 {
		limit = defaultFetchMax
	}
	limit = min(limit, job.PoolCap)

	jobs, err := t.pool.FetchAll(ctx, domain.Query{
		Title:      params.Title,
		Location:   params.Location,
		RemoteOnly: params.RemoteOnly,
	}, limit)
	if err != nil {
		t.logger.Warn("fetch failed", "err", err, "title", params.Title)
		return nil, nil, err
	}

	result := FetchJobsResult{
		Sources: t.pool.SourceKeys(),
		Jobs:    make([]domain.JobView, 0, len(jobs)),
	}
	for _, j := range jobs {
		result.Jobs = append(result.Jobs, j.View())
	}

	t.logger.Info("fetch served", "title", params.Title, "jobs", len(result.Jobs))

	header := fmt.Sprintf("[fetch_jobs] %d job(s) from %s", len(result.Jobs), strings.Join(result.Sources, ", "))
	return textResult(summarize(header, result.Jobs)), result, nil
}
