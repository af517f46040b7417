package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain/search"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const defaultPageSize = 20

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	PreferenceID     string `json:"preference_id" jsonschema:"Stored preference whose job pool is searched"`
	Page             int    `json:"page,omitempty" jsonschema:"Zero-based page index"`
	Size             int    `json:"size,omitempty" jsonschema:"Page size, defaults to 20"`
	Source           string `json:"source,omitempty" jsonschema:"Source key such as adzuna, remotive or naukri; all or empty for every source"`
	PostedWithinDays int    `json:"posted_within_days,omitempty" jsonschema:"Keep postings from the last N days; 0 disables the filter"`
	CompanyContains  string `json:"company_contains,omitempty" jsonschema:"Case-insensitive company substring"`
	SortBy           string `json:"sort_by,omitempty" jsonschema:"recency for newest first; anything else keeps source order"`
}

// JobFacetsParams defines the arguments for the job_facets tool
type JobFacetsParams struct {
	PreferenceID    string `json:"preference_id" jsonschema:"Stored preference whose job pool is counted"`
	CompanyContains string `json:"company_contains,omitempty" jsonschema:"Case-insensitive company substring"`
	SortBy          string `json:"sort_by,omitempty" jsonschema:"Accepted for symmetry with job_search; does not affect counts"`
}

type searchTool struct {
	svc    JobSearcher
	logger *logging.Logger
}

// WithJobSearch registers the job_search and job_facets tools
func WithJobSearch(svc JobSearcher, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := searchTool{svc: svc, logger: toolLogger(logger, "job_search")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Search the merged job pool of a stored preference with source, recency and company filters",
		}, handler.search)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_facets",
			Description: "Count a preference's job pool by source and by posting recency",
		}, handler.facets)
	}
}

func (t searchTool) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
	prefID, err := parseID("preference_id", params.PreferenceID)
	if err != nil {
		return nil, nil, err
	}

	size := params.Size
	if size <= 0 {
		size = defaultPageSize
	}

	page, err := t.svc.Search(ctx, search.Params{
		PreferenceID:     prefID,
		Page:             params.Page,
		Size:             size,
		Source:           params.Source,
		PostedWithinDays: params.PostedWithinDays,
		CompanyContains:  params.CompanyContains,
		SortBy:           params.SortBy,
	})
	if err != nil {
		t.logger.Warn("search failed", "err", err, "preference", prefID.String())
		return nil, nil, err
	}

	t.logger.Debug("search served", "preference", prefID.String(), "total", page.Total, "items", len(page.Items))

	header := fmt.Sprintf("[job_search] page %d (size %d) of %d matching job(s)", page.Page, page.Size, page.Total)
	return textResult(summarize(header, page.Items)), page, nil
}

func (t searchTool) facets(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobFacetsParams) (*sdkmcp.CallToolResult, any, error) {
	prefID, err := parseID("preference_id", params.PreferenceID)
	if err != nil {
		return nil, nil, err
	}

	counts, err := t.svc.Facets(ctx, prefID, params.CompanyContains, params.SortBy)
	if err != nil {
		t.logger.Warn("facets failed", "err", err, "preference", prefID.String())
		return nil, nil, err
	}

	msg := fmt.Sprintf("[job_facets] total=%d sources=%v recency=%v", counts.Total, counts.SourceCounts, counts.RecencyCounts)
	return textResult(msg), counts, nil
}

func toolLogger(logger *logging.Logger, name string) *logging.Logger {
	if logger == nil {
		logger = logging.NewNop()
	}
	return logger.With("tool", name)
}
