package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/internal/domain/search"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const (
	modeRows       = "append_rows"
	modeHydrate    = "hydrate_jobs"
	modePreference = "preference_search"
)

// SheetRow defines a row to write into Sheets
type SheetRow struct {
	Title    string `json:"title,omitempty" jsonschema:"Job title text"`
	Company  string `json:"company,omitempty" jsonschema:"Company name"`
	Location string `json:"location,omitempty" jsonschema:"Location text"`
	Source   string `json:"source,omitempty" jsonschema:"Source key"`
	URL      string `json:"url,omitempty" jsonschema:"Application URL"`
	PostedAt string `json:"posted_at,omitempty" jsonschema:"ISO timestamp of the posting"`
	Status   string `json:"status,omitempty" jsonschema:"Pipeline status e.g. applied/interviewing"`
	Notes    string `json:"notes,omitempty" jsonschema:"Free-form notes or instructions"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	JobIDs       []string   `json:"job_ids,omitempty" jsonschema:"Archived jobs to rehydrate from storage"`
	PreferenceID string     `json:"preference_id,omitempty" jsonschema:"Export the recency-sorted pool of this preference"`
	Rows         []SheetRow `json:"rows,omitempty" jsonschema:"Explicit rows to write when not rehydrating"`
	Upsert       bool       `json:"upsert,omitempty" jsonschema:"Whether to overwrite from row 2 (true) or append (false)"`
	ClearTab     bool       `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Sheet        struct {
		SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
		Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write data"`
		Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
	} `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	Mode          string    `json:"mode" jsonschema:"append_rows, hydrate_jobs or preference_search"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	client   SheetsClient
	finder   JobFinder
	searcher JobSearcher
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool.
// finder may be nil when no archive is configured; job_ids are then rejected.
func WithSheetsExport(client SheetsClient, finder JobFinder, searcher JobSearcher, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{
			client:   client,
			finder:   finder,
			searcher: searcher,
			logger:   toolLogger(logger, "sheets_export"),
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export archived jobs, a preference's job pool, or explicit rows to Google Sheets",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if strings.TrimSpace(params.Sheet.SpreadsheetID) == "" {
		return nil, nil, fmt.Errorf("sheets_export: sheet.spreadsheet_id is required")
	}

	rows, mode, err := t.collectRows(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	req := params
	req.Rows = rows

	result, err := t.client.Export(ctx, req)
	if err != nil {
		t.logger.Error("export failed", "err", err, "spreadsheet", params.Sheet.SpreadsheetID)
		return nil, nil, err
	}
	result.Mode = mode

	t.logger.Info("export completed", "spreadsheet", result.SpreadsheetID, "rows", result.WrittenRows, "mode", mode)

	msg := fmt.Sprintf("[sheets_export] mode=%s rows=%d spreadsheet_id=%q tab=%q", mode, result.WrittenRows, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}

func (t sheetsExportTool) collectRows(ctx context.Context, params SheetsExportParams) ([]SheetRow, string, error) {
	switch {
	case len(params.JobIDs) > 0:
		if t.finder == nil {
			return nil, modeHydrate, fmt.Errorf("sheets_export: job archive not configured")
		}
		ids := make([]domain.JobID, 0, len(params.JobIDs))
		for _, raw := range params.JobIDs {
			id, err := parseID("job_ids", raw)
			if err != nil {
				return nil, modeHydrate, err
			}
			ids = append(ids, id)
		}
		jobs, err := t.finder.FindByIDs(ctx, ids)
		if err != nil {
			return nil, modeHydrate, err
		}
		job.SortByRecency(jobs)
		rows := make([]SheetRow, 0, len(jobs))
		for _, j := range jobs {
			rows = append(rows, RowFromJob(j.View()))
		}
		return rows, modeHydrate, nil

	case params.PreferenceID != "":
		prefID, err := parseID("preference_id", params.PreferenceID)
		if err != nil {
			return nil, modePreference, err
		}
		page, err := t.searcher.Search(ctx, search.Params{
			PreferenceID: prefID,
			Size:         job.PoolCap,
			Source:       search.SourceAll,
			SortBy:       search.SortRecency,
		})
		if err != nil {
			return nil, modePreference, err
		}
		rows := make([]SheetRow, 0, len(page.Items))
		for _, v := range page.Items {
			rows = append(rows, RowFromJob(v))
		}
		return rows, modePreference, nil

	default:
		return params.Rows, modeRows, nil
	}
}

// RowFromJob maps a job view onto a sheet row
func RowFromJob(v domain.JobView) SheetRow {
	row := SheetRow{
		Title:    v.Title,
		Company:  v.Company,
		Location: v.Location,
		Source:   v.Source,
		URL:      v.ApplyURL,
		Status:   "new",
	}
	if v.PostedAt != nil {
		row.PostedAt = v.PostedAt.UTC().Format(time.RFC3339)
	}
	return row
}
