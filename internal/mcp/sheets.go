package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/jobflow/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/jobflow/pkg/sheets"
)

var sheetsHeader = []interface{}{"Title", "Company", "Location", "Source", "URL", "Posted", "Status", "Notes"}

type sheetsClientAdapter struct {
	client *sheetsclient.Client
}

func (a *sheetsClientAdapter) Export(ctx context.Context, params tools.SheetsExportParams) (tools.SheetsExportResult, error) {
	if a.client == nil {
		return tools.SheetsExportResult{
			SpreadsheetID: params.Sheet.SpreadsheetID,
			Tab:           params.Sheet.Tab,
			Message:       "Google Sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)",
		}, fmt.Errorf("sheets: client not configured")
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		CompletedAt:   time.Now().UTC(),
	}

	if len(params.Rows) == 0 {
		result.Message = "no rows to export"
		return result, nil
	}

	if params.Sheet.Range == "" {
		if err := a.client.EnsureTab(ctx, params.Sheet.SpreadsheetID, tabOrDefault(params.Sheet.Tab)); err != nil {
			return result, fmt.Errorf("sheets: failed to prepare tab: %w", err)
		}
	}

	rng := buildRange(params)
	values := convertRowsToValues(params.Rows)

	if params.ClearTab {
		clearRange := buildClearRange(params.Sheet.Tab)
		if err := a.client.ClearValues(ctx, params.Sheet.SpreadsheetID, clearRange); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
		if err := a.client.UpdateValues(ctx, params.Sheet.SpreadsheetID, headerRange(params.Sheet.Tab), [][]interface{}{sheetsHeader}); err != nil {
			return result, fmt.Errorf("sheets: failed to write header: %w", err)
		}
	}

	if params.Upsert {
		if err := a.client.UpdateValues(ctx, params.Sheet.SpreadsheetID, rng, values); err != nil {
			return result, fmt.Errorf("sheets: failed to upsert rows: %w", err)
		}
	} else {
		if err := a.client.AppendValues(ctx, params.Sheet.SpreadsheetID, rng, values); err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	}

	result.WrittenRows = len(params.Rows)
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)

	return result, nil
}

func tabOrDefault(tab string) string {
	if tab == "" {
		return "Jobs"
	}
	return tab
}

func buildRange(params tools.SheetsExportParams) string {
	if params.Sheet.Range != "" {
		return params.Sheet.Range
	}

	tab := tabOrDefault(params.Sheet.Tab)
	if params.Upsert {
		return fmt.Sprintf("%s!A2", tab)
	}
	return fmt.Sprintf("%s!A1", tab)
}

func buildClearRange(tab string) string {
	return fmt.Sprintf("%s!A1:Z", tabOrDefault(tab))
}

func headerRange(tab string) string {
	return fmt.Sprintf("%s!A1", tabOrDefault(tab))
}

func convertRowsToValues(rows []tools.SheetRow) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = []interface{}{
			row.Title,
			row.Company,
			row.Location,
			row.Source,
			row.URL,
			row.PostedAt,
			row.Status,
			row.Notes,
		}
	}
	return values
}
