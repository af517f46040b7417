package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// AlertSaveParams defines the arguments for the alert_save tool
type AlertSaveParams struct {
	ID           string `json:"id,omitempty" jsonschema:"Existing saved search to update; omit to create"`
	PreferenceID string `json:"preference_id,omitempty" jsonschema:"Preference to subscribe to, required when creating"`
	Contact      string `json:"contact,omitempty" jsonschema:"Email address, WhatsApp number, spreadsheet id or queue label"`
	Channel      string `json:"channel,omitempty" jsonschema:"EMAIL, WHATSAPP, SHEETS or QUEUE"`
	Frequency    string `json:"frequency,omitempty" jsonschema:"DAILY, EVERY_3_DAYS or WEEKLY"`
}

// AlertDeleteParams defines the arguments for the alert_delete tool
type AlertDeleteParams struct {
	ID string `json:"id" jsonschema:"Saved search to remove"`
}

// AlertListParams takes no arguments
type AlertListParams struct{}

// AlertListResult is the structured alert_list output
type AlertListResult struct {
	Items []domain.SavedSearch `json:"items"`
}

type alertTool struct {
	svc    AlertService
	logger *logging.Logger
}

// WithAlerts registers the saved search tools
func WithAlerts(svc AlertService, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := alertTool{svc: svc, logger: toolLogger(logger, "alerts")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "alert_save",
			Description: "Create or update a saved search that sends new jobs for a preference on a schedule",
		}, handler.save)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "alert_list",
			Description: "List saved searches",
		}, handler.list)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "alert_delete",
			Description: "Remove a saved search",
		}, handler.delete)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "alert_process",
			Description: "Run one alert cycle now and report what was sent",
		}, handler.process)
	}
}

func (t alertTool) save(ctx context.Context, _ *sdkmcp.CallToolRequest, params AlertSaveParams) (*sdkmcp.CallToolResult, any, error) {

	var (
		saved domain.SavedSearch
		verb  string
	)
	if strings.TrimSpace(params.ID) != "" {
		id, err := parseID("id", params.ID)
		if err != nil {
			return nil, nil, err
		}
		saved, err = t.svc.Update(ctx, id, params.Contact, params.Channel, params.Frequency)
		if err != nil {
			return nil, nil, err
		}
		verb = "updated"
	} else {
		prefID, err := parseID("preference_id", params.PreferenceID)
		if err != nil {
			return nil, nil, err
		}
		saved, err = t.svc.Create(ctx, prefID, params.Contact, params.Channel, params.Frequency)
		if err != nil {
			return nil, nil, err
		}
		verb = "created"
	}

	msg := fmt.Sprintf("[alert_save] %s saved search %s (%s, %s)", verb, saved.ID, saved.Channel, saved.Frequency)
	return textResult(msg), saved, nil
}

func (t alertTool) list(ctx context.Context, _ *sdkmcp.CallToolRequest, _ AlertListParams) (*sdkmcp.CallToolResult, any, error) {
	items, err := t.svc.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[alert_list] %d saved search(es)", len(items))
	for _, s := range items {
		fmt.Fprintf(&b, "\n%s preference=%s %s %s -> %s", s.ID, s.PreferenceID, s.Channel, s.Frequency, s.Contact)
	}
	return textResult(b.String()), AlertListResult{Items: items}, nil
}

func (t alertTool) delete(ctx context.Context, _ *sdkmcp.CallToolRequest, params AlertDeleteParams) (*sdkmcp.CallToolResult, any, error) {
	id, err := parseID("id", params.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := t.svc.Delete(ctx, id); err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("[alert_delete] removed %s", id)), map[string]uuid.UUID{"id": id}, nil
}

func (t alertTool) process(ctx context.Context, _ *sdkmcp.CallToolRequest, _ AlertListParams) (*sdkmcp.CallToolResult, any, error) {
	report, err := t.svc.ProcessAlerts(ctx)
	if err != nil {
		t.logger.Error("alert cycle failed", "err", err)
		return nil, nil, err
	}

	msg := fmt.Sprintf("[alert_process] checked=%d sent=%d removed=%d failed=%d", report.Checked, report.Sent, report.Removed, report.Failed)
	return textResult(msg), report, nil
}
