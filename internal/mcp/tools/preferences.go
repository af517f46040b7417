package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// PreferenceSaveParams defines the arguments for the preference_save tool
type PreferenceSaveParams struct {
	JobTitle   string `json:"job_title" jsonschema:"Job title or keywords"`
	Experience string `json:"experience,omitempty" jsonschema:"Free-form experience level"`
	Location   string `json:"location,omitempty" jsonschema:"Preferred location"`
	RemoteOnly bool   `json:"remote_only,omitempty" jsonschema:"Restrict to remote postings"`
}

// PreferenceGetParams defines the arguments for the preference_get tool
type PreferenceGetParams struct {
	PreferenceID string `json:"preference_id" jsonschema:"Preference identifier"`
}

type preferenceTool struct {
	svc    PreferenceService
	logger *logging.Logger
}

// WithPreferences registers the preference_save and preference_get tools
func WithPreferences(svc PreferenceService, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := preferenceTool{svc: svc, logger: toolLogger(logger, "preferences")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "preference_save",
			Description: "Store a job search preference and return its id",
		}, handler.save)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "preference_get",
			Description: "Load a stored job search preference",
		}, handler.get)
	}
}

func (t preferenceTool) save(ctx context.Context, _ *sdkmcp.CallToolRequest, params PreferenceSaveParams) (*sdkmcp.CallToolResult, any, error) {

	p, err := t.svc.Save(ctx, domain.Preference{
		JobTitle:   params.JobTitle,
		Experience: params.Experience,
		Location:   params.Location,
		RemoteOnly: params.RemoteOnly,
	})
	if err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[preference_save] saved preference %s for %q", p.ID, p.JobTitle)
	return textResult(msg), p, nil
}

func (t preferenceTool) get(ctx context.Context, _ *sdkmcp.CallToolRequest, params PreferenceGetParams) (*sdkmcp.CallToolResult, any, error) {
	id, err := parseID("preference_id", params.PreferenceID)
	if err != nil {
		return nil, nil, err
	}

	p, err := t.svc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("[preference_get] %s: %q location=%q remote_only=%t", p.ID, p.JobTitle, p.Location, p.RemoteOnly)
	return textResult(msg), p, nil
}
