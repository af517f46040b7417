package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"
)

const (
	maxIterations   = 10
	toolCallTimeout = 60 * time.Second
)

const systemPromptTemplate = `You are a job search assistant backed by the jobflow server.

TOOLS:
- fetch_jobs: one-off search across every job source for a title, location and remote flag
- preference_save / preference_get: store or load a search profile; most tools take its preference_id
- job_search: filter, sort and page a preference's job pool (source, posted_within_days, company_contains, sort_by)
- job_facets: counts of a preference's jobs by source and by posting age
- alert_save / alert_list / alert_delete / alert_process: manage scheduled job alerts (EMAIL, WHATSAPP, SHEETS, QUEUE; DAILY, EVERY_3_DAYS, WEEKLY)
- sheets_export: write jobs to Google Sheets%s

GUIDELINES:
1. For a new search, save a preference first and reuse its preference_id for job_search, job_facets and alerts.
2. Use job_search with sort_by "recency" when the user wants the newest postings.
3. Only report data returned by tools. If a tool fails, explain the error and suggest a next step.`

// Agent relays a Gemini conversation to the jobflow MCP tools
type Agent struct {
	session *mcp.ClientSession
	gemini  *genai.Client
	model   *genai.GenerativeModel
	tools   []*mcp.Tool
}

// NewAgent connects to the MCP endpoint and prepares a Gemini model with its tools
func NewAgent(ctx context.Context, endpoint, apiKey, model, sheetsID string) (*Agent, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobflow-assistant",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server at %s: %w", endpoint, err)
	}

	toolsResp, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	gemini, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	sheetsInstruction := ""
	if sheetsID != "" {
		sheetsInstruction = fmt.Sprintf("\n\nFor sheets_export always use spreadsheet_id %q; do not ask the user for it.", sheetsID)
	}

	m := gemini.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(systemPromptTemplate, sheetsInstruction))},
	}
	m.Tools = buildGeminiTools(toolsResp.Tools)

	return &Agent{
		session: session,
		gemini:  gemini,
		model:   m,
		tools:   toolsResp.Tools,
	}, nil
}

// Close releases the Gemini client and the MCP session
func (a *Agent) Close() error {
	var errs []string
	if err := a.gemini.Close(); err != nil {
		errs = append(errs, "gemini: "+err.Error())
	}
	if err := a.session.Close(); err != nil {
		errs = append(errs, "mcp session: "+err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RunQuery answers one user request, calling tools until the model replies with text
func (a *Agent) RunQuery(ctx context.Context, query string) (string, error) {
	chat := a.model.StartChat()
	parts := []genai.Part{genai.Text(query)}

	for i := 0; i < maxIterations; i++ {
		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("gemini API error: %w", err)
		}

		var (
			text      strings.Builder
			responses []genai.Part
		)
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				switch p := part.(type) {
				case genai.FunctionCall:
					fmt.Printf("[tool] %s\n", p.Name)
					responses = append(responses, genai.FunctionResponse{
						Name:     p.Name,
						Response: a.callTool(ctx, p.Name, p.Args),
					})
				case genai.Text:
					text.WriteString(string(p))
				}
			}
		}

		if len(responses) > 0 {
			parts = responses
			continue
		}
		if text.Len() > 0 {
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("no answer after %d steps", maxIterations)
}

func (a *Agent) callTool(ctx context.Context, name string, args map[string]any) map[string]any {
	toolCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	defer cancel()

	result, err := a.session.CallTool(toolCtx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	var texts []string
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	out := map[string]any{"result": strings.Join(texts, "\n")}
	if result.IsError {
		out["error"] = out["result"]
	}
	if result.StructuredContent != nil {
		out["data"] = result.StructuredContent
	}
	return out
}

func buildGeminiTools(tools []*mcp.Tool) []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  convertSchema(tool.InputSchema),
		})
	}
	if len(declarations) == 0 {
		return nil
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}
