package tools

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %q is not a valid id", field, value)
	}
	return id, nil
}

// summarize renders one line per job for text clients
func summarize(header string, jobs []domain.JobView) string {
	var b strings.Builder
	b.WriteString(header)
	for i, j := range jobs {
		fmt.Fprintf(&b, "\n%d. %s", i+1, j.Title)
		if j.Company != "" {
			fmt.Fprintf(&b, " | %s", j.Company)
		}
		if j.Location != "" {
			fmt.Fprintf(&b, " | %s", j.Location)
		}
		fmt.Fprintf(&b, " [%s]", j.Source)
	}
	return b.String()
}
