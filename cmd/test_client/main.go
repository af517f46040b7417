package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	title := flag.String("title", "golang developer", "job title to search for")
	location := flag.String("location", "Bangalore", "preferred location")
	contact := flag.String("contact", "", "email address for a test alert; skipped when empty")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobflow-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testFetchJobs(ctx, session, *title, *location)

	prefID := testPreferenceSave(ctx, session, *title, *location)
	if prefID == "" {
		return
	}

	testJobSearch(ctx, session, prefID)
	testJobFacets(ctx, session, prefID)

	if *contact != "" {
		testAlertSave(ctx, session, prefID, *contact)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testFetchJobs(ctx context.Context, session *mcp.ClientSession, title, location string) {
	fmt.Println("\nTEST: fetch_jobs")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "fetch_jobs",
		Arguments: map[string]any{
			"title":    title,
			"location": location,
			"max":      10,
		},
	})
	if err != nil {
		log.Printf("fetch_jobs failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("fetch_jobs passed")
}

func testPreferenceSave(ctx context.Context, session *mcp.ClientSession, title, location string) string {
	fmt.Println("\nTEST: preference_save")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "preference_save",
		Arguments: map[string]any{
			"job_title": title,
			"location":  location,
		},
	})
	if err != nil {
		log.Printf("preference_save failed: %v", err)
		return ""
	}
	printResult(result)

	var pref struct {
		ID string `json:"id"`
	}
	if err := decodeStructured(result, &pref); err != nil || pref.ID == "" {
		log.Printf("preference_save returned no id: %v", err)
		return ""
	}

	fmt.Println("preference_save passed")
	return pref.ID
}

func testJobSearch(ctx context.Context, session *mcp.ClientSession, prefID string) {
	fmt.Println("\nTEST: job_search")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "job_search",
		Arguments: map[string]any{
			"preference_id":      prefID,
			"size":               5,
			"posted_within_days": 7,
			"sort_by":            "recency",
		},
	})
	if err != nil {
		log.Printf("job_search failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_search passed")
}

func testJobFacets(ctx context.Context, session *mcp.ClientSession, prefID string) {
	fmt.Println("\nTEST: job_facets")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "job_facets",
		Arguments: map[string]any{"preference_id": prefID},
	})
	if err != nil {
		log.Printf("job_facets failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("job_facets passed")
}

func testAlertSave(ctx context.Context, session *mcp.ClientSession, prefID, contact string) {
	fmt.Println("\nTEST: alert_save")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "alert_save",
		Arguments: map[string]any{
			"preference_id": prefID,
			"contact":       contact,
			"channel":       "EMAIL",
			"frequency":     "DAILY",
		},
	})
	if err != nil {
		log.Printf("alert_save failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("alert_save passed")
}

func decodeStructured(res *mcp.CallToolResult, v any) error {
	if res.StructuredContent == nil {
		return fmt.Errorf("no structured content")
	}
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func printResult(res *mcp.CallToolResult) {
	if res.IsError {
		fmt.Println("tool reported an error:")
	}
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
