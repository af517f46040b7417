package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := envOr("MCP_URL", "http://localhost:8080")
	if !strings.HasSuffix(endpoint, "/mcp/stream") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/mcp/stream"
	}

	apiKey := envOr("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY or GEMINI_API_KEY environment variable must be set")
	}
	model := envOr("GOOGLE_MODEL", "gemini-2.5-flash")
	sheetsID := envOr("GOOGLE_SHEETS_ID", os.Getenv("SHEETS_ID"))

	agent, err := NewAgent(ctx, endpoint, apiKey, model, sheetsID)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}
	defer func() { _ = agent.Close() }()

	fmt.Printf("Connected to %s with %d tools\n", endpoint, len(agent.tools))

	if len(os.Args) > 1 {
		answer, err := agent.RunQuery(ctx, strings.Join(os.Args[1:], " "))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Println(answer)
		return
	}

	fmt.Println("Type 'quit' or 'exit' to end the session.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "quit", "exit", "q":
			return
		}

		answer, err := agent.RunQuery(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("An error occurred: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
