package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type WatchEventsCommand struct{}

func (c *WatchEventsCommand) Name() string {
	return "watch-events"
}

func (c *WatchEventsCommand) Description() string {
	return "Stream every session event from the admin SSE firehose"
}

func (c *WatchEventsCommand) Run(args []string) error {
	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%s is required", envAPIKey)
	}

	url := strings.TrimRight(apiURL(args), "/") + "/api/v1/admin/events"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout: the stream stays open until interrupted
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	PrintHeader("Watching events (Ctrl+C to stop)")
	return printEvents(bufio.NewScanner(resp.Body))
}

// printEvents prints the data line of every SSE frame
func printEvents(scanner *bufio.Scanner) error {
	var eventType string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			PrintInfo("%s %s", eventType, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case line == "":
			eventType = ""
		}
	}
	return scanner.Err()
}
