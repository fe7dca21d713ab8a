package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jralston/devlog/internal/journal"
)

// QueryInput is the input for the query tool.
type QueryInput struct {
	Last   int    `json:"last,omitempty"   jsonschema:"retrieve last N entries"`
	Since  string `json:"since,omitempty"  jsonschema:"retrieve entries since duration (24h, 7d) or ISO date"`
	Until  string `json:"until,omitempty"  jsonschema:"retrieve entries until duration (24h, 7d) or ISO date"`
	Status string `json:"status,omitempty" jsonschema:"filter by status: done or in-progress"`
	Task   string `json:"task,omitempty"   jsonschema:"filter by task id prefix, e.g. 2. matches 2.1 and 2.3"`
	Text   string `json:"text,omitempty"   jsonschema:"case-insensitive substring over title and summary"`
}

// QueryOutput is the output for the query tool.
type QueryOutput struct {
	Count   int              `json:"count"   jsonschema:"number of entries returned"`
	Entries []*journal.Entry `json:"entries" jsonschema:"matching journal entries"`
}

func handleQuery(file *journal.File) mcp.ToolHandlerFor[QueryInput, QueryOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
		filter, err := buildQueryFilter(input)
		if err != nil {
			return nil, QueryOutput{}, err
		}

		doc, err := file.Load()
		if err != nil {
			return nil, QueryOutput{}, err
		}

		entries := filter.Apply(doc.Entries)
		return nil, QueryOutput{Count: len(entries), Entries: entries}, nil
	}
}

// buildQueryFilter converts tool input into a journal filter.
func buildQueryFilter(input QueryInput) (journal.Filter, error) {
	filter := journal.Filter{
		TaskPrefix: input.Task,
		Text:       input.Text,
		Last:       input.Last,
	}

	switch input.Status {
	case "":
	case string(journal.StatusDone):
		filter.Status = journal.StatusDone
	case string(journal.StatusInProgress):
		filter.Status = journal.StatusInProgress
	default:
		return journal.Filter{}, fmt.Errorf("invalid status %q: expected done or in-progress", input.Status)
	}

	if input.Since != "" {
		parsed, err := parseDurationOrDate(input.Since)
		if err != nil {
			return journal.Filter{}, fmt.Errorf("invalid since value: %w", err)
		}
		filter.Since = parsed
	}
	if input.Until != "" {
		parsed, err := parseDurationOrDate(input.Until)
		if err != nil {
			return journal.Filter{}, fmt.Errorf("invalid until value: %w", err)
		}
		filter.Until = parsed
	}

	return filter, nil
}

// parseDurationOrDate parses a duration string (24h, 7d) or ISO date into a time.
func parseDurationOrDate(value string) (time.Time, error) {
	if duration, err := time.ParseDuration(value); err == nil {
		return time.Now().UTC().Add(-duration), nil
	}

	// Day-based duration (e.g. "7d")
	if len(value) > 1 && value[len(value)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(value, "%dd", &days); err == nil && days > 0 {
			return time.Now().UTC().AddDate(0, 0, -days), nil
		}
	}

	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("cannot parse %q as duration or date", value)
}
