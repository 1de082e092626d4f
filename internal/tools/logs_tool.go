package tools

import (
	"context"
	"fmt"
	"strings"
)

// RecentLogsTool returns the newest entries from the fleet event log
type RecentLogsTool struct{}

func (r *RecentLogsTool) Name() string {
	return "get_recent_logs"
}

func (r *RecentLogsTool) Description() string {
	return "Retrieve the most recent fleet log entries, newest last"
}

func (r *RecentLogsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"limit": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of log entries to return (default: 5)",
		},
	}
}

func (r *RecentLogsTool) RequiredParameters() []string {
	return []string{}
}

type recentLogsParams struct {
	Limit int `json:"limit"`
}

func (r *RecentLogsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	params := recentLogsParams{Limit: 5}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	if params.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}

	entries := recentLogs
	if params.Limit < len(entries) {
		entries = entries[len(entries)-params.Limit:]
	}

	if len(entries) == 0 {
		return "No log entries available", nil
	}

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString("• " + entry + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
