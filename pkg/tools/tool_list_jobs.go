package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ListJobsTool lists all current and recent jobs with their states. A
// cluster with zero jobs yields an empty list, not an error.
type ListJobsTool struct {
	BaseTool
}

func (t *ListJobsTool) Name() string { return "list_jobs" }

func (t *ListJobsTool) Description() string {
	return "List all current and recent Flink jobs with their status"
}

func (t *ListJobsTool) Params() []ParamSpec { return nil }

func (t *ListJobsTool) Run(ctx context.Context, _ map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}

	jobs, err := client.Jobs(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("listed jobs", "count", len(jobs.Jobs))

	return t.Respond(t.Name(), map[string]any{
		"count": len(jobs.Jobs),
		"jobs":  format.Jobs(jobs),
	}), nil
}
