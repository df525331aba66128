package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ListTaskManagersTool lists all registered task managers with slot and
// hardware resource information plus cluster capacity insights.
type ListTaskManagersTool struct {
	BaseTool
}

func (t *ListTaskManagersTool) Name() string { return "list_taskmanagers" }

func (t *ListTaskManagersTool) Description() string {
	return "List all registered TaskManagers in the Flink cluster with resource information"
}

func (t *ListTaskManagersTool) Params() []ParamSpec { return nil }

func (t *ListTaskManagersTool) Run(ctx context.Context, _ map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}

	tms, err := client.TaskManagers(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("listed taskmanagers", "count", len(tms.TaskManagers))

	return t.Respond(t.Name(), format.TaskManagers(tms)), nil
}
