package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// TaskManagerDetailsTool fetches comprehensive details about one task
// manager: slots, hardware, memory layout, and live JVM metrics.
type TaskManagerDetailsTool struct {
	BaseTool
}

func (t *TaskManagerDetailsTool) Name() string { return "taskmanager_details" }

func (t *TaskManagerDetailsTool) Description() string {
	return "Get comprehensive details about a specific TaskManager including allocated slots and live JVM metrics"
}

func (t *TaskManagerDetailsTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "taskmanager_id", Type: "string", Required: true, Description: "TaskManager ID (e.g. 172.20.0.3:38373-66c42c)"},
	}
}

func (t *TaskManagerDetailsTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	tmID := StringArg(args, "taskmanager_id")

	slog.Info("fetching taskmanager details", "taskmanagerId", tmID)

	tm, err := client.TaskManager(ctx, tmID)
	if err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.TaskManager(tm)), nil
}
