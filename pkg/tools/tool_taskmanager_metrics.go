package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// TaskManagerMetricsTool fetches task manager metrics, optionally filtered
// to a set of metric names.
type TaskManagerMetricsTool struct {
	BaseTool
}

func (t *TaskManagerMetricsTool) Name() string { return "taskmanager_metrics" }

func (t *TaskManagerMetricsTool) Description() string {
	return "Fetch metrics for a TaskManager, optionally filtered to specific metric names (e.g. Status.JVM.CPU.Load)"
}

func (t *TaskManagerMetricsTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "taskmanager_id", Type: "string", Required: true, Description: "TaskManager ID"},
		{Name: "metric_names", Type: "array", Required: false, Description: "Metric names to query (omit for the full set)"},
	}
}

func (t *TaskManagerMetricsTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	tmID := StringArg(args, "taskmanager_id")
	names := StringsArg(args, "metric_names")

	slog.Info("fetching taskmanager metrics", "taskmanagerId", tmID, "requested", len(names))

	values, err := client.TaskManagerMetrics(ctx, tmID, names)
	if err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.Metrics(values)), nil
}
