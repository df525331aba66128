package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// JobMetricsTool fetches job metrics, optionally filtered to a set of
// metric names. Without a filter the full available set is returned.
type JobMetricsTool struct {
	BaseTool
}

func (t *JobMetricsTool) Name() string { return "job_metrics" }

func (t *JobMetricsTool) Description() string {
	return "Fetch metrics for a Flink job, optionally filtered to specific metric names, with a checkpoint and stability summary"
}

func (t *JobMetricsTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "job_id", Type: "string", Required: true, Description: "ID of the job to inspect"},
		{Name: "metric_names", Type: "array", Required: false, Description: "Metric names to query (omit for the full set)"},
	}
}

func (t *JobMetricsTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	jobID := StringArg(args, "job_id")
	names := StringsArg(args, "metric_names")

	slog.Info("fetching job metrics", "jobId", jobID, "requested", len(names))

	values, err := client.JobMetrics(ctx, jobID, names)
	if err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.JobMetrics(values)), nil
}
