package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// BackpressureTool fetches the backpressure sample of one job vertex with
// a per-subtask breakdown and skew detection.
type BackpressureTool struct {
	BaseTool
}

func (t *BackpressureTool) Name() string { return "backpressure" }

func (t *BackpressureTool) Description() string {
	return "Get backpressure information for a specific job vertex, including per-subtask ratios"
}

func (t *BackpressureTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "job_id", Type: "string", Required: true, Description: "ID of the job"},
		{Name: "vertex_id", Type: "string", Required: true, Description: "ID of the vertex/operator"},
	}
}

func (t *BackpressureTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	jobID := StringArg(args, "job_id")
	vertexID := StringArg(args, "vertex_id")

	slog.Info("fetching backpressure", "jobId", jobID, "vertexId", vertexID)

	bp, err := client.Backpressure(ctx, jobID, vertexID)
	if err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.BackpressureReport(bp, jobID, vertexID)), nil
}
