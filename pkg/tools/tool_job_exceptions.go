package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// JobExceptionsTool fetches the exception report of one job: root cause,
// task-level exceptions, and retained failure history.
type JobExceptionsTool struct {
	BaseTool
}

func (t *JobExceptionsTool) Name() string { return "job_exceptions" }

func (t *JobExceptionsTool) Description() string {
	return "Fetch exceptions that occurred in the specified Flink job"
}

func (t *JobExceptionsTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "job_id", Type: "string", Required: true, Description: "ID of the job to inspect"},
	}
}

func (t *JobExceptionsTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	jobID := StringArg(args, "job_id")

	exc, err := client.JobExceptions(ctx, jobID)
	if err != nil {
		return nil, err
	}

	slog.Info("fetched job exceptions", "jobId", jobID, "count", len(exc.AllExceptions))

	return t.Respond(t.Name(), format.Exceptions(exc)), nil
}
