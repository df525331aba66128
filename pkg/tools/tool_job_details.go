package tools

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// JobDetailsTool fetches comprehensive details of one job: configuration,
// vertices, execution plan, and derived performance insights. The config
// sub-fetch is non-critical; its failure degrades the configuration section
// rather than failing the call.
type JobDetailsTool struct {
	BaseTool
}

func (t *JobDetailsTool) Name() string { return "job_details" }

func (t *JobDetailsTool) Description() string {
	return "Get comprehensive details of a specific Flink job by job ID, including configuration, vertices, and execution plan"
}

func (t *JobDetailsTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "job_id", Type: "string", Required: true, Description: "ID of the job to inspect"},
	}
}

func (t *JobDetailsTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}
	jobID := StringArg(args, "job_id")

	var (
		details *flink.JobDetails
		cfg     *flink.JobConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = client.Job(gctx, jobID)
		return err
	})
	g.Go(func() error {
		c, err := client.JobConfig(gctx, jobID)
		if err != nil {
			slog.Warn("job config fetch failed, continuing without it", "jobId", jobID, "error", err)
			return nil
		}
		cfg = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.Job(details, cfg)), nil
}
