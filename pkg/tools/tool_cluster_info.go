package tools

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ClusterInfoTool fetches the cluster overview together with the job and
// task manager listings. The three sub-fetches run concurrently but form
// one atomic unit: any failure fails the whole invocation.
type ClusterInfoTool struct {
	BaseTool
}

func (t *ClusterInfoTool) Name() string { return "cluster_info" }

func (t *ClusterInfoTool) Description() string {
	return "Fetch an overview of the Flink cluster: jobs, slots, task managers"
}

func (t *ClusterInfoTool) Params() []ParamSpec { return nil }

func (t *ClusterInfoTool) Run(ctx context.Context, _ map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}

	slog.Info("fetching cluster info")

	var (
		ov   *flink.ClusterOverview
		jobs *flink.JobsOverview
		tms  *flink.TaskManagerList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ov, err = client.Overview(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = client.Jobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tms, err = client.TaskManagers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return t.Respond(t.Name(), format.ClusterInfo(ov, jobs, tms)), nil
}
