package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// InitializeConnectionTool establishes the cluster connection by probing
// the Flink REST endpoint. Probe failures are reported as a status result,
// never as a tool error: the server keeps running and allows re-init.
type InitializeConnectionTool struct {
	BaseTool
}

func (t *InitializeConnectionTool) Name() string { return "initialize_connection" }

func (t *InitializeConnectionTool) Description() string {
	return "Initialize the connection to the Apache Flink REST API. Must be called before using any cluster tools."
}

func (t *InitializeConnectionTool) Params() []ParamSpec {
	return []ParamSpec{
		{Name: "url", Type: "string", Required: true, Description: "Base URL of the Flink REST API (e.g. http://localhost:8081)"},
	}
}

func (t *InitializeConnectionTool) Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error) {
	url := StringArg(args, "url")
	slog.Info("initializing flink connection", "url", url)

	res := t.Conn.Initialize(ctx, url)
	return t.Respond(t.Name(), res), nil
}
