package tools

import (
	"context"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ConnectionStatusTool reports the current connection state without side
// effects.
type ConnectionStatusTool struct {
	BaseTool
}

func (t *ConnectionStatusTool) Name() string { return "connection_status" }

func (t *ConnectionStatusTool) Description() string {
	return "Check whether the Flink connection is initialized and report the current endpoint"
}

func (t *ConnectionStatusTool) Params() []ParamSpec { return nil }

func (t *ConnectionStatusTool) Run(_ context.Context, _ map[string]interface{}) (*types.StandardResponse, error) {
	return t.Respond(t.Name(), t.Conn.Snapshot()), nil
}
