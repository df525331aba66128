package tools

import (
	"context"
	"log/slog"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ListJarsTool lists all uploaded JARs. Upload itself is out of scope;
// this server is read-only against the cluster.
type ListJarsTool struct {
	BaseTool
}

func (t *ListJarsTool) Name() string { return "list_jars" }

func (t *ListJarsTool) Description() string {
	return "List all uploaded JAR files in the Flink cluster"
}

func (t *ListJarsTool) Params() []ParamSpec { return nil }

func (t *ListJarsTool) Run(ctx context.Context, _ map[string]interface{}) (*types.StandardResponse, error) {
	client, err := t.Client()
	if err != nil {
		return nil, err
	}

	jars, err := client.Jars(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("listed jars", "count", len(jars.Files))

	return t.Respond(t.Name(), format.Jars(jars)), nil
}
