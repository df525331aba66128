package tools

import (
	"context"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// ParamSpec declares one tool parameter. The ordered spec list is the
// source of truth for validation and for the advertised input schema.
type ParamSpec struct {
	Name        string
	Type        string // "string" or "array" (of strings)
	Required    bool
	Description string
}

// Tool is the interface all MCP tools must implement. Run is only invoked
// after the registry has validated the arguments against Params.
type Tool interface {
	Name() string
	Description() string
	Params() []ParamSpec
	Run(ctx context.Context, args map[string]interface{}) (*types.StandardResponse, error)
}

// InputSchema derives the JSON schema advertised for a tool from its
// parameter specs.
func InputSchema(t Tool) map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}
	for _, p := range t.Params() {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Type == "array" {
			prop["items"] = map[string]interface{}{"type": "string"}
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// BaseTool provides the shared connection handle for all tools.
type BaseTool struct {
	Conn *flink.Manager
}

// Client returns the live cluster client or a NOT_CONNECTED error.
func (b *BaseTool) Client() (*flink.Client, error) {
	return b.Conn.Client()
}

// Respond wraps tool data in the standard response envelope.
func (b *BaseTool) Respond(tool string, data interface{}) *types.StandardResponse {
	return types.NewStandardResponse(b.Conn.Snapshot().URL, tool, data)
}

// StringArg extracts a string argument; validation has already guaranteed
// the type, so a missing optional argument yields "".
func StringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

// StringsArg extracts an optional array-of-strings argument.
func StringsArg(args map[string]interface{}, name string) []string {
	switch v := args[name].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
