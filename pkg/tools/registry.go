package tools

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// Registry is a thread-safe registry of MCP tools and the single dispatch
// entry point for invoking them.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
	slog.Info("tool registered", "tool", tool.Name())
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// List returns all registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered tools, ordered by name.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Invoke validates the arguments against the tool's parameter schema and
// dispatches. Unknown tools, unknown arguments, and missing or mis-typed
// required arguments fail with VALIDATION_ERROR before any handler runs.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (*types.StandardResponse, error) {
	tool := r.Get(name)
	if tool == nil {
		return nil, types.Validationf("unknown tool: %s", name)
	}
	if err := validateArgs(tool.Params(), args); err != nil {
		return nil, err
	}
	return tool.Run(ctx, args)
}

// validateArgs rejects unknown parameters rather than silently ignoring
// them, so caller mistakes are not masked.
func validateArgs(specs []ParamSpec, args map[string]interface{}) error {
	known := make(map[string]ParamSpec, len(specs))
	for _, s := range specs {
		known[s.Name] = s
	}
	for name := range args {
		if _, ok := known[name]; !ok {
			return types.Validationf("unknown parameter %q", name)
		}
	}

	for _, s := range specs {
		v, present := args[s.Name]
		if !present || v == nil {
			if s.Required {
				return types.Validationf("missing required parameter %q", s.Name)
			}
			continue
		}
		switch s.Type {
		case "string":
			str, ok := v.(string)
			if !ok {
				return types.Validationf("parameter %q must be a string", s.Name)
			}
			if s.Required && strings.TrimSpace(str) == "" {
				return types.Validationf("parameter %q must not be empty", s.Name)
			}
		case "array":
			switch arr := v.(type) {
			case []string:
			case []interface{}:
				for _, item := range arr {
					if _, ok := item.(string); !ok {
						return types.Validationf("parameter %q must be an array of strings", s.Name)
					}
				}
			default:
				return types.Validationf("parameter %q must be an array of strings", s.Name)
			}
		}
	}
	return nil
}
