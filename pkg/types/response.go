package types

import "time"

// StandardResponse is the envelope for all MCP tool responses.
type StandardResponse struct {
	Endpoint  string      `json:"endpoint,omitempty"`
	Timestamp string      `json:"timestamp"`
	Tool      string      `json:"tool"`
	Data      interface{} `json:"data"`
}

// NewStandardResponse creates a new StandardResponse for the given tool.
func NewStandardResponse(endpoint, tool string, data interface{}) *StandardResponse {
	return &StandardResponse{
		Endpoint:  endpoint,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Tool:      tool,
		Data:      data,
	}
}
