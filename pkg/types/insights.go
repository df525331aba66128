package types

// Severity constants for performance insights.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
	SeverityOk       = "ok"
)

// Category constants for performance insights.
const (
	CategoryBackpressure = "backpressure"
	CategoryCheckpoint   = "checkpoint"
	CategoryResources    = "resources"
	CategoryStability    = "stability"
	CategoryRuntime      = "runtime"
)

// Insight is a single derived observation about cluster or job health,
// computed from upstream data without any extra fetches.
type Insight struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail,omitempty"`
}
