package tools

import (
	"context"
	"testing"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

type spyTool struct {
	name  string
	specs []ParamSpec
	runs  int
}

func (s *spyTool) Name() string        { return s.name }
func (s *spyTool) Description() string { return "spy" }
func (s *spyTool) Params() []ParamSpec { return s.specs }
func (s *spyTool) Run(context.Context, map[string]interface{}) (*types.StandardResponse, error) {
	s.runs++
	return types.NewStandardResponse("", s.name, "ok"), nil
}

func TestInvokeUnknownTool(t *testing.T) {
	r := NewRegistry()
	spy := &spyTool{name: "known"}
	r.Register(spy)

	_, err := r.Invoke(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if kind := types.Classify(err).Kind; kind != types.KindValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", kind)
	}
	if spy.runs != 0 {
		t.Errorf("no handler may run for an unknown tool, got %d runs", spy.runs)
	}
}

func TestInvokeRejectsUnknownParameter(t *testing.T) {
	r := NewRegistry()
	spy := &spyTool{name: "t", specs: []ParamSpec{{Name: "job_id", Type: "string", Required: true}}}
	r.Register(spy)

	_, err := r.Invoke(context.Background(), "t", map[string]interface{}{
		"job_id": "j1",
		"jobid":  "typo",
	})
	if types.Classify(err).Kind != types.KindValidation {
		t.Errorf("expected VALIDATION_ERROR for unknown parameter, got %v", err)
	}
	if spy.runs != 0 {
		t.Error("handler must not run on validation failure")
	}
}

func TestInvokeMissingRequiredParameter(t *testing.T) {
	r := NewRegistry()
	spy := &spyTool{name: "t", specs: []ParamSpec{{Name: "job_id", Type: "string", Required: true}}}
	r.Register(spy)

	for _, args := range []map[string]interface{}{
		nil,
		{},
		{"job_id": nil},
		{"job_id": "   "},
	} {
		if _, err := r.Invoke(context.Background(), "t", args); types.Classify(err).Kind != types.KindValidation {
			t.Errorf("args %v: expected VALIDATION_ERROR, got %v", args, err)
		}
	}
}

func TestInvokeMistypedParameter(t *testing.T) {
	r := NewRegistry()
	spy := &spyTool{name: "t", specs: []ParamSpec{
		{Name: "job_id", Type: "string", Required: true},
		{Name: "metric_names", Type: "array", Required: false},
	}}
	r.Register(spy)

	cases := []map[string]interface{}{
		{"job_id": 42},
		{"job_id": "j1", "metric_names": "uptime"},
		{"job_id": "j1", "metric_names": []interface{}{"uptime", 7}},
	}
	for _, args := range cases {
		if _, err := r.Invoke(context.Background(), "t", args); types.Classify(err).Kind != types.KindValidation {
			t.Errorf("args %v: expected VALIDATION_ERROR, got %v", args, err)
		}
	}
}

func TestInvokeDispatches(t *testing.T) {
	r := NewRegistry()
	spy := &spyTool{name: "t", specs: []ParamSpec{
		{Name: "job_id", Type: "string", Required: true},
		{Name: "metric_names", Type: "array", Required: false},
	}}
	r.Register(spy)

	resp, err := r.Invoke(context.Background(), "t", map[string]interface{}{
		"job_id":       "j1",
		"metric_names": []interface{}{"uptime"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data != "ok" || spy.runs != 1 {
		t.Errorf("expected handler result passthrough, got %+v after %d runs", resp, spy.runs)
	}
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&spyTool{name: "b"})
	r.Register(&spyTool{name: "a"})
	names := r.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestInputSchema(t *testing.T) {
	spy := &spyTool{name: "t", specs: []ParamSpec{
		{Name: "job_id", Type: "string", Required: true, Description: "job id"},
		{Name: "metric_names", Type: "array", Required: false},
	}}
	schema := InputSchema(spy)
	if schema["type"] != "object" {
		t.Errorf("expected object schema, got %v", schema["type"])
	}
	required, _ := schema["required"].([]string)
	if len(required) != 1 || required[0] != "job_id" {
		t.Errorf("expected required [job_id], got %v", required)
	}
	props := schema["properties"].(map[string]interface{})
	arr := props["metric_names"].(map[string]interface{})
	if arr["items"] == nil {
		t.Error("expected items schema for array parameter")
	}
}
