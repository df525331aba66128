package format

import (
	"testing"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

func TestClusterInfoDerivesUtilization(t *testing.T) {
	ov := &flink.ClusterOverview{TaskManagers: 2, SlotsTotal: 8, SlotsAvailable: 2, JobsRunning: 1}
	report := ClusterInfo(ov, &flink.JobsOverview{}, &flink.TaskManagerList{})

	slots := report["slots"].(map[string]any)
	if slots["utilization"] != "75.0%" {
		t.Errorf("expected 75.0%% utilization, got %v", slots["utilization"])
	}
	if jobs := report["jobList"].([]map[string]any); len(jobs) != 0 {
		t.Errorf("expected empty job list, got %d entries", len(jobs))
	}
}

func TestJobsPreservesUpstreamOrder(t *testing.T) {
	jobs := &flink.JobsOverview{Jobs: []flink.JobSummary{
		{ID: "b", Name: "second", State: "RUNNING"},
		{ID: "a", Name: "first", State: "FINISHED"},
	}}
	out := Jobs(jobs)
	if len(out) != 2 || out[0]["id"] != "b" || out[1]["id"] != "a" {
		t.Errorf("order not preserved: %v", out)
	}
}

func TestJobReportMissingConfig(t *testing.T) {
	d := &flink.JobDetails{ID: "j1", Name: "etl", State: "RUNNING", StartTime: 1700000000000, Duration: 60000}
	report := Job(d, nil)
	if report["configuration"] != NotReported {
		t.Errorf("expected %q configuration marker, got %v", NotReported, report["configuration"])
	}
	if report["duration"] != "1.00m" {
		t.Errorf("expected formatted duration, got %v", report["duration"])
	}
}

func TestJobReportInsights(t *testing.T) {
	d := &flink.JobDetails{
		ID: "j1", State: "RUNNING",
		Vertices: []flink.JobVertex{
			{
				ID: "v1", Name: "map", Duration: 100_000,
				Tasks:   map[string]int{"FAILED": 2},
				Metrics: flink.VertexMetrics{AccumulatedBackpressure: 5000},
			},
		},
	}
	report := Job(d, &flink.JobConfig{})
	insights := report["insights"].([]types.Insight)
	var sawBackpressure, sawFailed bool
	for _, in := range insights {
		if in.Category == types.CategoryBackpressure {
			sawBackpressure = true
		}
		if in.Category == types.CategoryStability && in.Severity == types.SeverityCritical {
			sawFailed = true
		}
	}
	if !sawBackpressure || !sawFailed {
		t.Errorf("expected backpressure and failed-task insights, got %+v", insights)
	}
}

func TestTaskManagersCapacity(t *testing.T) {
	tms := &flink.TaskManagerList{TaskManagers: []flink.TaskManagerSummary{
		{ID: "tm1", SlotsNumber: 4, FreeSlots: 0},
		{ID: "tm2", SlotsNumber: 4, FreeSlots: 2},
	}}
	report := TaskManagers(tms)
	capacity := report["capacity"].(map[string]any)
	if capacity["totalSlots"] != 8 || capacity["freeSlots"] != 2 {
		t.Errorf("unexpected capacity: %v", capacity)
	}
	if capacity["utilization"] != "75.0%" {
		t.Errorf("expected 75.0%%, got %v", capacity["utilization"])
	}
}

func TestTaskManagerReportMissingSections(t *testing.T) {
	tm := &flink.TaskManagerDetails{
		TaskManagerSummary: flink.TaskManagerSummary{ID: "tm1", SlotsNumber: 2, FreeSlots: 1},
	}
	report := TaskManager(tm)
	for _, key := range []string{"hardware", "memoryConfiguration", "liveMetrics"} {
		if report[key] != NotReported {
			t.Errorf("expected %q marker for %s, got %v", NotReported, key, report[key])
		}
	}
}

func TestMetricsFlattening(t *testing.T) {
	samples := []flink.MetricValue{
		{ID: "Status.JVM.CPU.Load", Value: "0.42"},
		{ID: "Status.JVM.Threads.Count"},
	}
	report := Metrics(samples)
	list := report["metrics"].([]map[string]any)
	if len(list) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(list))
	}
	if list[0]["name"] != "Status.JVM.CPU.Load" || list[0]["value"] != "0.42" {
		t.Errorf("unexpected first metric: %v", list[0])
	}
	if list[1]["value"] != NotReported {
		t.Errorf("expected %q for missing value, got %v", NotReported, list[1]["value"])
	}
}

func TestJobMetricsDerivedCheckpoints(t *testing.T) {
	samples := []flink.MetricValue{
		{ID: "numberOfCompletedCheckpoints", Value: "18"},
		{ID: "numberOfFailedCheckpoints", Value: "2"},
		{ID: "uptime", Value: "3600000"},
	}
	report := JobMetrics(samples)
	checkpoints := report["checkpoints"].(map[string]any)
	if checkpoints["successRate"] != "90.0%" {
		t.Errorf("expected 90.0%% success rate, got %v", checkpoints["successRate"])
	}
	if report["uptime"] != "1.00h" {
		t.Errorf("expected formatted uptime, got %v", report["uptime"])
	}
}

func TestJobMetricsNoCheckpoints(t *testing.T) {
	report := JobMetrics([]flink.MetricValue{{ID: "uptime", Value: "1000"}})
	checkpoints := report["checkpoints"].(map[string]any)
	if checkpoints["successRate"] != Unavailable {
		t.Errorf("expected %q, got %v", Unavailable, checkpoints["successRate"])
	}
}

func TestBackpressureSkewInsight(t *testing.T) {
	bp := &flink.Backpressure{
		Status: "ok", Level: "high",
		Subtasks: []flink.SubtaskBackpressure{
			{Subtask: 0, Level: "high", Ratio: 0.9},
			{Subtask: 1, Level: "ok", Ratio: 0.1},
		},
	}
	report := BackpressureReport(bp, "j1", "v1")
	if report["level"] != "HIGH" {
		t.Errorf("expected HIGH level, got %v", report["level"])
	}
	insights := report["insights"].([]types.Insight)
	var sawSkew bool
	for _, in := range insights {
		if in.Summary == "potential data skew across subtasks" {
			sawSkew = true
		}
	}
	if !sawSkew {
		t.Errorf("expected skew insight, got %+v", insights)
	}
}

func TestExceptionsEmpty(t *testing.T) {
	report := Exceptions(&flink.JobExceptions{})
	if report["count"] != 0 {
		t.Errorf("expected count 0, got %v", report["count"])
	}
	if report["rootCause"] != NotReported {
		t.Errorf("expected %q root cause, got %v", NotReported, report["rootCause"])
	}
}
