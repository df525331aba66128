package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/format"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// fakeFlink serves a minimal but consistent Flink REST surface.
func fakeFlink(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/overview", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"taskmanagers":1,"slots-total":4,"slots-available":1,"jobs-running":1,"jobs-finished":2}`))
	})
	mux.HandleFunc("/jobs/overview", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobs":[{"jid":"j1","name":"wordcount","state":"RUNNING","start-time":1700000000000,"duration":90000}]}`))
	})
	mux.HandleFunc("/jobs/j1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jid":"j1","name":"wordcount","state":"RUNNING","start-time":1700000000000,"duration":90000,
			"vertices":[{"id":"v1","name":"source","status":"RUNNING","parallelism":2,"duration":90000,
			"tasks":{"RUNNING":2},"metrics":{"read-records":0,"write-records":1000,"write-bytes":4096}}],
			"status-counts":{"RUNNING":2}}`))
	})
	mux.HandleFunc("/jobs/j1/config", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jid":"j1","name":"wordcount","execution-config":{"execution-mode":"PIPELINED","restart-strategy":"Cluster level default","job-parallelism":2}}`))
	})
	mux.HandleFunc("/jobs/j1/metrics", func(w http.ResponseWriter, r *http.Request) {
		if get := r.URL.Query().Get("get"); get != "" {
			if get == "Status.JVM.CPU.Load" {
				_, _ = w.Write([]byte(`[{"id":"Status.JVM.CPU.Load","value":"0.25"}]`))
				return
			}
			_, _ = w.Write([]byte(`[{"id":"uptime","value":"90000"},{"id":"numRestarts","value":"0"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"uptime"},{"id":"numRestarts"}]`))
	})
	mux.HandleFunc("/jobs/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":["Job missing not found"]}`))
	})
	mux.HandleFunc("/taskmanagers", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"taskmanagers":[{"id":"tm-1","path":"akka://flink","slotsNumber":4,"freeSlots":1,
			"hardware":{"cpuCores":4,"physicalMemory":8589934592,"freeMemory":4294967296}}]}`))
	})
	mux.HandleFunc("/taskmanagers/tm-1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"tm-1","path":"akka://flink","dataPort":42961,"slotsNumber":4,"freeSlots":1,
			"metrics":{"heapUsed":100,"heapMax":1000}}`))
	})
	mux.HandleFunc("/jobs/j1/vertices/v1/backpressure", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","backpressureLevel":"low","end-timestamp":1700000060000,
			"subtasks":[{"subtask":0,"backpressureLevel":"low","ratio":0.12,"idleRatio":0.5,"busyRatio":0.38}]}`))
	})
	mux.HandleFunc("/jars", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"files":[{"id":"abc_job.jar","name":"job.jar","uploaded":1700000000000}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func connectedRegistry(t *testing.T) (*Registry, *flink.Manager) {
	t.Helper()
	srv := fakeFlink(t)
	conn := flink.NewManager(nil)
	if res := conn.Initialize(context.Background(), srv.URL); !res.Connected {
		t.Fatalf("init failed: %+v", res)
	}

	base := BaseTool{Conn: conn}
	r := NewRegistry()
	r.Register(&InitializeConnectionTool{BaseTool: base})
	r.Register(&ConnectionStatusTool{BaseTool: base})
	r.Register(&ClusterInfoTool{BaseTool: base})
	r.Register(&ListJobsTool{BaseTool: base})
	r.Register(&JobDetailsTool{BaseTool: base})
	r.Register(&JobExceptionsTool{BaseTool: base})
	r.Register(&JobMetricsTool{BaseTool: base})
	r.Register(&ListTaskManagersTool{BaseTool: base})
	r.Register(&TaskManagerDetailsTool{BaseTool: base})
	r.Register(&TaskManagerMetricsTool{BaseTool: base})
	r.Register(&BackpressureTool{BaseTool: base})
	r.Register(&ListJarsTool{BaseTool: base})
	return r, conn
}

func TestClusterInfoComposesSubFetches(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "cluster_info", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	slots := data["slots"].(map[string]any)
	if slots["utilization"] != "75.0%" {
		t.Errorf("expected 75.0%% slot utilization, got %v", slots["utilization"])
	}
	if len(data["jobList"].([]map[string]any)) != 1 {
		t.Errorf("expected one job in listing")
	}
}

func TestClusterInfoUnreachable(t *testing.T) {
	srv := fakeFlink(t)
	conn := flink.NewManager(nil)
	if res := conn.Initialize(context.Background(), srv.URL); !res.Connected {
		t.Fatal("init failed")
	}
	srv.Close() // cluster goes away after a successful probe

	r := NewRegistry()
	r.Register(&ClusterInfoTool{BaseTool: BaseTool{Conn: conn}})

	_, err := r.Invoke(context.Background(), "cluster_info", nil)
	e := types.Classify(err)
	if e.Kind != types.KindUnreachable {
		t.Fatalf("expected UNREACHABLE, got %v", err)
	}
	if e.Message == "" {
		t.Error("expected a connection diagnostic")
	}
}

func TestListJobsEmptyCluster(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/overview", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"taskmanagers":0,"slots-total":0,"slots-available":0}`))
	})
	mux.HandleFunc("/jobs/overview", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobs":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := flink.NewManager(nil)
	conn.Initialize(context.Background(), srv.URL)
	r := NewRegistry()
	r.Register(&ListJobsTool{BaseTool: BaseTool{Conn: conn}})

	resp, err := r.Invoke(context.Background(), "list_jobs", nil)
	if err != nil {
		t.Fatalf("zero jobs must not be an error: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["count"] != 0 {
		t.Errorf("expected count 0, got %v", data["count"])
	}
}

func TestJobDetailsNotFound(t *testing.T) {
	r, _ := connectedRegistry(t)
	_, err := r.Invoke(context.Background(), "job_details", map[string]interface{}{"job_id": "missing"})
	e := types.Classify(err)
	if e.Kind != types.KindUpstream {
		t.Fatalf("expected UPSTREAM_ERROR for 404, got %v", err)
	}
	if e.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", e.Status)
	}
}

func TestJobDetailsMergesConfig(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "job_details", map[string]interface{}{"job_id": "j1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	cfg, ok := data["configuration"].(map[string]any)
	if !ok {
		t.Fatalf("expected configuration section, got %v", data["configuration"])
	}
	if cfg["executionMode"] != "PIPELINED" {
		t.Errorf("expected PIPELINED execution mode, got %v", cfg["executionMode"])
	}
}

func TestJobMetricsFilterHonored(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "job_metrics", map[string]interface{}{
		"job_id":       "j1",
		"metric_names": []interface{}{"Status.JVM.CPU.Load"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	metrics := data["metrics"].([]map[string]any)
	if len(metrics) != 1 || metrics[0]["name"] != "Status.JVM.CPU.Load" {
		t.Errorf("expected exactly the requested subset, got %v", metrics)
	}
}

func TestJobMetricsFullSetWhenOmitted(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "job_metrics", map[string]interface{}{"job_id": "j1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["count"] != 2 {
		t.Errorf("expected the full available set, got %v", data["count"])
	}
}

func TestNotConnectedFailsFast(t *testing.T) {
	r := NewRegistry()
	conn := flink.NewManager(nil)
	r.Register(&ListJobsTool{BaseTool: BaseTool{Conn: conn}})

	_, err := r.Invoke(context.Background(), "list_jobs", nil)
	if types.Classify(err).Kind != types.KindNotConnected {
		t.Errorf("expected NOT_CONNECTED, got %v", err)
	}
}

func TestConnectionStatusReflectsInitialize(t *testing.T) {
	srv := fakeFlink(t)
	conn := flink.NewManager(nil)
	base := BaseTool{Conn: conn}
	r := NewRegistry()
	r.Register(&InitializeConnectionTool{BaseTool: base})
	r.Register(&ConnectionStatusTool{BaseTool: base})

	resp, err := r.Invoke(context.Background(), "initialize_connection", map[string]interface{}{"url": srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if init := resp.Data.(flink.InitResult); !init.Connected {
		t.Fatalf("expected connected init result: %+v", init)
	}

	resp, err = r.Invoke(context.Background(), "connection_status", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := resp.Data.(flink.ConnectionState)
	if !state.Connected || state.URL != srv.URL {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestInitializeFailureReported(t *testing.T) {
	srv := fakeFlink(t)
	srv.Close()

	conn := flink.NewManager(nil)
	base := BaseTool{Conn: conn}
	r := NewRegistry()
	r.Register(&InitializeConnectionTool{BaseTool: base})
	r.Register(&ConnectionStatusTool{BaseTool: base})

	resp, err := r.Invoke(context.Background(), "initialize_connection", map[string]interface{}{"url": srv.URL})
	if err != nil {
		t.Fatalf("initialize must report failure, not error: %v", err)
	}
	if init := resp.Data.(flink.InitResult); init.Connected {
		t.Fatal("expected failed init result")
	}

	resp, _ = r.Invoke(context.Background(), "connection_status", nil)
	state := resp.Data.(flink.ConnectionState)
	if state.Connected || state.LastError == "" {
		t.Errorf("expected disconnected state with lastError, got %+v", state)
	}
}

func TestConcurrentListTaskManagers(t *testing.T) {
	r, conn := connectedRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Invoke(context.Background(), "list_taskmanagers", nil); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	state := conn.Snapshot()
	if !state.Connected || state.URL == "" {
		t.Errorf("connection state corrupted by concurrent reads: %+v", state)
	}
}

func TestBackpressureReport(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "backpressure", map[string]interface{}{
		"job_id":    "j1",
		"vertex_id": "v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["level"] != "LOW" {
		t.Errorf("expected LOW level, got %v", data["level"])
	}
	if len(data["subtasks"].([]map[string]any)) != 1 {
		t.Error("expected one subtask entry")
	}
}

func TestListJars(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "list_jars", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["count"] != 1 {
		t.Errorf("expected one jar, got %v", data["count"])
	}
}

func TestTaskManagersUtilization(t *testing.T) {
	r, _ := connectedRegistry(t)
	resp, err := r.Invoke(context.Background(), "list_taskmanagers", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := resp.Data.(map[string]any)
	capacity := data["capacity"].(map[string]any)
	if capacity["utilization"] != format.SlotUtilization(4, 1) {
		t.Errorf("unexpected utilization: %v", capacity["utilization"])
	}
}
