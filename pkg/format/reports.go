package format

import (
	"strings"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
)

// ClusterInfo assembles the cluster_info result from the three sub-fetches.
func ClusterInfo(ov *flink.ClusterOverview, jobs *flink.JobsOverview, tms *flink.TaskManagerList) map[string]any {
	out := map[string]any{
		"taskmanagers": ov.TaskManagers,
		"slots": map[string]any{
			"total":       ov.SlotsTotal,
			"available":   ov.SlotsAvailable,
			"utilization": SlotUtilization(ov.SlotsTotal, ov.SlotsAvailable),
		},
		"jobs": map[string]any{
			"running":   ov.JobsRunning,
			"finished":  ov.JobsFinished,
			"cancelled": ov.JobsCancelled,
			"failed":    ov.JobsFailed,
		},
		"jobList":         Jobs(jobs),
		"taskManagerList": taskManagerSummaries(tms),
	}
	if ov.FlinkVersion != "" {
		out["flinkVersion"] = ov.FlinkVersion
	}
	return out
}

// Jobs flattens a job overview listing, preserving upstream order.
func Jobs(jobs *flink.JobsOverview) []map[string]any {
	out := make([]map[string]any, 0, len(jobs.Jobs))
	for _, j := range jobs.Jobs {
		out = append(out, map[string]any{
			"id":        j.ID,
			"name":      j.Name,
			"state":     j.State,
			"startTime": Timestamp(j.StartTime),
			"duration":  Duration(j.Duration),
		})
	}
	return out
}

// Job assembles the job_details result. cfg may be nil when the config
// sub-fetch failed; the configuration section degrades to a marker.
func Job(d *flink.JobDetails, cfg *flink.JobConfig) map[string]any {
	out := map[string]any{
		"id":        d.ID,
		"name":      d.Name,
		"state":     d.State,
		"stoppable": d.IsStoppable,
		"startTime": Timestamp(d.StartTime),
		"endTime":   Timestamp(d.EndTime),
		"duration":  Duration(d.Duration),
	}

	if cfg != nil {
		out["configuration"] = map[string]any{
			"executionMode":   orNotReported(cfg.ExecutionConfig.ExecutionMode),
			"restartStrategy": orNotReported(cfg.ExecutionConfig.RestartStrategy),
			"parallelism":     cfg.ExecutionConfig.JobParallelism,
			"objectReuse":     cfg.ExecutionConfig.ObjectReuseMode,
		}
	} else {
		out["configuration"] = NotReported
	}

	if len(d.Timestamps) > 0 {
		transitions := make(map[string]string, len(d.Timestamps))
		for state, ts := range d.Timestamps {
			if ts > 0 {
				transitions[state] = Timestamp(ts)
			}
		}
		out["stateTransitions"] = transitions
	}

	vertices := make([]map[string]any, 0, len(d.Vertices))
	for _, v := range d.Vertices {
		vertices = append(vertices, vertexReport(v))
	}
	out["vertices"] = vertices

	if len(d.StatusCounts) > 0 {
		out["taskStatusCounts"] = d.StatusCounts
	}
	if d.Plan != nil && len(d.Plan.Nodes) > 0 {
		out["plan"] = planReport(d.Plan)
	}
	out["insights"] = JobInsights(d)
	return out
}

func vertexReport(v flink.JobVertex) map[string]any {
	out := map[string]any{
		"id":          v.ID,
		"name":        v.Name,
		"status":      v.Status,
		"parallelism": v.Parallelism,
		"duration":    Duration(v.Duration),
		"read": map[string]any{
			"records": Count(v.Metrics.ReadRecords),
			"bytes":   Bytes(v.Metrics.ReadBytes),
		},
		"write": map[string]any{
			"records": Count(v.Metrics.WriteRecords),
			"bytes":   Bytes(v.Metrics.WriteBytes),
		},
		"throughput": Throughput(v.Metrics.WriteRecords, v.Duration),
	}
	if v.Metrics.AccumulatedBackpressure > 0 {
		out["backpressuredTime"] = Duration(v.Metrics.AccumulatedBackpressure)
	}
	if v.Metrics.AccumulatedIdle > 0 {
		out["idleTime"] = Duration(v.Metrics.AccumulatedIdle)
	}
	if len(v.Tasks) > 0 {
		out["tasks"] = v.Tasks
	}
	return out
}

func planReport(p *flink.JobPlan) map[string]any {
	nodes := make([]map[string]any, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		node := map[string]any{
			"id":          n.ID,
			"parallelism": n.Parallelism,
			"description": stripHTML(n.Description),
		}
		if len(n.Inputs) > 0 {
			inputs := make([]map[string]any, 0, len(n.Inputs))
			for _, in := range n.Inputs {
				inputs = append(inputs, map[string]any{
					"from":         in.ID,
					"shipStrategy": in.ShipStrategy,
					"exchange":     in.Exchange,
				})
			}
			node["inputs"] = inputs
		}
		nodes = append(nodes, node)
	}
	out := map[string]any{"nodes": nodes}
	if p.Type != "" {
		out["type"] = p.Type
	}
	return out
}

// Exceptions assembles the job_exceptions result.
func Exceptions(exc *flink.JobExceptions) map[string]any {
	out := map[string]any{
		"count":     len(exc.AllExceptions),
		"truncated": exc.Truncated,
	}
	if exc.RootException != "" {
		out["rootCause"] = exc.RootException
	} else {
		out["rootCause"] = NotReported
	}

	entries := make([]map[string]any, 0, len(exc.AllExceptions))
	for _, e := range exc.AllExceptions {
		entries = append(entries, map[string]any{
			"task":          e.Task,
			"location":      e.Location,
			"taskManagerId": e.TaskManagerID,
			"timestamp":     Timestamp(e.Timestamp),
			"stackTrace":    e.Exception,
		})
	}
	out["exceptions"] = entries

	if len(exc.History.Entries) > 0 {
		history := make([]map[string]any, 0, len(exc.History.Entries))
		for _, h := range exc.History.Entries {
			entry := map[string]any{
				"exception": h.ExceptionName,
				"timestamp": Timestamp(h.Timestamp),
			}
			if h.TaskName != "" {
				entry["task"] = h.TaskName
			}
			if len(h.Concurrent) > 0 {
				entry["concurrentFailures"] = len(h.Concurrent)
			}
			history = append(history, entry)
		}
		out["history"] = history
	}
	return out
}

// TaskManagers assembles the list_taskmanagers result with cluster-wide
// capacity derived fields.
func TaskManagers(tms *flink.TaskManagerList) map[string]any {
	totalSlots, freeSlots := 0, 0
	for _, tm := range tms.TaskManagers {
		totalSlots += tm.SlotsNumber
		freeSlots += tm.FreeSlots
	}
	return map[string]any{
		"count": len(tms.TaskManagers),
		"capacity": map[string]any{
			"totalSlots":  totalSlots,
			"freeSlots":   freeSlots,
			"usedSlots":   totalSlots - freeSlots,
			"utilization": SlotUtilization(totalSlots, freeSlots),
		},
		"taskmanagers": taskManagerSummaries(tms),
		"insights":     ClusterCapacityInsights(tms),
	}
}

func taskManagerSummaries(tms *flink.TaskManagerList) []map[string]any {
	out := make([]map[string]any, 0, len(tms.TaskManagers))
	for _, tm := range tms.TaskManagers {
		entry := map[string]any{
			"id":   tm.ID,
			"path": tm.Path,
			"slots": map[string]any{
				"total":       tm.SlotsNumber,
				"free":        tm.FreeSlots,
				"utilization": SlotUtilization(tm.SlotsNumber, tm.FreeSlots),
			},
		}
		if tm.Hardware != nil {
			entry["hardware"] = map[string]any{
				"cpuCores":          tm.Hardware.CPUCores,
				"physicalMemory":    Bytes(tm.Hardware.PhysicalMemory),
				"freeMemory":        Bytes(tm.Hardware.FreeMemory),
				"memoryUtilization": MemoryUtilization(tm.Hardware.PhysicalMemory, tm.Hardware.FreeMemory),
			}
		} else {
			entry["hardware"] = NotReported
		}
		out = append(out, entry)
	}
	return out
}

// TaskManager assembles the taskmanager_details result.
func TaskManager(tm *flink.TaskManagerDetails) map[string]any {
	out := map[string]any{
		"id":       tm.ID,
		"path":     tm.Path,
		"dataPort": tm.DataPort,
		"slots": map[string]any{
			"total":       tm.SlotsNumber,
			"free":        tm.FreeSlots,
			"utilization": SlotUtilization(tm.SlotsNumber, tm.FreeSlots),
		},
		"lastHeartbeat": Timestamp(tm.TimeSinceLastHeartbeat),
	}

	if len(tm.AllocatedSlots) > 0 {
		slots := make([]map[string]any, 0, len(tm.AllocatedSlots))
		for _, s := range tm.AllocatedSlots {
			slot := map[string]any{"jobId": s.JobID}
			if s.Resource != nil {
				slot["cpuCores"] = s.Resource.CPUCores
				// resource profile memory is reported in MB
				slot["taskHeap"] = Bytes(s.Resource.TaskHeapMemory << 20)
				slot["managedMemory"] = Bytes(s.Resource.ManagedMemory << 20)
			}
			slots = append(slots, slot)
		}
		out["allocatedSlots"] = slots
	}

	if tm.Hardware != nil {
		out["hardware"] = map[string]any{
			"cpuCores":          tm.Hardware.CPUCores,
			"physicalMemory":    Bytes(tm.Hardware.PhysicalMemory),
			"freeMemory":        Bytes(tm.Hardware.FreeMemory),
			"memoryUtilization": MemoryUtilization(tm.Hardware.PhysicalMemory, tm.Hardware.FreeMemory),
		}
	} else {
		out["hardware"] = NotReported
	}

	if tm.MemoryConfiguration != nil {
		mc := tm.MemoryConfiguration
		out["memoryConfiguration"] = map[string]any{
			"frameworkHeap":      Bytes(mc.FrameworkHeap),
			"taskHeap":           Bytes(mc.TaskHeap),
			"taskOffHeap":        Bytes(mc.TaskOffHeap),
			"networkMemory":      Bytes(mc.NetworkMemory),
			"managedMemory":      Bytes(mc.ManagedMemory),
			"jvmMetaspace":       Bytes(mc.JvmMetaspace),
			"jvmOverhead":        Bytes(mc.JvmOverhead),
			"totalFlinkMemory":   Bytes(mc.TotalFlinkMemory),
			"totalProcessMemory": Bytes(mc.TotalProcessMemory),
		}
	} else {
		out["memoryConfiguration"] = NotReported
	}

	if tm.Metrics != nil {
		m := tm.Metrics
		live := map[string]any{
			"heap": map[string]any{
				"used":      Bytes(m.HeapUsed),
				"committed": Bytes(m.HeapCommitted),
				"max":       Bytes(m.HeapMax),
			},
			"nonHeap": map[string]any{
				"used": Bytes(m.NonHeapUsed),
				"max":  Bytes(m.NonHeapMax),
			},
			"direct": map[string]any{
				"used":  Bytes(m.DirectUsed),
				"max":   Bytes(m.DirectMax),
				"count": Count(m.DirectCount),
			},
			"networkBuffers": map[string]any{
				"available": Count(m.MemorySegmentsAvailable),
				"total":     Count(m.MemorySegmentsTotal),
			},
		}
		if len(m.GarbageCollectors) > 0 {
			gcs := make([]map[string]any, 0, len(m.GarbageCollectors))
			for _, gc := range m.GarbageCollectors {
				gcs = append(gcs, map[string]any{
					"name":      gc.Name,
					"count":     gc.Count,
					"totalTime": Duration(gc.Time),
				})
			}
			live["garbageCollectors"] = gcs
		}
		out["liveMetrics"] = live
	} else {
		out["liveMetrics"] = NotReported
	}

	out["insights"] = TaskManagerInsights(tm)
	return out
}

// Metrics flattens a metric sample list, preserving upstream order. Samples
// without a value are surfaced with an explicit marker rather than dropped.
func Metrics(samples []flink.MetricValue) map[string]any {
	list := make([]map[string]any, 0, len(samples))
	for _, s := range samples {
		value := any(s.Value)
		if s.Value == "" {
			value = NotReported
		}
		list = append(list, map[string]any{"name": s.ID, "value": value})
	}
	return map[string]any{
		"count":   len(list),
		"metrics": list,
	}
}

// JobMetrics is Metrics plus checkpoint and stability fields derived from
// well-known job metric names when they are present.
func JobMetrics(samples []flink.MetricValue) map[string]any {
	out := Metrics(samples)

	byID := make(map[string]string, len(samples))
	for _, s := range samples {
		byID[s.ID] = s.Value
	}
	num := func(name string) (float64, bool) {
		v, ok := byID[name]
		if !ok {
			return 0, false
		}
		return ParseNumber(v)
	}

	completed, okCompleted := num("numberOfCompletedCheckpoints")
	failed, okFailed := num("numberOfFailedCheckpoints")
	checkpoints := map[string]any{"successRate": Unavailable}
	if okCompleted || okFailed {
		checkpoints["completed"] = int64(completed)
		checkpoints["failed"] = int64(failed)
		checkpoints["successRate"] = CheckpointSuccessRate(int64(completed), int64(failed))
	}
	if v, ok := num("lastCheckpointDuration"); ok {
		checkpoints["lastDuration"] = Duration(int64(v))
	}
	if v, ok := num("lastCheckpointSize"); ok {
		checkpoints["lastSize"] = BytesFloat(v)
	}
	out["checkpoints"] = checkpoints

	if v, ok := num("uptime"); ok {
		out["uptime"] = Duration(int64(v))
	}
	if v, ok := num("numRestarts"); ok {
		out["restarts"] = int64(v)
	}

	out["insights"] = CheckpointInsights(byID)
	return out
}

// BackpressureReport assembles the backpressure result.
func BackpressureReport(bp *flink.Backpressure, jobID, vertexID string) map[string]any {
	out := map[string]any{
		"jobId":    jobID,
		"vertexId": vertexID,
		"status":   orNotReported(bp.Status),
		"level":    strings.ToUpper(orNotReported(bp.Level)),
	}
	if bp.EndTimestamp > 0 {
		out["measuredAt"] = Timestamp(bp.EndTimestamp)
	}

	subtasks := make([]map[string]any, 0, len(bp.Subtasks))
	for _, s := range bp.Subtasks {
		subtasks = append(subtasks, map[string]any{
			"subtask":   s.Subtask,
			"level":     strings.ToUpper(s.Level),
			"ratio":     Percent(s.Ratio),
			"idleRatio": Percent(s.IdleRatio),
			"busyRatio": Percent(s.BusyRatio),
		})
	}
	out["subtasks"] = subtasks
	out["insights"] = BackpressureInsights(bp)
	return out
}

// Jars flattens the uploaded JAR listing.
func Jars(jars *flink.JarList) map[string]any {
	files := make([]map[string]any, 0, len(jars.Files))
	for _, f := range jars.Files {
		entry := map[string]any{
			"id":       f.ID,
			"name":     f.Name,
			"uploaded": Timestamp(f.Uploaded),
		}
		if len(f.Entries) > 0 {
			entry["entryClass"] = f.Entries[0].Name
		}
		files = append(files, entry)
	}
	return map[string]any{
		"count": len(files),
		"jars":  files,
	}
}

func orNotReported(s string) string {
	if s == "" {
		return NotReported
	}
	return s
}

// stripHTML drops the markup Flink embeds in plan descriptions.
func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}
