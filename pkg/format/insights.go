package format

import (
	"fmt"

	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/flink"
	"github.com/Ashfaqbs/apache-flink-mcp-server/pkg/types"
)

// Heuristic thresholds for derived insights.
const (
	highIdleFraction         = 0.5
	checkpointFailureRatio   = 0.3
	minCheckpointsForRatio   = 5
	restartWarningCount      = 3
	slowCheckpointDurationMs = 60_000
)

// JobInsights derives performance observations from job details: vertex
// backpressure, high idle time, failed tasks.
func JobInsights(d *flink.JobDetails) []types.Insight {
	insights := []types.Insight{}

	for _, v := range d.Vertices {
		if v.Metrics.AccumulatedBackpressure > 0 {
			insights = append(insights, types.Insight{
				Severity: types.SeverityWarning,
				Category: types.CategoryBackpressure,
				Summary:  fmt.Sprintf("backpressure detected in %q", v.Name),
				Detail:   "accumulated backpressured time " + Duration(v.Metrics.AccumulatedBackpressure),
			})
		}
		if v.Duration > 0 && v.Metrics.AccumulatedIdle > 0 {
			idle := float64(v.Metrics.AccumulatedIdle) / float64(v.Duration)
			if idle > highIdleFraction {
				insights = append(insights, types.Insight{
					Severity: types.SeverityInfo,
					Category: types.CategoryRuntime,
					Summary:  fmt.Sprintf("high idle time in %q", v.Name),
					Detail:   Percent(idle) + " of the vertex lifetime spent idle",
				})
			}
		}
		if failed := v.Tasks["FAILED"]; failed > 0 {
			insights = append(insights, types.Insight{
				Severity: types.SeverityCritical,
				Category: types.CategoryStability,
				Summary:  fmt.Sprintf("failed tasks in %q", v.Name),
				Detail:   fmt.Sprintf("%d task(s) in FAILED state", failed),
			})
		}
	}

	if len(insights) == 0 {
		insights = append(insights, types.Insight{
			Severity: types.SeverityOk,
			Category: types.CategoryRuntime,
			Summary:  "no performance issues detected",
		})
	}
	return insights
}

// ClusterCapacityInsights derives slot capacity observations from the task
// manager listing.
func ClusterCapacityInsights(tms *flink.TaskManagerList) []types.Insight {
	totalSlots, freeSlots := 0, 0
	for _, tm := range tms.TaskManagers {
		totalSlots += tm.SlotsNumber
		freeSlots += tm.FreeSlots
	}

	insights := []types.Insight{}
	switch {
	case totalSlots == 0:
		insights = append(insights, types.Insight{
			Severity: types.SeverityCritical,
			Category: types.CategoryResources,
			Summary:  "no task manager slots registered",
		})
	case freeSlots == 0:
		insights = append(insights, types.Insight{
			Severity: types.SeverityCritical,
			Category: types.CategoryResources,
			Summary:  "no free slots available",
			Detail:   "new jobs cannot be scheduled; add task managers or increase slots per task manager",
		})
	case float64(freeSlots) < float64(totalSlots)*0.2:
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryResources,
			Summary:  "low slot availability",
			Detail:   fmt.Sprintf("%d of %d slots free; cluster is near capacity", freeSlots, totalSlots),
		})
	default:
		insights = append(insights, types.Insight{
			Severity: types.SeverityOk,
			Category: types.CategoryResources,
			Summary:  "sufficient slot capacity available",
		})
	}

	for _, tm := range tms.TaskManagers {
		if tm.Hardware == nil {
			continue
		}
		cores := int(tm.Hardware.CPUCores)
		if cores > 0 && tm.SlotsNumber > cores {
			insights = append(insights, types.Insight{
				Severity: types.SeverityWarning,
				Category: types.CategoryResources,
				Summary:  fmt.Sprintf("slot oversubscription on %s", tm.ID),
				Detail:   fmt.Sprintf("%d slots configured for %d CPU cores", tm.SlotsNumber, cores),
			})
		}
	}
	return insights
}

// TaskManagerInsights derives observations for a single task manager.
func TaskManagerInsights(tm *flink.TaskManagerDetails) []types.Insight {
	insights := []types.Insight{}

	if tm.SlotsNumber > 0 && tm.FreeSlots == 0 {
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryResources,
			Summary:  "no free slots on this task manager",
		})
	}
	if tm.Metrics != nil && tm.Metrics.HeapMax > 0 {
		heapUse := float64(tm.Metrics.HeapUsed) / float64(tm.Metrics.HeapMax)
		if heapUse > 0.9 {
			insights = append(insights, types.Insight{
				Severity: types.SeverityCritical,
				Category: types.CategoryResources,
				Summary:  "heap usage above 90%",
				Detail:   Bytes(tm.Metrics.HeapUsed) + " of " + Bytes(tm.Metrics.HeapMax) + " in use",
			})
		}
	}
	if len(insights) == 0 {
		insights = append(insights, types.Insight{
			Severity: types.SeverityOk,
			Category: types.CategoryResources,
			Summary:  "task manager healthy",
		})
	}
	return insights
}

// CheckpointInsights derives stability observations from job metric values
// keyed by metric name.
func CheckpointInsights(byID map[string]string) []types.Insight {
	num := func(name string) (float64, bool) {
		v, ok := byID[name]
		if !ok {
			return 0, false
		}
		return ParseNumber(v)
	}

	insights := []types.Insight{}

	uptime, _ := num("uptime")
	completed, _ := num("numberOfCompletedCheckpoints")
	total, _ := num("totalNumberOfCheckpoints")
	failed, _ := num("numberOfFailedCheckpoints")
	restarts, _ := num("numRestarts")
	lastDuration, _ := num("lastCheckpointDuration")

	if uptime > 10*60*1000 && completed == 0 {
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryCheckpoint,
			Summary:  "high uptime with zero completed checkpoints",
			Detail:   "verify checkpointing is enabled and the state backend is reachable",
		})
	}
	if total >= minCheckpointsForRatio && total > 0 && failed/total > checkpointFailureRatio {
		insights = append(insights, types.Insight{
			Severity: types.SeverityCritical,
			Category: types.CategoryCheckpoint,
			Summary:  "checkpoint failure ratio above 30%",
			Detail:   "investigate operator backpressure, sink I/O, or checkpoint timeout settings",
		})
	}
	if restarts >= restartWarningCount {
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryStability,
			Summary:  fmt.Sprintf("%d restarts observed", int(restarts)),
			Detail:   "review task manager and job manager logs for exceptions or OOMs",
		})
	}
	if lastDuration > slowCheckpointDurationMs {
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryCheckpoint,
			Summary:  "last checkpoint took longer than 60s",
			Detail:   "consider tuning the state backend or lowering concurrency on heavy operators",
		})
	}
	return insights
}

// BackpressureInsights derives observations from a backpressure sample,
// including data-skew detection across subtasks.
func BackpressureInsights(bp *flink.Backpressure) []types.Insight {
	insights := []types.Insight{}

	switch bp.Level {
	case "high":
		insights = append(insights, types.Insight{
			Severity: types.SeverityCritical,
			Category: types.CategoryBackpressure,
			Summary:  "severe backpressure; this operator is a bottleneck",
			Detail:   "increase parallelism, optimize the operator, or check downstream systems",
		})
	case "low":
		insights = append(insights, types.Insight{
			Severity: types.SeverityWarning,
			Category: types.CategoryBackpressure,
			Summary:  "minor backpressure detected",
			Detail:   "monitor whether the pressure is temporary or persistent",
		})
	case "ok":
		insights = append(insights, types.Insight{
			Severity: types.SeverityOk,
			Category: types.CategoryBackpressure,
			Summary:  "operator processing smoothly with no backpressure",
		})
	}

	if len(bp.Subtasks) > 1 {
		minRatio, maxRatio := bp.Subtasks[0].Ratio, bp.Subtasks[0].Ratio
		for _, s := range bp.Subtasks[1:] {
			if s.Ratio < minRatio {
				minRatio = s.Ratio
			}
			if s.Ratio > maxRatio {
				maxRatio = s.Ratio
			}
		}
		if maxRatio-minRatio > 0.3 {
			insights = append(insights, types.Insight{
				Severity: types.SeverityWarning,
				Category: types.CategoryBackpressure,
				Summary:  "potential data skew across subtasks",
				Detail:   "subtask backpressure ratios differ by more than 30 points; consider repartitioning",
			})
		}
	}
	return insights
}
