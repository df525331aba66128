// Package format normalizes raw Flink REST payloads into result objects:
// derived percentages, human-readable durations and sizes, flattened metric
// lists. Everything here is a pure function over decoded payloads; no I/O.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Markers for fields the upstream did not report or that cannot be derived.
const (
	NotReported = "not reported"
	Unavailable = "unavailable"
)

// Duration renders a millisecond duration as a human-readable elapsed time.
func Duration(ms int64) string {
	if ms <= 0 {
		return NotReported
	}
	seconds := float64(ms) / 1000
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.2fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2fm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.2fh", seconds/3600)
	default:
		return fmt.Sprintf("%.2fd", seconds/86400)
	}
}

// Timestamp renders an epoch-millisecond timestamp in UTC.
func Timestamp(ms int64) string {
	if ms <= 0 {
		return NotReported
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// Elapsed renders the elapsed time between two epoch-millisecond instants.
// An endMs of -1 (still running) reports the duration as not reported.
func Elapsed(startMs, endMs int64) string {
	if startMs <= 0 || endMs <= startMs {
		return NotReported
	}
	return Duration(endMs - startMs)
}

// Bytes renders a byte count with a binary unit suffix.
func Bytes(v int64) string {
	return BytesFloat(float64(v))
}

// BytesFloat is Bytes for values that arrive as floating point.
func BytesFloat(v float64) string {
	if v <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}

// Count renders an integer with thousands separators.
func Count(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// Percent renders a 0..1 ratio as a percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// ParseNumber parses a metric value string into a float. The metrics API
// reports all values as strings with no fixed schema.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "NaN" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SlotUtilization derives 1 - free/total as a percentage, or Unavailable
// when the cluster reports no slots at all.
func SlotUtilization(total, free int) string {
	if total <= 0 {
		return Unavailable
	}
	return Percent(1 - float64(free)/float64(total))
}

// CheckpointSuccessRate derives completed/(completed+failed), or Unavailable
// when no checkpoint totals are present.
func CheckpointSuccessRate(completed, failed int64) string {
	total := completed + failed
	if total <= 0 {
		return Unavailable
	}
	return Percent(float64(completed) / float64(total))
}

// MemoryUtilization derives used physical memory as a percentage.
func MemoryUtilization(physical, free int64) string {
	if physical <= 0 {
		return Unavailable
	}
	return Percent(float64(physical-free) / float64(physical))
}

// Throughput derives records per second over a millisecond duration.
func Throughput(records, durationMs int64) string {
	if durationMs <= 0 || records <= 0 {
		return Unavailable
	}
	return fmt.Sprintf("%.2f records/sec", float64(records)/float64(durationMs)*1000)
}
