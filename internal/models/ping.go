package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// PingSample represents a single reachability probe
type PingSample struct {
	Timestamp time.Time   `json:"timestamp"`
	Target    string      `json:"target"`
	LatencyMs null.Float  `json:"latency_ms"` // milliseconds, null on failure
	Success   bool        `json:"success"`
	TimedOut  bool        `json:"timeout"`
	Error     null.String `json:"error"`
}

// Direction of a throughput measurement
type Direction string

const (
	Download Direction = "download"
	Upload   Direction = "upload"
)

// SpeedSample represents a single throughput probe.
// A sample carrying an error always reports zero throughput.
type SpeedSample struct {
	Timestamp       time.Time   `json:"timestamp"`
	Direction       Direction   `json:"direction"`
	Bytes           int64       `json:"size_bytes"`
	DurationSeconds float64     `json:"duration_seconds"`
	ThroughputMbps  float64     `json:"throughput_mbps"`
	Error           null.String `json:"error"`
}

// OutageEvent is a run of consecutive failed pings at or above the failure threshold
type OutageEvent struct {
	Start        time.Time `json:"start"`
	End          null.Time `json:"end"`
	FailureCount int       `json:"failure_count"`
}

// Duration returns the length of a closed outage, zero while it is open
func (o OutageEvent) Duration() time.Duration {
	if !o.End.Valid {
		return 0
	}
	return o.End.Time.Sub(o.Start)
}

// minElapsed keeps throughput finite for transfers that finished instantly
const minElapsed = time.Microsecond

// Throughput converts bytes moved over elapsed into megabits per second
func Throughput(bytes int64, elapsed time.Duration) float64 {
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	return float64(bytes*8) / (elapsed.Seconds() * 1_000_000)
}
