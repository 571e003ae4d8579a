package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// Snapshot is a point-in-time copy of everything recorded during a session
type Snapshot struct {
	Pings   []PingSample
	Speeds  []SpeedSample
	Outages []OutageEvent
}

// SessionSummary represents the aggregated result of one monitoring session
type SessionSummary struct {
	ID                    string        `json:"id"`
	Start                 time.Time     `json:"start"`
	End                   time.Time     `json:"end"`
	DurationSeconds       float64       `json:"duration_seconds"`
	UptimeRatio           float64       `json:"uptime_ratio"`
	InterruptionCount     int           `json:"interruption_count"`
	InterruptionDurations []float64     `json:"interruption_durations"`
	AvgPingMs             null.Float    `json:"average_ping_ms"`
	MinPingMs             null.Float    `json:"min_ping_ms"`
	MaxPingMs             null.Float    `json:"max_ping_ms"`
	TotalPings            int           `json:"total_pings"`
	SuccessfulPings       int           `json:"successful_pings"`
	FailedPings           int           `json:"failed_pings"`
	Pings                 []PingSample  `json:"pings"`
	SpeedSamples          []SpeedSample `json:"speed_samples"`
	Outages               []OutageEvent `json:"outages"`
}

// TotalDowntime sums every recorded interruption
func (s SessionSummary) TotalDowntime() float64 {
	var total float64
	for _, d := range s.InterruptionDurations {
		total += d
	}
	return total
}

// SessionFile is the document written for each session
type SessionFile struct {
	Summary     SessionSummary `json:"summary"`
	SummaryText string         `json:"summary_text"`
}

// IndexEntry is the lightweight digest of a session kept in the index file
type IndexEntry struct {
	File            string    `json:"file"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationSeconds float64   `json:"duration_seconds"`
	UptimeRatio     float64   `json:"uptime_ratio"`
}

// Status is an informational view of a running monitor. Counters may be
// slightly stale relative to the probe loop.
type Status struct {
	Target       string    `json:"target"`
	Running      bool      `json:"running"`
	StartedAt    time.Time `json:"started_at,omitempty"`
	TotalPings   int64     `json:"total_pings"`
	SuccessPings int64     `json:"successful_pings"`
	FailedPings  int64     `json:"failed_pings"`
}

// ArchivedSession is a session row in the archive
type ArchivedSession struct {
	ID                string     `json:"id"`
	Start             time.Time  `json:"start"`
	End               time.Time  `json:"end"`
	DurationSeconds   float64    `json:"duration_seconds"`
	UptimeRatio       float64    `json:"uptime_ratio"`
	InterruptionCount int        `json:"interruption_count"`
	TotalPings        int        `json:"total_pings"`
	AvgPingMs         null.Float `json:"average_ping_ms"`
}
