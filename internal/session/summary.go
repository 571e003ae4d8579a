package session

import (
	"time"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

// idLayout is compact ISO 8601 basic format in UTC, which sorts by start time
const idLayout = "20060102T150405Z"

// ID derives the session identifier from its start time
func ID(start time.Time) string {
	return start.UTC().Format(idLayout)
}

// Summarize aggregates a snapshot of a finished session. Outages in the
// snapshot must already be closed.
func Summarize(start, end time.Time, snap models.Snapshot) models.SessionSummary {
	summary := models.SessionSummary{
		ID:                    ID(start),
		Start:                 start,
		End:                   end,
		DurationSeconds:       max(end.Sub(start).Seconds(), 0),
		InterruptionCount:     len(snap.Outages),
		InterruptionDurations: make([]float64, 0, len(snap.Outages)),
		TotalPings:            len(snap.Pings),
		Pings:                 snap.Pings,
		SpeedSamples:          snap.Speeds,
		Outages:               snap.Outages,
	}

	var sum, lo, hi float64
	var n int
	for _, p := range snap.Pings {
		if !p.Success {
			continue
		}
		summary.SuccessfulPings++
		if !p.LatencyMs.Valid {
			continue
		}
		v := p.LatencyMs.Float64
		if n == 0 || v < lo {
			lo = v
		}
		if n == 0 || v > hi {
			hi = v
		}
		sum += v
		n++
	}
	summary.FailedPings = summary.TotalPings - summary.SuccessfulPings

	if summary.TotalPings > 0 {
		summary.UptimeRatio = float64(summary.SuccessfulPings) / float64(summary.TotalPings)
	}
	if n > 0 {
		summary.AvgPingMs = null.FloatFrom(sum / float64(n))
		summary.MinPingMs = null.FloatFrom(lo)
		summary.MaxPingMs = null.FloatFrom(hi)
	}

	for _, o := range snap.Outages {
		if o.End.Valid {
			summary.InterruptionDurations = append(summary.InterruptionDurations, o.Duration().Seconds())
		}
	}

	return summary
}
