package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"connectivity-monitor/internal/models"
)

// FormatText renders the human-readable summary stored alongside each session
func FormatText(s models.SessionSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session %s\n", s.ID)
	fmt.Fprintf(&b, "Start: %s\n", s.Start.Format(time.RFC3339))
	fmt.Fprintf(&b, "End: %s\n", s.End.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %.2fs\n", s.DurationSeconds)
	fmt.Fprintf(&b, "Uptime: %.2f%% (%d/%d successful pings)\n", s.UptimeRatio*100, s.SuccessfulPings, s.TotalPings)
	fmt.Fprintf(&b, "Downtime events: %d (total %.2fs)\n", s.InterruptionCount, s.TotalDowntime())

	if s.AvgPingMs.Valid {
		fmt.Fprintf(&b, "Ping latency (ms): avg %.2f, min %.2f, max %.2f\n",
			s.AvgPingMs.Float64, s.MinPingMs.Float64, s.MaxPingMs.Float64)
	} else {
		fmt.Fprintln(&b, "Ping latency (ms): no successful pings")
	}

	fmt.Fprintf(&b, "Speed samples: %d", len(s.SpeedSamples))
	if avg, ok := averageThroughput(s.SpeedSamples); ok {
		fmt.Fprintf(&b, " (avg %.2f Mbps)", avg)
	}
	return b.String()
}

func averageThroughput(samples []models.SpeedSample) (float64, bool) {
	var sum float64
	var n int
	for _, s := range samples {
		if s.Error.Valid {
			continue
		}
		sum += s.ThroughputMbps
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func writeTextReport(filename string, s models.SessionSummary) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Network Connectivity Report\n")
	fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, FormatText(s))
	fmt.Fprintln(file, strings.Repeat("=", 60))

	fmt.Fprintln(file, "\nOUTAGE PERIODS")
	if len(s.Outages) == 0 {
		fmt.Fprintln(file, "No outages detected.")
	}
	for i, o := range s.Outages {
		fmt.Fprintf(file, "Outage #%d\n", i+1)
		fmt.Fprintf(file, "  Start: %s\n", o.Start.Format("2006-01-02 15:04:05"))
		if o.End.Valid {
			fmt.Fprintf(file, "  End: %s\n", o.End.Time.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(file, "  Duration: %s\n", o.Duration().Round(time.Millisecond))
		}
		fmt.Fprintf(file, "  Failed Checks: %d\n\n", o.FailureCount)
	}

	failedSpeeds := 0
	for _, sp := range s.SpeedSamples {
		if sp.Error.Valid {
			failedSpeeds++
		}
	}
	if failedSpeeds > 0 {
		fmt.Fprintf(file, "Failed speed checks: %d of %d\n", failedSpeeds, len(s.SpeedSamples))
	}

	fmt.Fprintln(file, strings.Repeat("=", 60))
	fmt.Fprintln(file, "\nThis report documents network connectivity issues.")
	fmt.Fprintln(file, "Charts and detailed data are available in the accompanying files.")
	return nil
}
