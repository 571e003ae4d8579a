package monitor

import (
	"log"
	"time"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

type trackerState int

const (
	stateHealthy trackerState = iota
	stateFailing
	stateOutage
)

// OutageRecorder receives outages once they are closed
type OutageRecorder interface {
	RecordOutage(outage models.OutageEvent)
}

// OutageTracker turns a stream of probe outcomes into outages. An outage is
// opened once threshold consecutive failures are seen and starts at the first
// failure of the streak. It is only handed to the recorder when it closes.
//
// The tracker is owned by the ping worker and is not safe for concurrent use.
type OutageTracker struct {
	threshold   int
	failures    int
	streakStart time.Time
	current     *models.OutageEvent
	sink        OutageRecorder
}

// NewOutageTracker creates a tracker; thresholds below 1 are treated as 1
func NewOutageTracker(threshold int, sink OutageRecorder) *OutageTracker {
	if threshold < 1 {
		threshold = 1
	}
	return &OutageTracker{threshold: threshold, sink: sink}
}

// Observe feeds the outcome of one probe taken at at
func (t *OutageTracker) Observe(success bool, at time.Time) {
	if success {
		if t.current != nil {
			t.close(at)
		}
		t.failures = 0
		t.streakStart = time.Time{}
		return
	}

	t.failures++
	if t.failures == 1 {
		t.streakStart = at
	}

	switch {
	case t.current != nil:
		t.current.FailureCount = t.failures
	case t.failures >= t.threshold:
		t.current = &models.OutageEvent{
			Start:        t.streakStart,
			FailureCount: t.failures,
		}
		log.Printf("Outage detected: %d consecutive failures since %s",
			t.failures, t.streakStart.Format(time.RFC3339))
	}
}

// Close ends an open outage at at, as when the session stops mid-outage
func (t *OutageTracker) Close(at time.Time) {
	if t.current != nil {
		t.close(at)
	}
	t.failures = 0
	t.streakStart = time.Time{}
}

func (t *OutageTracker) close(at time.Time) {
	outage := *t.current
	outage.End = null.TimeFrom(at)
	t.current = nil
	t.sink.RecordOutage(outage)
	log.Printf("Outage ended after %s (%d failed checks)", outage.Duration(), outage.FailureCount)
}

func (t *OutageTracker) state() trackerState {
	switch {
	case t.current != nil:
		return stateOutage
	case t.failures > 0:
		return stateFailing
	default:
		return stateHealthy
	}
}
