package store

import (
	"sync"

	"connectivity-monitor/internal/models"
)

// Recorder is an append-only, concurrency-safe collection of the samples and
// outages of one session. Nothing is ever removed.
type Recorder struct {
	mu      sync.Mutex
	pings   []models.PingSample
	speeds  []models.SpeedSample
	outages []models.OutageEvent
}

// New creates an empty Recorder
func New() *Recorder {
	return &Recorder{}
}

// RecordPing appends a reachability sample
func (r *Recorder) RecordPing(sample models.PingSample) {
	r.mu.Lock()
	r.pings = append(r.pings, sample)
	r.mu.Unlock()
}

// RecordSpeed appends a throughput sample
func (r *Recorder) RecordSpeed(sample models.SpeedSample) {
	r.mu.Lock()
	r.speeds = append(r.speeds, sample)
	r.mu.Unlock()
}

// RecordOutage appends a closed outage
func (r *Recorder) RecordOutage(outage models.OutageEvent) {
	r.mu.Lock()
	r.outages = append(r.outages, outage)
	r.mu.Unlock()
}

// Snapshot returns copies of everything recorded so far. Later appends never
// show up in a snapshot that was already returned.
func (r *Recorder) Snapshot() models.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return models.Snapshot{
		Pings:   copyOf(r.pings),
		Speeds:  copyOf(r.speeds),
		Outages: copyOf(r.outages),
	}
}

func copyOf[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
