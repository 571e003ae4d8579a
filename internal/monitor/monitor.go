package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"connectivity-monitor/internal/config"
	"connectivity-monitor/internal/models"
	"connectivity-monitor/internal/store"
)

// ErrSessionClosed is returned when Start is called on a stopped monitor
var ErrSessionClosed = errors.New("monitoring session already stopped")

const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

// Monitor runs one monitoring session: a ping worker and a speed worker that
// share a Recorder, and a summary that is persisted once when the session stops.
type Monitor struct {
	config     config.Config
	prober     models.Prober
	transferer models.Transferer
	persister  models.Persister
	recorder   *store.Recorder
	tracker    *OutageTracker
	now        func() time.Time

	successPings atomic.Int64
	failedPings  atomic.Int64
	state        atomic.Int32
	startedAt    atomic.Pointer[time.Time]

	// mu serializes Start and Stop
	mu          sync.Mutex
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	summary     *models.SessionSummary
	sessionPath string
}

// New creates a new Monitor. transferer may be nil when no speed URL is configured.
func New(cfg config.Config, prober models.Prober, transferer models.Transferer, persister models.Persister) (*Monitor, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if prober == nil {
		return nil, errors.New("a prober is required")
	}
	if transferer == nil && cfg.SpeedURL != "" {
		return nil, errors.New("a transferer is required when a speed URL is configured")
	}
	if persister == nil {
		return nil, errors.New("a persister is required")
	}

	recorder := store.New()
	return &Monitor{
		config:     cfg,
		prober:     prober,
		transferer: transferer,
		persister:  persister,
		recorder:   recorder,
		tracker:    NewOutageTracker(cfg.FailureThreshold, recorder),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// Status returns the target, lifecycle state and ping counters. It never
// waits on the workers; counters may lag the latest probe slightly.
func (m *Monitor) Status() models.Status {
	success := m.successPings.Load()
	failed := m.failedPings.Load()
	status := models.Status{
		Target:       m.config.Target,
		Running:      m.state.Load() == stateRunning,
		TotalPings:   success + failed,
		SuccessPings: success,
		FailedPings:  failed,
	}
	if started := m.startedAt.Load(); started != nil {
		status.StartedAt = *started
	}
	return status
}

// Snapshot returns a copy of the samples and closed outages recorded so far
func (m *Monitor) Snapshot() models.Snapshot {
	return m.recorder.Snapshot()
}

// Summary returns the session summary once the monitor has stopped
func (m *Monitor) Summary() (models.SessionSummary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.summary == nil {
		return models.SessionSummary{}, false
	}
	return *m.summary, true
}

// SessionPath returns where the session file was written, empty before Stop
func (m *Monitor) SessionPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionPath
}
