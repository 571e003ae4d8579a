package monitor

import (
	"context"
	"fmt"
	"log"

	"connectivity-monitor/internal/session"
)

// Start begins the monitoring session. Calling it while running is a no-op;
// a stopped monitor cannot be restarted.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.Load() {
	case stateRunning:
		return nil
	case stateStopped:
		return ErrSessionClosed
	}

	if m.startedAt.Load() == nil {
		started := m.now()
		m.startedAt.Store(&started)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.wg.Add(2)
	go m.pingWorker(ctx)
	go m.speedWorker(ctx)

	m.state.Store(stateRunning)
	log.Printf("Monitor started. Pinging %s every %v", m.config.Target, m.config.PingInterval)
	if m.config.SpeedURL != "" {
		log.Printf("Measuring download speed from %s every %v", m.config.SpeedURL, m.config.SpeedInterval)
	}
	return nil
}

// Stop ends the session: it waits for both workers, closes any open outage,
// summarizes the recorded samples and persists the summary. Only the first
// Stop after Start does any of this; other calls are no-ops.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Load() != stateRunning {
		return nil
	}

	log.Println("Stopping monitor...")
	m.cancel()
	m.wg.Wait()
	m.state.Store(stateStopped)

	end := m.now()
	m.tracker.Close(end)

	summary := session.Summarize(*m.startedAt.Load(), end, m.recorder.Snapshot())
	m.summary = &summary

	path, err := m.persister.Persist(summary)
	if err != nil {
		return fmt.Errorf("persist session %s: %w", summary.ID, err)
	}
	m.sessionPath = path

	log.Printf("Monitor stopped. Session %s saved to %s", summary.ID, path)
	return nil
}
