package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

// minPingWait is the shortest pause between pings, even after a slow probe
const minPingWait = 10 * time.Millisecond

// pingWorker pings the target at the configured interval, measured from the
// start of each probe
func (m *Monitor) pingWorker(ctx context.Context) {
	defer m.wg.Done()

	for ctx.Err() == nil {
		started := time.Now()
		m.performPing(ctx)

		wait := m.config.PingInterval - time.Since(started)
		if wait < minPingWait {
			wait = minPingWait
		}
		if !sleep(ctx, wait) {
			return
		}
	}
}

// performPing runs one probe and records its outcome. A probe in flight is
// allowed to finish when the session is cancelled.
func (m *Monitor) performPing(ctx context.Context) {
	sample := models.PingSample{
		Timestamp: m.now(),
		Target:    m.config.Target,
	}

	latency, err := m.probe(context.WithoutCancel(ctx))
	switch {
	case errors.Is(err, models.ErrTimeout):
		sample.TimedOut = true
		sample.Error = null.StringFrom("timeout")
	case err != nil:
		sample.Error = null.StringFrom(err.Error())
	case latency.Valid:
		sample.Success = true
		sample.LatencyMs = latency
	}

	if sample.Success {
		m.successPings.Add(1)
	} else {
		m.failedPings.Add(1)
	}
	m.tracker.Observe(sample.Success, sample.Timestamp)
	m.recorder.RecordPing(sample)
}

func (m *Monitor) probe(ctx context.Context) (latency null.Float, err error) {
	defer func() {
		if r := recover(); r != nil {
			latency, err = null.Float{}, fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return m.prober.Probe(ctx, m.config.Target, m.config.PingTimeout)
}

// speedWorker measures throughput once on start and then every speed interval
func (m *Monitor) speedWorker(ctx context.Context) {
	defer m.wg.Done()

	if m.config.SpeedURL == "" {
		<-ctx.Done()
		return
	}

	m.performSpeedTest(ctx)
	for sleep(ctx, m.config.SpeedInterval) {
		m.performSpeedTest(ctx)
	}
}

// performSpeedTest runs one transfer and records it. Failed transfers are
// recorded with zero throughput.
func (m *Monitor) performSpeedTest(ctx context.Context) {
	sample := models.SpeedSample{
		Timestamp: m.now(),
		Direction: models.Download,
	}

	n, elapsed, err := m.transfer(context.WithoutCancel(ctx))
	sample.Bytes = n
	sample.DurationSeconds = elapsed.Seconds()
	if err != nil {
		sample.Error = null.StringFrom(err.Error())
		log.Printf("Speed check failed: %v", err)
	} else {
		sample.ThroughputMbps = models.Throughput(n, elapsed)
	}

	m.recorder.RecordSpeed(sample)
}

func (m *Monitor) transfer(ctx context.Context) (n int64, elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, elapsed, err = 0, 0, fmt.Errorf("transfer panicked: %v", r)
		}
	}()
	return m.transferer.Transfer(ctx, m.config.SpeedURL, m.config.Budget(), m.config.SpeedTimeout)
}

// sleep waits for d and reports false if ctx was cancelled first
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
