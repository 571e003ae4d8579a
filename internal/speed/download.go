package speed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"connectivity-monitor/internal/models"
)

// chunkSize is the read size for time-boxed transfers
const chunkSize = 64 * 1024

// Downloader measures download throughput over HTTP
type Downloader struct {
	client *http.Client
}

// New creates a Downloader whose connection setup is bounded by timeout
func New(timeout time.Duration) *Downloader {
	dialer := &net.Dialer{Timeout: timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     true,
	}
	return &Downloader{client: &http.Client{Transport: transport}}
}

// Transfer downloads from endpoint until the budget is spent. It returns the
// bytes read and the time taken, measured from the request until the last read.
// A body read that stalls for longer than timeout aborts the transfer.
func (d *Downloader) Transfer(ctx context.Context, endpoint string, budget models.TransferBudget, timeout time.Duration) (int64, time.Duration, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}

	started := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, time.Since(started), fmt.Errorf("unexpected status %s", resp.Status)
	}

	body := newStallReader(resp.Body, timeout, cancel)
	defer body.stop()

	var n int64
	if budget.Duration > 0 {
		n, err = readFor(body, started, budget.Duration)
	} else {
		n, err = io.CopyN(io.Discard, body, budget.Bytes)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	elapsed := time.Since(started)
	if err != nil {
		if body.stalled() {
			err = errStalled
		}
		return n, elapsed, fmt.Errorf("read body: %w", err)
	}
	return n, elapsed, nil
}

// readFor reads body in chunks until EOF or until budget has passed since started
func readFor(body io.Reader, started time.Time, budget time.Duration) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := body.Read(buf)
		total += int64(n)
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if time.Since(started) >= budget {
			return total, nil
		}
	}
}

var errStalled = errors.New("read stalled")

// stallReader cancels the request when no Read completes within timeout
type stallReader struct {
	r        io.Reader
	timeout  time.Duration
	watchdog *time.Timer
	fired    atomic.Bool
}

func newStallReader(r io.Reader, timeout time.Duration, cancel context.CancelFunc) *stallReader {
	s := &stallReader{r: r, timeout: timeout}
	s.watchdog = time.AfterFunc(timeout, func() {
		s.fired.Store(true)
		cancel()
	})
	return s
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == nil {
		s.watchdog.Reset(s.timeout)
	}
	return n, err
}

func (s *stallReader) stalled() bool {
	return s.fired.Load()
}

func (s *stallReader) stop() {
	s.watchdog.Stop()
}
