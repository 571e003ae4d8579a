package ping

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

// processGrace is extra time given to the ping binary beyond its own timeout
const processGrace = time.Second

var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]\s*([0-9.]+)\s*ms`),
	regexp.MustCompile(`round-trip min/avg/max(?:/stddev)? = [0-9.]+/([0-9.]+)/`),
	regexp.MustCompile(`rtt min/avg/max/mdev = [0-9.]+/([0-9.]+)/`),
}

// Pinger probes reachability with the operating system's ping binary
type Pinger struct {
	binary string
}

// New creates a new Pinger
func New() *Pinger {
	return &Pinger{binary: "ping"}
}

// Probe sends one echo request to target. A target that does not answer
// yields an invalid latency and no error.
func (p *Pinger) Probe(ctx context.Context, target string, timeout time.Duration) (null.Float, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout+processGrace)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, pingArgs(target, timeout)...)
	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return null.Float{}, models.ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return null.Float{}, nil
		}
		return null.Float{}, fmt.Errorf("run ping: %w", err)
	}

	rtt, ok := parsePingOutput(string(output))
	if !ok {
		return null.Float{}, nil
	}
	return null.FloatFrom(rtt), nil
}

// pingArgs builds platform-specific arguments for a single echo request
func pingArgs(target string, timeout time.Duration) []string {
	if runtime.GOOS == "windows" {
		ms := timeout.Milliseconds()
		if ms < 1 {
			ms = 1
		}
		return []string{"-n", "1", "-w", strconv.FormatInt(ms, 10), target}
	}

	seconds := int(timeout.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if runtime.GOOS == "darwin" {
		// -W is in milliseconds on macOS
		return []string{"-n", "-c", "1", "-W", strconv.Itoa(seconds * 1000), target}
	}
	return []string{"-n", "-c", "1", "-W", strconv.Itoa(seconds), target}
}

// parsePingOutput parses RTT from ping output
func parsePingOutput(output string) (float64, bool) {
	// Linux/Mac: "time=XX.X ms"
	// Windows: "time=XXms" or "time<1ms"
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if rtt, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return rtt, true
			}
		}
	}

	return 0, false
}
