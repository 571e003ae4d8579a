package ping

import (
	"context"
	"fmt"
	"time"

	"github.com/guregu/null/v5"
	probing "github.com/prometheus-community/pro-bing"

	"connectivity-monitor/internal/models"
)

// ICMPPinger probes reachability with in-process ICMP echo requests
type ICMPPinger struct {
	privileged bool
}

// NewICMP creates an ICMPPinger. Privileged pingers use raw sockets; the
// unprivileged mode needs net.ipv4.ping_group_range on Linux.
func NewICMP(privileged bool) *ICMPPinger {
	return &ICMPPinger{privileged: privileged}
}

// Probe sends one echo request to target and waits at most timeout for the reply
func (p *ICMPPinger) Probe(ctx context.Context, target string, timeout time.Duration) (null.Float, error) {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		return null.Float{}, fmt.Errorf("resolve %s: %w", target, err)
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return null.Float{}, fmt.Errorf("icmp echo: %w", err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return null.Float{}, models.ErrTimeout
	}
	return null.FloatFrom(float64(stats.AvgRtt) / float64(time.Millisecond)), nil
}
