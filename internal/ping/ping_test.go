package ping

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func TestParsePingOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected float64
		ok       bool
	}{
		{
			name:     "macOS individual response",
			output:   "64 bytes from 8.8.8.8: icmp_seq=0 ttl=118 time=44.347 ms",
			expected: 44.347,
			ok:       true,
		},
		{
			name:     "macOS summary line",
			output:   "round-trip min/avg/max/stddev = 44.347/44.347/44.347/0.000 ms",
			expected: 44.347,
			ok:       true,
		},
		{
			name:     "Linux summary line",
			output:   "rtt min/avg/max/mdev = 12.300/12.300/12.300/0.000 ms",
			expected: 12.3,
			ok:       true,
		},
		{
			name:     "Busybox summary line",
			output:   "round-trip min/avg/max = 12.3/12.3/12.3 ms",
			expected: 12.3,
			ok:       true,
		},
		{
			name:     "Windows response",
			output:   "Reply from 8.8.8.8: bytes=32 time=15ms TTL=118",
			expected: 15,
			ok:       true,
		},
		{
			name:     "Windows sub-millisecond",
			output:   "Reply from 8.8.8.8: bytes=32 time<1ms TTL=118",
			expected: 1,
			ok:       true,
		},
		{
			name:   "No match",
			output: "ping: unknown host example.invalid",
		},
		{
			name:   "Empty output",
			output: "",
		},
		{
			name: "Multiple lines with macOS output",
			output: `PING 8.8.8.8 (8.8.8.8): 56 data bytes
64 bytes from 8.8.8.8: icmp_seq=0 ttl=118 time=44.347 ms

--- 8.8.8.8 ping statistics ---
1 packets transmitted, 1 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 44.347/44.347/44.347/0.000 ms`,
			expected: 44.347,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := parsePingOutput(tt.output)
			if ok != tt.ok || result != tt.expected {
				t.Errorf("parsePingOutput(%q) = %v, %v, want %v, %v", tt.output, result, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestPingArgsFloorTimeout(t *testing.T) {
	args := pingArgs("1.1.1.1", 200*time.Millisecond)
	if args[len(args)-1] != "1.1.1.1" {
		t.Fatalf("target must be the last argument, got %v", args)
	}
	for i, a := range args {
		if (a == "-W" || a == "-w") && args[i+1] == "0" {
			t.Fatalf("timeout argument rounded down to zero: %v", args)
		}
	}
}

func TestPingerProbe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ping integration test in short mode")
	}

	if _, err := exec.LookPath("ping"); err != nil {
		t.Skip("ping binary not available on PATH")
	}

	pinger := New()

	latency, err := pinger.Probe(context.Background(), "127.0.0.1", 2*time.Second)
	if err != nil {
		t.Skipf("skipping due to unexpected ping failure: %v", err)
	}
	if !latency.Valid {
		t.Skip("loopback did not answer, possibly due to sandboxing")
	}
	if latency.Float64 < 0 {
		t.Errorf("negative latency %v", latency.Float64)
	}
}

func TestPingerMissingBinary(t *testing.T) {
	pinger := &Pinger{binary: "definitely-not-a-ping-binary"}
	latency, err := pinger.Probe(context.Background(), "127.0.0.1", time.Second)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if latency.Valid {
		t.Errorf("expected no latency, got %v", latency.Float64)
	}
}
