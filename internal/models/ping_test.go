package models

import (
	"testing"
	"time"

	"github.com/guregu/null/v5"
)

func TestThroughput(t *testing.T) {
	tests := []struct {
		name    string
		bytes   int64
		elapsed time.Duration
		want    float64
	}{
		{name: "one megabyte per second", bytes: 1_000_000, elapsed: time.Second, want: 8},
		{name: "half a second", bytes: 500_000, elapsed: 500 * time.Millisecond, want: 8},
		{name: "nothing transferred", bytes: 0, elapsed: time.Second, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Throughput(tt.bytes, tt.elapsed); got != tt.want {
				t.Errorf("Throughput(%d, %v) = %v, want %v", tt.bytes, tt.elapsed, got, tt.want)
			}
		})
	}

	if v := Throughput(1000, 0); v <= 0 {
		t.Errorf("zero elapsed must be floored, got %v", v)
	}
}

func TestOutageDuration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	open := OutageEvent{Start: start, FailureCount: 3}
	if open.Duration() != 0 {
		t.Errorf("open outage duration = %v, want 0", open.Duration())
	}

	closed := OutageEvent{Start: start, End: null.TimeFrom(start.Add(90 * time.Second)), FailureCount: 3}
	if closed.Duration() != 90*time.Second {
		t.Errorf("closed outage duration = %v, want 90s", closed.Duration())
	}
}
