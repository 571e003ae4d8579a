package monitor

import (
	"testing"
	"time"

	"connectivity-monitor/internal/models"
)

type outageSink struct {
	outages []models.OutageEvent
}

func (s *outageSink) RecordOutage(o models.OutageEvent) {
	s.outages = append(s.outages, o)
}

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return t0.Add(time.Duration(sec) * time.Second)
}

func TestTrackerBackdatesOutageStart(t *testing.T) {
	sink := &outageSink{}
	tr := NewOutageTracker(3, sink)

	tr.Observe(true, at(0))
	tr.Observe(false, at(1))
	tr.Observe(false, at(2))
	if tr.state() != stateFailing {
		t.Fatalf("state after 2 failures = %v, want failing", tr.state())
	}
	if tr.current != nil {
		t.Fatal("outage opened before threshold was reached")
	}

	tr.Observe(false, at(3))
	if tr.state() != stateOutage {
		t.Fatalf("state after 3 failures = %v, want outage", tr.state())
	}
	if !tr.current.Start.Equal(at(1)) {
		t.Errorf("outage start = %v, want first failure %v", tr.current.Start, at(1))
	}
	if tr.current.FailureCount != 3 {
		t.Errorf("failure count = %d, want 3", tr.current.FailureCount)
	}
	if len(sink.outages) != 0 {
		t.Fatal("open outage must not be recorded")
	}

	tr.Observe(true, at(4))
	if len(sink.outages) != 1 {
		t.Fatalf("recorded %d outages, want 1", len(sink.outages))
	}
	got := sink.outages[0]
	if !got.Start.Equal(at(1)) || !got.End.Valid || !got.End.Time.Equal(at(4)) || got.FailureCount != 3 {
		t.Errorf("unexpected outage %+v", got)
	}
	if tr.state() != stateHealthy {
		t.Errorf("state after recovery = %v, want healthy", tr.state())
	}
}

func TestTrackerSequences(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		outcomes  []bool
		// outages as [start, end, failures] in seconds from t0
		want [][3]int
	}{
		{
			name:      "streak below threshold is discarded",
			threshold: 3,
			outcomes:  []bool{false, false, true, false, false, true},
		},
		{
			name:      "threshold one makes every failure an outage",
			threshold: 1,
			outcomes:  []bool{false, true, false, true},
			want:      [][3]int{{0, 1, 1}, {2, 3, 1}},
		},
		{
			name:      "failures keep counting while open",
			threshold: 2,
			outcomes:  []bool{true, false, false, false, false, true},
			want:      [][3]int{{1, 5, 4}},
		},
		{
			name:      "closing success does not add a failure",
			threshold: 2,
			outcomes:  []bool{false, false, true, true},
			want:      [][3]int{{0, 2, 2}},
		},
		{
			name:      "two separate outages",
			threshold: 2,
			outcomes:  []bool{false, false, true, false, true, false, false, false, true},
			want:      [][3]int{{0, 2, 2}, {5, 8, 3}},
		},
		{
			name:      "zero threshold behaves as one",
			threshold: 0,
			outcomes:  []bool{false, true},
			want:      [][3]int{{0, 1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &outageSink{}
			tr := NewOutageTracker(tt.threshold, sink)
			for i, ok := range tt.outcomes {
				tr.Observe(ok, at(i))
			}

			if len(sink.outages) != len(tt.want) {
				t.Fatalf("recorded %d outages, want %d: %+v", len(sink.outages), len(tt.want), sink.outages)
			}
			for i, w := range tt.want {
				got := sink.outages[i]
				if !got.Start.Equal(at(w[0])) || !got.End.Time.Equal(at(w[1])) || got.FailureCount != w[2] {
					t.Errorf("outage %d = {start %v end %v failures %d}, want {%v %v %d}",
						i, got.Start, got.End.Time, got.FailureCount, at(w[0]), at(w[1]), w[2])
				}
			}
		})
	}
}

func TestTrackerCloseForcesOpenOutage(t *testing.T) {
	sink := &outageSink{}
	tr := NewOutageTracker(2, sink)

	tr.Observe(false, at(0))
	tr.Observe(false, at(1))
	tr.Observe(false, at(2))
	tr.Close(at(10))

	if len(sink.outages) != 1 {
		t.Fatalf("recorded %d outages, want 1", len(sink.outages))
	}
	got := sink.outages[0]
	if !got.End.Valid || !got.End.Time.Equal(at(10)) {
		t.Errorf("end = %+v, want %v", got.End, at(10))
	}
	if got.FailureCount != 3 {
		t.Errorf("failure count = %d, want 3", got.FailureCount)
	}
	if got.Duration() != 10*time.Second {
		t.Errorf("duration = %v, want 10s", got.Duration())
	}

	tr.Close(at(11))
	if len(sink.outages) != 1 {
		t.Error("closing a healthy tracker must not record anything")
	}
}

func TestTrackerCloseDiscardsPendingStreak(t *testing.T) {
	sink := &outageSink{}
	tr := NewOutageTracker(3, sink)

	tr.Observe(false, at(0))
	tr.Close(at(1))
	if len(sink.outages) != 0 {
		t.Errorf("a streak below threshold must not become an outage on close")
	}
}
