package store

import (
	"sync"
	"testing"
	"time"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

func TestSnapshotIsIsolatedFromLaterAppends(t *testing.T) {
	r := New()
	now := time.Now().UTC()

	r.RecordPing(models.PingSample{Timestamp: now, Target: "1.1.1.1", Success: true, LatencyMs: null.FloatFrom(12)})
	r.RecordSpeed(models.SpeedSample{Timestamp: now, Direction: models.Download, Bytes: 10})
	snap := r.Snapshot()

	r.RecordPing(models.PingSample{Timestamp: now.Add(time.Second), Target: "1.1.1.1"})
	r.RecordOutage(models.OutageEvent{Start: now, End: null.TimeFrom(now.Add(time.Second)), FailureCount: 1})

	if len(snap.Pings) != 1 || len(snap.Speeds) != 1 || len(snap.Outages) != 0 {
		t.Fatalf("snapshot changed after append: %d pings, %d speeds, %d outages",
			len(snap.Pings), len(snap.Speeds), len(snap.Outages))
	}

	snap.Pings[0].Target = "mutated"
	if got := r.Snapshot().Pings[0].Target; got != "1.1.1.1" {
		t.Errorf("mutating a snapshot leaked into the store: %q", got)
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := New().Snapshot()
	if snap.Pings == nil || snap.Speeds == nil || snap.Outages == nil {
		t.Error("empty snapshot should hold empty, non-nil slices")
	}
}

func TestConcurrentAppendsPreserveOrderPerKind(t *testing.T) {
	r := New()
	const n = 500
	base := time.Now().UTC()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			r.RecordPing(models.PingSample{Timestamp: base.Add(time.Duration(i) * time.Millisecond)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			r.RecordSpeed(models.SpeedSample{Bytes: int64(i)})
			_ = r.Snapshot()
		}
	}()
	wg.Wait()

	snap := r.Snapshot()
	if len(snap.Pings) != n || len(snap.Speeds) != n {
		t.Fatalf("got %d pings and %d speeds, want %d each", len(snap.Pings), len(snap.Speeds), n)
	}
	for i := 1; i < n; i++ {
		if !snap.Pings[i].Timestamp.After(snap.Pings[i-1].Timestamp) {
			t.Fatalf("ping order broken at %d", i)
		}
		if snap.Speeds[i].Bytes != int64(i) {
			t.Fatalf("speed order broken at %d", i)
		}
	}
}
