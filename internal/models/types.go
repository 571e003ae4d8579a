package models

import (
	"context"
	"errors"
	"time"

	"github.com/guregu/null/v5"
)

// ErrTimeout is returned by a Prober when the target did not answer in time
var ErrTimeout = errors.New("timeout")

// Prober performs a single reachability probe. An invalid latency with a nil
// error means the target did not answer.
type Prober interface {
	Probe(ctx context.Context, target string, timeout time.Duration) (null.Float, error)
}

// TransferBudget bounds one throughput probe. A positive Duration selects a
// time-boxed transfer, otherwise Bytes are read.
type TransferBudget struct {
	Bytes    int64
	Duration time.Duration
}

// Transferer performs a single throughput probe against endpoint
type Transferer interface {
	Transfer(ctx context.Context, endpoint string, budget TransferBudget, timeout time.Duration) (int64, time.Duration, error)
}

// SessionDirectory resolves the directory session files are written to
type SessionDirectory interface {
	SessionsDirectory() (string, error)
}

// Persister stores a finished session
type Persister interface {
	Persist(summary SessionSummary) (string, error)
}

// Archive keeps finished sessions in a queryable store
type Archive interface {
	SaveSession(summary SessionSummary) error
}
