package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/payengine/internal/domain"
)

// RecordSource produces a lazy, finite, ordered sequence of transaction
// records. Next returns io.EOF when the sequence ends. A *RowError marks a
// single malformed or invalid row the caller should skip; any other error is
// fatal for the run.
type RecordSource interface {
	Next(ctx context.Context) (domain.Transaction, error)
}

// SnapshotSink consumes the final account snapshots, one per client seen in
// the run.
type SnapshotSink interface {
	Write(ctx context.Context, snapshots []domain.Snapshot) error
}

// EventPublisher receives diagnostic events. Publishing must never fail the
// run.
type EventPublisher interface {
	Publish(event domain.Event)
}

// Instrumentation records run counters.
type Instrumentation interface {
	TransactionApplied(kind domain.TransactionType)
	TransactionRejected(kind domain.TransactionType, reason string)
	RecordRejected(reason string)
	ClientSettled(locked bool)
	RunCompleted(d time.Duration)
}

// RowError wraps a single-row failure from a record source so the dispatcher
// can skip the row and keep reading.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
