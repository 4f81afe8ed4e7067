package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/payengine/internal/domain"
)

// ProcessUseCase runs one batch: it partitions the record stream by client,
// applies each client's transactions on its own engine, and emits the final
// snapshots. Accounts are independent, so client engines run concurrently on
// a bounded worker pool without any shared mutable state.
type ProcessUseCase struct {
	workers int
	policy  domain.DisputePolicy
	logger  zerolog.Logger
	events  EventPublisher
	metrics Instrumentation
}

// Config for ProcessUseCase.
type Config struct {
	// Workers bounds the pool; 0 or less means GOMAXPROCS.
	Workers int
	Policy  domain.DisputePolicy
	Logger  zerolog.Logger
	Events  EventPublisher
	Metrics Instrumentation
}

// NewProcessUseCase creates a ProcessUseCase.
func NewProcessUseCase(cfg Config) *ProcessUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Events == nil {
		cfg.Events = nopPublisher{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopInstrumentation{}
	}

	return &ProcessUseCase{
		workers: cfg.Workers,
		policy:  cfg.Policy,
		logger:  cfg.Logger,
		events:  cfg.Events,
		metrics: cfg.Metrics,
	}
}

// Stats summarizes one run.
type Stats struct {
	Clients         int
	RecordsRead     int
	RecordsRejected int
	Applied         int
	Rejected        int
}

// partition is one client's transaction queue in arrival order.
type partition struct {
	clientID domain.ClientID
	txs      []domain.Transaction
}

// Run processes the whole source and writes one snapshot per client to the
// sink. Snapshots are emitted in first-seen client order, so output is
// deterministic for a fixed input regardless of worker count. Only a source
// or sink I/O failure returns an error; rejected rows and rule violations
// are skipped and reported through events and metrics.
func (uc *ProcessUseCase) Run(ctx context.Context, source RecordSource, sink SnapshotSink) (Stats, error) {
	start := time.Now()
	var stats Stats

	parts, err := uc.partition(ctx, source, &stats)
	if err != nil {
		return stats, err
	}
	stats.Clients = len(parts)

	uc.logger.Debug().
		Int("clients", len(parts)).
		Int("records", stats.RecordsRead).
		Int("workers", uc.workers).
		Msg("partitioning complete")

	// each worker owns exactly one partition and one result slot, so no
	// locking is needed anywhere in the hot path
	snapshots := make([]domain.Snapshot, len(parts))
	applied := make([]int, len(parts))
	rejected := make([]int, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snapshots[i], applied[i], rejected[i] = uc.processClient(part)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for i := range parts {
		stats.Applied += applied[i]
		stats.Rejected += rejected[i]
		uc.metrics.ClientSettled(snapshots[i].Locked)
	}

	if err := sink.Write(ctx, snapshots); err != nil {
		return stats, fmt.Errorf("write snapshots: %w", err)
	}

	elapsed := time.Since(start)
	uc.metrics.RunCompleted(elapsed)
	uc.logger.Info().
		Int("clients", stats.Clients).
		Int("records", stats.RecordsRead).
		Int("records_rejected", stats.RecordsRejected).
		Int("applied", stats.Applied).
		Int("rejected", stats.Rejected).
		Dur("elapsed", elapsed).
		Msg("run complete")

	return stats, nil
}

// partition streams the source once, routing each record into its client's
// queue. Relative order within a client is preserved; first-seen client
// order decides output order.
func (uc *ProcessUseCase) partition(ctx context.Context, source RecordSource, stats *Stats) ([]*partition, error) {
	var order []*partition
	index := make(map[domain.ClientID]*partition)

	for {
		tx, err := source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return order, nil
			}

			var rowErr *RowError
			if errors.As(err, &rowErr) {
				stats.RecordsRejected++
				reason := domain.RejectReason(rowErr.Err)
				uc.metrics.RecordRejected(reason)
				uc.events.Publish(domain.Event{
					Type:   domain.EventRecordRejected,
					Line:   rowErr.Line,
					Reason: reason,
					Err:    rowErr.Err,
				})
				continue
			}

			return nil, fmt.Errorf("read records: %w", err)
		}

		stats.RecordsRead++
		p, ok := index[tx.ClientID]
		if !ok {
			p = &partition{clientID: tx.ClientID}
			index[tx.ClientID] = p
			order = append(order, p)
		}
		p.txs = append(p.txs, tx)
	}
}

func (uc *ProcessUseCase) processClient(p *partition) (domain.Snapshot, int, int) {
	engine := domain.NewClientEngine(p.clientID, uc.policy)

	var applied, rejected int
	for _, tx := range p.txs {
		if err := engine.Apply(tx); err != nil {
			rejected++
			reason := domain.RejectReason(err)
			uc.metrics.TransactionRejected(tx.Type, reason)
			uc.events.Publish(domain.Event{
				Type:     domain.EventTransactionRejected,
				ClientID: tx.ClientID,
				TxID:     tx.TxID,
				Kind:     tx.Type,
				Reason:   reason,
				Err:      err,
			})
			continue
		}

		applied++
		uc.metrics.TransactionApplied(tx.Type)
		if tx.Type == domain.TypeChargeback {
			uc.events.Publish(domain.Event{
				Type:     domain.EventAccountLocked,
				ClientID: tx.ClientID,
				TxID:     tx.TxID,
				Kind:     tx.Type,
			})
		}
	}

	return engine.Snapshot(), applied, rejected
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.Event) {}

type nopInstrumentation struct{}

func (nopInstrumentation) TransactionApplied(domain.TransactionType)          {}
func (nopInstrumentation) TransactionRejected(domain.TransactionType, string) {}
func (nopInstrumentation) RecordRejected(string)                              {}
func (nopInstrumentation) ClientSettled(bool)                                 {}
func (nopInstrumentation) RunCompleted(time.Duration)                         {}
