package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

// Writer adapts an io.Writer into a usecase.SnapshotSink emitting CSV rows
// with header client,available,held,total,locked. Amounts are rendered at
// the fixed emission scale.
type Writer struct {
	out io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Write emits all snapshots and flushes.
func (w *Writer) Write(ctx context.Context, snapshots []domain.Snapshot) error {
	cw := csv.NewWriter(w.out)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range snapshots {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := []string{
			strconv.FormatUint(uint64(s.ClientID), 10),
			s.Available.StringFixed(domain.AmountScale),
			s.Held.StringFixed(domain.AmountScale),
			s.Total.StringFixed(domain.AmountScale),
			strconv.FormatBool(s.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write snapshot for client %d: %w", s.ClientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var _ usecase.SnapshotSink = (*Writer)(nil)
