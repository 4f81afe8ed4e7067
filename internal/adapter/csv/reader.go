package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

// Reader adapts a CSV stream into a usecase.RecordSource. Expected header:
// type, client, tx, amount. Whitespace around fields is tolerated and the
// amount column may be empty or absent for dispute, resolve and chargeback
// rows.
type Reader struct {
	csv        *csv.Reader
	line       int
	headerRead bool
}

// NewReader wraps r. The CSV header row is consumed on the first call to
// Next.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// dispute rows legitimately omit the amount column
	cr.FieldsPerRecord = -1

	return &Reader{csv: cr}
}

// Next returns the next valid transaction record. Malformed or invalid rows
// come back as *usecase.RowError so the caller can skip them; io.EOF ends
// the sequence.
func (r *Reader) Next(ctx context.Context) (domain.Transaction, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Transaction{}, err
		}

		row, err := r.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return domain.Transaction{}, io.EOF
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.line++
				return domain.Transaction{}, &usecase.RowError{Line: parseErr.Line, Err: err}
			}
			return domain.Transaction{}, fmt.Errorf("read csv: %w", err)
		}
		r.line++

		if !r.headerRead {
			r.headerRead = true
			if isHeader(row) {
				continue
			}
		}

		tx, err := r.parseRow(row)
		if err != nil {
			return domain.Transaction{}, &usecase.RowError{Line: r.line, Err: err}
		}
		return tx, nil
	}
}

func (r *Reader) parseRow(row []string) (domain.Transaction, error) {
	if len(row) < 3 || len(row) > 4 {
		return domain.Transaction{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(row))
	}

	typ, err := domain.ParseTransactionType(strings.TrimSpace(row[0]))
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid client id %q: %w", row[1], err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid transaction id %q: %w", row[2], err)
	}

	var amount *decimal.Decimal
	if len(row) == 4 {
		if raw := strings.TrimSpace(row[3]); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return domain.Transaction{}, fmt.Errorf("invalid amount %q: %w", raw, err)
			}
			amount = &d
		}
	}

	return domain.NewTransaction(typ, domain.ClientID(client), domain.TxID(txID), amount)
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "type")
}

var _ usecase.RecordSource = (*Reader)(nil)
