package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	enginecsv "github.com/iho/payengine/internal/adapter/csv"
	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

// CSV joins rows into a transactions file with the standard header.
func CSV(rows ...string) string {
	return "type, client, tx, amount\n" + strings.Join(rows, "\n") + "\n"
}

// RunPipeline runs the full engine over a CSV input string and returns the
// CSV output plus run stats.
func RunPipeline(t *testing.T, input string, workers int, policy domain.DisputePolicy) (string, usecase.Stats) {
	t.Helper()

	uc := usecase.NewProcessUseCase(usecase.Config{
		Workers: workers,
		Policy:  policy,
		Logger:  zerolog.Nop(),
	})

	var out bytes.Buffer
	stats, err := uc.Run(context.Background(),
		enginecsv.NewReader(strings.NewReader(input)),
		enginecsv.NewWriter(&out),
	)
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}

	return out.String(), stats
}

// SnapshotRows maps the output CSV by client id column, header excluded.
func SnapshotRows(t *testing.T, output string) map[string]string {
	t.Helper()

	rows := make(map[string]string)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for _, line := range lines[1:] {
		client, _, ok := strings.Cut(line, ",")
		if !ok {
			t.Fatalf("malformed output row: %q", line)
		}
		rows[client] = line
	}
	return rows
}
