package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	enginecsv "github.com/iho/payengine/internal/adapter/csv"
	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/config"
	"github.com/iho/payengine/internal/infrastructure/diagnostics"
	"github.com/iho/payengine/internal/infrastructure/logger"
	"github.com/iho/payengine/internal/infrastructure/metrics"
	"github.com/iho/payengine/internal/usecase"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		workers   int
		verbose   bool
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "payengine [transactions.csv]",
		Short: "Batch payments engine",
		Long: `payengine reads an ordered CSV of payment transactions, applies them
per client through an account and dispute state machine, and writes the
final account snapshots as CSV to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			return run(cmd.Context(), cfg, args[0], os.Stdout, verbose)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (0 = number of CPUs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-rejection diagnostics and a metric dump")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "payengine "+version)
		},
	})

	return cmd
}

func run(ctx context.Context, cfg *config.Config, path string, out io.Writer, verbose bool) error {
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log = logger.WithRun(log, ulid.Make().String())

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	reg := prometheus.NewRegistry()
	runMetrics := metrics.New(reg)

	reporter := diagnostics.NewReporter(diagnostics.Config{
		Publishers: []diagnostics.Publisher{diagnostics.NewLogPublisher(log)},
		BufferSize: cfg.EventBuffer,
	})
	defer reporter.Close()

	uc := usecase.NewProcessUseCase(usecase.Config{
		Workers: cfg.Workers,
		Policy: domain.DisputePolicy{
			LockedAcceptsDisputes: cfg.LockedAcceptsDisputes,
			WithdrawalDisputes:    cfg.WithdrawalDisputes,
		},
		Logger:  log,
		Events:  reporter,
		Metrics: runMetrics,
	})

	if _, err := uc.Run(ctx, enginecsv.NewReader(file), enginecsv.NewWriter(out)); err != nil {
		return err
	}

	if verbose {
		dumpMetrics(reg, log)
	}
	return nil
}

// dumpMetrics logs the gathered run counters; a batch process has no scrape
// endpoint, so this is the one place the registry surfaces.
func dumpMetrics(reg *prometheus.Registry, log zerolog.Logger) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("gather metrics")
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			ev := log.Debug().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				ev = ev.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				ev = ev.Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum", m.GetHistogram().GetSampleSum())
			}
			ev.Msg("run metric")
		}
	}
}
