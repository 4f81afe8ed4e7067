package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/payengine/internal/domain"
)

// Metrics holds all Prometheus metrics for one engine run.
type Metrics struct {
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	RecordsRejected      *prometheus.CounterVec
	ClientsProcessed     prometheus.Counter
	AccountsLocked       prometheus.Counter
	RunDuration          prometheus.Histogram
}

// New creates and registers all metrics on reg. The engine is a batch
// process, so callers typically use a private registry and gather it at run
// end rather than exposing a scrape endpoint.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_transactions_applied_total",
				Help: "Total transactions applied, by kind",
			},
			[]string{"kind"},
		),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_transactions_rejected_total",
				Help: "Total rule-rejected transactions, by kind and reason",
			},
			[]string{"kind", "reason"},
		),
		RecordsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_records_rejected_total",
				Help: "Total input rows dropped at validation, by reason",
			},
			[]string{"reason"},
		),
		ClientsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_clients_processed_total",
			Help: "Total client accounts settled",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_locked_total",
			Help: "Total accounts locked by a chargeback",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payengine_run_duration_seconds",
			Help:    "Duration of complete engine runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// TransactionApplied implements usecase.Instrumentation.
func (m *Metrics) TransactionApplied(kind domain.TransactionType) {
	m.TransactionsApplied.WithLabelValues(string(kind)).Inc()
}

// TransactionRejected implements usecase.Instrumentation.
func (m *Metrics) TransactionRejected(kind domain.TransactionType, reason string) {
	m.TransactionsRejected.WithLabelValues(string(kind), reason).Inc()
}

// RecordRejected implements usecase.Instrumentation.
func (m *Metrics) RecordRejected(reason string) {
	m.RecordsRejected.WithLabelValues(reason).Inc()
}

// ClientSettled implements usecase.Instrumentation.
func (m *Metrics) ClientSettled(locked bool) {
	m.ClientsProcessed.Inc()
	if locked {
		m.AccountsLocked.Inc()
	}
}

// RunCompleted implements usecase.Instrumentation.
func (m *Metrics) RunCompleted(d time.Duration) {
	m.RunDuration.Observe(d.Seconds())
}
