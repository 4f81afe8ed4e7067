package diagnostics

import (
	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

// Publisher delivers a single diagnostic event to some output.
type Publisher interface {
	Publish(event domain.Event)
}

// Reporter decouples the engine hot path from diagnostic output: events are
// queued on a bounded channel and delivered by one background worker, so
// concurrent client engines never contend on the log writer.
type Reporter struct {
	ch         chan domain.Event
	publishers []Publisher
	done       chan struct{}
}

// Config for Reporter.
type Config struct {
	Publishers []Publisher
	BufferSize int
}

// NewReporter creates a Reporter and starts its delivery worker.
func NewReporter(cfg Config) *Reporter {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}

	r := &Reporter{
		ch:         make(chan domain.Event, cfg.BufferSize),
		publishers: cfg.Publishers,
		done:       make(chan struct{}),
	}
	go r.loop()
	return r
}

// Publish queues an event for delivery. It blocks when the buffer is full
// rather than dropping diagnostics. Must not be called after Close.
func (r *Reporter) Publish(event domain.Event) {
	r.ch <- event
}

// Close drains remaining events and stops the worker.
func (r *Reporter) Close() {
	close(r.ch)
	<-r.done
}

func (r *Reporter) loop() {
	defer close(r.done)
	for event := range r.ch {
		for _, p := range r.publishers {
			p.Publish(event)
		}
	}
}

// LogPublisher writes diagnostic events to a zerolog logger.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event. Dropped rows surface at warn, per-transaction rule
// rejections at debug (visible with --verbose), locks at info.
func (p *LogPublisher) Publish(event domain.Event) {
	switch event.Type {
	case domain.EventRecordRejected:
		p.logger.Warn().
			Int("line", event.Line).
			Str("reason", event.Reason).
			Err(event.Err).
			Msg("record rejected")
	case domain.EventTransactionRejected:
		p.logger.Debug().
			Uint16("client", uint16(event.ClientID)).
			Uint32("tx", uint32(event.TxID)).
			Str("kind", string(event.Kind)).
			Str("reason", event.Reason).
			Msg("transaction rejected")
	case domain.EventAccountLocked:
		p.logger.Info().
			Uint16("client", uint16(event.ClientID)).
			Uint32("tx", uint32(event.TxID)).
			Msg("account locked by chargeback")
	default:
		p.logger.Debug().
			Str("type", string(event.Type)).
			Msg("diagnostic event")
	}
}

var _ usecase.EventPublisher = (*Reporter)(nil)
var _ Publisher = (*LogPublisher)(nil)
