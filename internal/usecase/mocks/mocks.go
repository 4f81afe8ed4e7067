package mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/usecase"
)

// MockRecordSource is a mock implementation of RecordSource. By default it
// replays Sequence in order; set NextFunc for full control.
type MockRecordSource struct {
	mu  sync.Mutex
	pos int

	// Sequence is replayed in order; each element is either a
	// domain.Transaction or an error.
	Sequence []any

	NextFunc func(ctx context.Context) (domain.Transaction, error)
}

// NewMockRecordSource builds a source replaying the given transactions.
func NewMockRecordSource(txs ...domain.Transaction) *MockRecordSource {
	s := &MockRecordSource{}
	for _, tx := range txs {
		s.Sequence = append(s.Sequence, tx)
	}
	return s
}

// Append adds a transaction or error to the replay sequence.
func (m *MockRecordSource) Append(item any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sequence = append(m.Sequence, item)
}

func (m *MockRecordSource) Next(ctx context.Context) (domain.Transaction, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pos >= len(m.Sequence) {
		return domain.Transaction{}, io.EOF
	}

	item := m.Sequence[m.pos]
	m.pos++

	switch v := item.(type) {
	case domain.Transaction:
		return v, nil
	case error:
		return domain.Transaction{}, v
	}
	return domain.Transaction{}, io.EOF
}

// MockSnapshotSink is a mock implementation of SnapshotSink.
type MockSnapshotSink struct {
	mu        sync.Mutex
	Snapshots []domain.Snapshot

	WriteFunc func(ctx context.Context, snapshots []domain.Snapshot) error
}

func NewMockSnapshotSink() *MockSnapshotSink {
	return &MockSnapshotSink{}
}

func (m *MockSnapshotSink) Write(ctx context.Context, snapshots []domain.Snapshot) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, snapshots)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshots = append(m.Snapshots, snapshots...)
	return nil
}

// MockEventPublisher collects published events.
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []domain.Event

	PublishFunc func(event domain.Event)
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(event domain.Event) {
	if m.PublishFunc != nil {
		m.PublishFunc(event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// ByType returns the collected events of one type.
func (m *MockEventPublisher) ByType(typ domain.EventType) []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Event
	for _, ev := range m.Events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// MockInstrumentation counts instrumentation calls.
type MockInstrumentation struct {
	mu sync.Mutex

	Applied         map[domain.TransactionType]int
	Rejected        map[string]int
	RecordsRejected map[string]int
	ClientsSettled  int
	ClientsLocked   int
	Runs            int
	LastDuration    time.Duration
}

func NewMockInstrumentation() *MockInstrumentation {
	return &MockInstrumentation{
		Applied:         make(map[domain.TransactionType]int),
		Rejected:        make(map[string]int),
		RecordsRejected: make(map[string]int),
	}
}

func (m *MockInstrumentation) TransactionApplied(kind domain.TransactionType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Applied[kind]++
}

func (m *MockInstrumentation) TransactionRejected(kind domain.TransactionType, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[reason]++
}

func (m *MockInstrumentation) RecordRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsRejected[reason]++
}

func (m *MockInstrumentation) ClientSettled(locked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClientsSettled++
	if locked {
		m.ClientsLocked++
	}
}

func (m *MockInstrumentation) RunCompleted(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Runs++
	m.LastDuration = d
}

var _ usecase.RecordSource = (*MockRecordSource)(nil)
var _ usecase.SnapshotSink = (*MockSnapshotSink)(nil)
var _ usecase.EventPublisher = (*MockEventPublisher)(nil)
var _ usecase.Instrumentation = (*MockInstrumentation)(nil)
