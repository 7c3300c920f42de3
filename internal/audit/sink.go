package audit

import (
	"context"
	"time"

	"github.com/evanmoray/cadence/internal/domain"
)

// Entry is one append-only record of a planner decision or side effect.
type Entry struct {
	ID        string
	Category  domain.AuditCategory
	Severity  domain.AuditSeverity
	Message   string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Sink receives audit entries. Implementations are best-effort: a failing
// sink must never disturb the operation being audited.
type Sink interface {
	AddEntry(ctx context.Context, e Entry)
}

// NoopSink discards all entries.
type NoopSink struct{}

func (NoopSink) AddEntry(context.Context, Entry) {}

// MultiSink fans an entry out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) AddEntry(ctx context.Context, e Entry) {
	for _, s := range m {
		if s != nil {
			s.AddEntry(ctx, e)
		}
	}
}
