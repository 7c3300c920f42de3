package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	entries []Entry
}

func (r *recordingSink) AddEntry(_ context.Context, e Entry) {
	r.entries = append(r.entries, e)
}

func TestLogSink_WritesStructuredEntry(t *testing.T) {
	var buf strings.Builder
	sink := NewLogSink(&buf)

	sink.AddEntry(context.Background(), Entry{
		Category: domain.AuditAutoSchedule,
		Severity: domain.SeveritySuccess,
		Message:  "break auto-scheduled",
		Metadata: map[string]any{"event_id": "ev-1"},
	})

	out := buf.String()
	assert.Contains(t, out, "break auto-scheduled")
	assert.Contains(t, out, "category=auto-schedule")
	assert.Contains(t, out, "event_id=ev-1")
}

func TestLogSink_ErrorSeverityUsesErrorLevel(t *testing.T) {
	var buf strings.Builder
	sink := NewLogSink(&buf)

	sink.AddEntry(context.Background(), Entry{
		Category: domain.AuditError,
		Severity: domain.SeverityError,
		Message:  "gateway failure",
	})

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestNewLogSink_NilWriterIsNoop(t *testing.T) {
	sink := NewLogSink(nil)
	assert.IsType(t, NoopSink{}, sink)
}

func TestMultiSink_FansOut(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := MultiSink{a, nil, b}

	m.AddEntry(context.Background(), Entry{Message: "x"})

	assert.Len(t, a.entries, 1)
	assert.Len(t, b.entries, 1)
}
