package audit

import (
	"context"
	"io"
	"log/slog"

	"github.com/evanmoray/cadence/internal/domain"
)

type logSink struct {
	logger *slog.Logger
}

// NewLogSink writes audit entries to the provided writer as structured logs.
func NewLogSink(w io.Writer) Sink {
	if w == nil {
		return NoopSink{}
	}
	return &logSink{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *logSink) AddEntry(ctx context.Context, e Entry) {
	attrs := make([]any, 0, 6+len(e.Metadata)*2)
	attrs = append(attrs,
		"category", string(e.Category),
		"severity", string(e.Severity),
	)
	for k, v := range e.Metadata {
		attrs = append(attrs, k, v)
	}

	switch e.Severity {
	case domain.SeverityError:
		s.logger.ErrorContext(ctx, e.Message, attrs...)
	case domain.SeverityWarning:
		s.logger.WarnContext(ctx, e.Message, attrs...)
	default:
		s.logger.InfoContext(ctx, e.Message, attrs...)
	}
}
