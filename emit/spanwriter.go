// SPDX-License-Identifier: MIT

package emit

import (
	"context"
	"fmt"
	"io"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanWriter is a minimal sdktrace.SpanExporter that prints one line per
// finished span:
//
//	span iteration run=<id> dur=12µs polyopt.step=3 status=Unset
//
// It lets the CLI show traces without an external collector.
type SpanWriter struct {
	mu       sync.Mutex
	w        io.Writer
	shutdown bool
}

var _ sdktrace.SpanExporter = (*SpanWriter)(nil)

// NewSpanWriter writes spans to w.
func NewSpanWriter(w io.Writer) *SpanWriter {
	return &SpanWriter{w: w}
}

// ExportSpans writes spans in the order received. After Shutdown it is a no-op.
func (s *SpanWriter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return nil
	}
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		run := ""
		step := ""
		for _, kv := range span.Attributes() {
			switch string(kv.Key) {
			case AttrRunID:
				run = kv.Value.AsString()
			case AttrStep:
				step = kv.Value.Emit()
			}
		}
		_, err := fmt.Fprintf(s.w, "span %s run=%s dur=%s %s=%s status=%s\n",
			span.Name(), run, span.EndTime().Sub(span.StartTime()), AttrStep, step, span.Status().Code)
		if err != nil {
			return err
		}
	}

	return nil
}

// Shutdown stops further writes.
func (s *SpanWriter) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true

	return nil
}
