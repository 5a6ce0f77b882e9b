// Package otelkv correlates log records with OpenTelemetry traces.
package otelkv

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/nessig/go-structlog/pkg/structlog"
)

type traceKV struct{}

// Trace returns a KV emitting the trace_id and span_id of the span active
// in the record's context. Records logged outside a span emit nothing.
func Trace() structlog.KV {
	return traceKV{}
}

func (traceKV) Serialize(r *structlog.Record, s structlog.Serializer) error {
	if r.Ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(r.Ctx)
	if !sc.IsValid() {
		return nil
	}

	if err := s.EmitString("trace_id", sc.TraceID().String()); err != nil {
		return err
	}

	return s.EmitString("span_id", sc.SpanID().String())
}
