package otelkv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/nessig/go-structlog/pkg/structlog"
	"github.com/nessig/go-structlog/pkg/structlog/jsondrain"
	"github.com/nessig/go-structlog/pkg/structlog/otelkv"
)

func TestTraceEmitsIDs(t *testing.T) {
	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanID := trace.SpanID{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	var buf bytes.Buffer
	drain := jsondrain.New(&buf, jsondrain.WithKV(otelkv.Trace()))
	log, err := structlog.New(drain)
	require.NoError(t, err)

	require.NoError(t, log.Info(ctx, "traced"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, traceID.String(), got["trace_id"])
	assert.Equal(t, spanID.String(), got["span_id"])
}

func TestTraceWithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	drain := jsondrain.New(&buf, jsondrain.WithKV(otelkv.Trace()))
	log, err := structlog.New(drain)
	require.NoError(t, err)

	require.NoError(t, log.Info(context.Background(), "untraced"))
	assert.Equal(t, "{}\n", buf.String())
}

func TestTraceNilContext(t *testing.T) {
	var buf bytes.Buffer
	drain := jsondrain.New(&buf, jsondrain.WithKV(otelkv.Trace()))

	rec := structlog.NewRecord(nil, structlog.LevelInfo, "no ctx") //nolint:staticcheck
	require.NoError(t, drain.Log(rec, nil))
	assert.Equal(t, "{}\n", buf.String())
}
