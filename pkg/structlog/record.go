package structlog

import (
	"context"
	"time"
)

// Record is a single log statement. The context it was logged under travels
// with it so lazy values can read request-scoped data (trace IDs, deadlines)
// when the record is serialized, which may happen on another goroutine.
type Record struct {
	Time  time.Time
	Level Level
	Msg   string
	Ctx   context.Context

	kv KV
}

// NewRecord creates a record stamped with the current time.
func NewRecord(ctx context.Context, level Level, msg string, kv ...KV) *Record {
	return &Record{
		Time:  time.Now(),
		Level: level,
		Msg:   msg,
		Ctx:   ctx,
		kv:    Multi(kv),
	}
}

// KV returns the values attached to this record. It does not include the
// values of the logger that emitted it; those are passed to the drain
// separately so drains control the serialization order.
func (r *Record) KV() KV {
	return r.kv
}
