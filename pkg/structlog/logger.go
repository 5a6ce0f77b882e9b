package structlog

import (
	"context"
	"time"
)

// Logger emits records to a drain, together with its accumulated key-value
// context. Loggers are immutable; With returns a child sharing the drain.
type Logger struct {
	drain Drain
	kv    Multi
}

// New creates a root logger writing to drain. The given values are attached
// to every record the logger and all its children emit.
func New(drain Drain, kv ...KV) (*Logger, error) {
	if drain == nil {
		return nil, ErrDrainMustBeSet
	}

	return &Logger{drain: drain, kv: Multi(kv)}, nil
}

// With returns a child logger carrying additional values. Parent values
// serialize before the child's.
func (l *Logger) With(kv ...KV) *Logger {
	merged := make(Multi, 0, len(l.kv)+len(kv))
	merged = append(merged, l.kv...)
	merged = append(merged, kv...)

	return &Logger{drain: l.drain, kv: merged}
}

// Log emits a record at the given level.
func (l *Logger) Log(ctx context.Context, level Level, msg string, kv ...KV) error {
	rec := &Record{
		Time:  time.Now(),
		Level: level,
		Msg:   msg,
		Ctx:   ctx,
		kv:    Multi(kv),
	}

	return l.drain.Log(rec, l.kv)
}

func (l *Logger) Critical(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelCritical, msg, kv...)
}

func (l *Logger) Error(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelError, msg, kv...)
}

func (l *Logger) Warning(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelWarning, msg, kv...)
}

func (l *Logger) Info(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelInfo, msg, kv...)
}

func (l *Logger) Debug(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelDebug, msg, kv...)
}

func (l *Logger) Trace(ctx context.Context, msg string, kv ...KV) error {
	return l.Log(ctx, LevelTrace, msg, kv...)
}
