// Package jsondrain writes log records as JSON, one map per record.
//
// Record values serialize in a fixed order: values attached to the drain
// itself, then the emitting logger's values, then the record's own values.
// Duplicate keys are written as-is, they are not deduplicated.
package jsondrain

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/nessig/go-structlog/pkg/structlog"
)

// Scratch buffers are shared between records.
var bufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 128))
	},
}

type flusher interface {
	Flush() error
}

// Drain encodes records as JSON maps and writes them to an io.Writer. It is
// safe for concurrent use; records are written whole, never interleaved.
type Drain struct {
	mu       sync.Mutex
	w        io.Writer
	newlines bool
	pretty   bool
	flush    bool
	kv       structlog.Multi
}

// Option configures a Drain.
type Option func(d *Drain)

// WithNewlines controls whether a newline is written after every record.
// Enabled by default.
func WithNewlines(enabled bool) Option {
	return func(d *Drain) {
		d.newlines = enabled
	}
}

// WithPretty indents the output of every record.
func WithPretty() Option {
	return func(d *Drain) {
		d.pretty = true
	}
}

// WithFlush flushes the writer after every record, when it supports it.
func WithFlush() Option {
	return func(d *Drain) {
		d.flush = true
	}
}

// WithKV attaches values to the drain itself. They serialize before logger
// and record values.
func WithKV(kv ...structlog.KV) Option {
	return func(d *Drain) {
		d.kv = append(d.kv, kv...)
	}
}

// WithDefaultKeys attaches the conventional default keys:
//   - "ts"    record time, RFC 3339, local zone
//   - "level" record level short name
//   - "msg"   record message
func WithDefaultKeys() Option {
	return func(d *Drain) {
		d.kv = append(d.kv, defaultKeys())
	}
}

func defaultKeys() structlog.KV {
	return structlog.Multi{
		structlog.Pair{Key: "ts", Value: structlog.FnValue(func(r *structlog.Record) any {
			return r.Time.Local().Format(time.RFC3339)
		})},
		structlog.Pair{Key: "level", Value: structlog.FnValue(func(r *structlog.Record) any {
			return r.Level.String()
		})},
		structlog.Pair{Key: "msg", Value: structlog.FnValue(func(r *structlog.Record) any {
			return r.Msg
		})},
	}
}

// New creates a JSON drain writing to w.
func New(w io.Writer, opts ...Option) *Drain {
	d := &Drain{
		w:        w,
		newlines: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Default creates a JSON drain with the default keys attached.
func Default(w io.Writer) *Drain {
	return New(w, WithDefaultKeys())
}

// NewEncoder creates a drain meant only for Marshal: it has no writer and no
// trailing newlines. Transport drains use it to turn records into payloads.
func NewEncoder(opts ...Option) *Drain {
	return New(io.Discard, append([]Option{WithNewlines(false)}, opts...)...)
}

func (d *Drain) encode(buf *bytes.Buffer, rec *structlog.Record, logger structlog.KV) error {
	ser := &objectSerializer{buf: buf, pretty: d.pretty}
	ser.begin()

	if err := d.kv.Serialize(rec, ser); err != nil {
		return errors.Wrap(err, "unable to serialize drain values")
	}
	if logger != nil {
		if err := logger.Serialize(rec, ser); err != nil {
			return errors.Wrap(err, "unable to serialize logger values")
		}
	}
	if kv := rec.KV(); kv != nil {
		if err := kv.Serialize(rec, ser); err != nil {
			return errors.Wrap(err, "unable to serialize record values")
		}
	}

	ser.end()
	if d.newlines {
		buf.WriteByte('\n')
	}

	return nil
}

// Log encodes rec and writes it out.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := d.encode(buf, rec, logger); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "unable to write record")
	}
	if d.flush {
		if f, ok := d.w.(flusher); ok {
			if err := f.Flush(); err != nil {
				return errors.Wrap(err, "unable to flush writer")
			}
		}
	}

	return nil
}

// Marshal encodes rec without writing it. The drain's newline setting
// applies to the returned payload.
func (d *Drain) Marshal(rec *structlog.Record, logger structlog.KV) ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := d.encode(buf, rec, logger); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

var _ structlog.Drain = (*Drain)(nil)
