package jsondrain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/nessig/go-structlog/pkg/structlog"
)

// objectSerializer streams one JSON map. Streaming keeps duplicate keys
// intact, which a map-based encoder would silently collapse.
type objectSerializer struct {
	buf    *bytes.Buffer
	pretty bool
	n      int
}

func (o *objectSerializer) begin() {
	o.buf.WriteByte('{')
}

func (o *objectSerializer) end() {
	if o.pretty && o.n > 0 {
		o.buf.WriteByte('\n')
	}
	o.buf.WriteByte('}')
}

func (o *objectSerializer) writeKey(key string) error {
	if o.n > 0 {
		o.buf.WriteByte(',')
	}
	if o.pretty {
		o.buf.WriteString("\n  ")
	}

	kb, err := json.Marshal(key)
	if err != nil {
		return errors.Wrapf(err, "unable to encode key %q", key)
	}
	o.buf.Write(kb)

	if o.pretty {
		o.buf.WriteString(": ")
	} else {
		o.buf.WriteByte(':')
	}

	return nil
}

func (o *objectSerializer) emit(key string, val any) error {
	if err := o.writeKey(key); err != nil {
		return err
	}

	vb, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "unable to encode value of %q", key)
	}
	o.buf.Write(vb)
	o.n++

	return nil
}

func (o *objectSerializer) EmitBool(key string, val bool) error {
	return o.emit(key, val)
}

func (o *objectSerializer) EmitInt64(key string, val int64) error {
	return o.emit(key, val)
}

func (o *objectSerializer) EmitUint64(key string, val uint64) error {
	return o.emit(key, val)
}

func (o *objectSerializer) EmitFloat64(key string, val float64) error {
	return o.emit(key, val)
}

func (o *objectSerializer) EmitString(key string, val string) error {
	return o.emit(key, val)
}

func (o *objectSerializer) EmitTime(key string, val time.Time) error {
	return o.emit(key, val.Format(time.RFC3339Nano))
}

func (o *objectSerializer) EmitNone(key string) error {
	if err := o.writeKey(key); err != nil {
		return err
	}
	o.buf.WriteString("null")
	o.n++

	return nil
}

var _ structlog.Serializer = (*objectSerializer)(nil)
