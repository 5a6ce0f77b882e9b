// Package redisdrain ships log records to a Redis list, the transport many
// log collectors consume from. Records are encoded as JSON and appended
// with RPUSH.
package redisdrain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nessig/go-structlog/pkg/structlog"
	"github.com/nessig/go-structlog/pkg/structlog/jsondrain"
)

var (
	ErrClientMustBeSet = errors.New("client must be set")
	ErrKeyMustBeSet    = errors.New("key must be set")
)

// Encoder turns a record into a list entry.
type Encoder func(rec *structlog.Record, logger structlog.KV) ([]byte, error)

// Drain appends one list entry per record.
type Drain struct {
	client redis.UniversalClient
	key    string
	maxLen int64
	encode Encoder
}

// Option configures a Drain.
type Option func(d *Drain)

// WithMaxLen caps the list length; older entries are trimmed away.
func WithMaxLen(n int64) Option {
	return func(d *Drain) {
		d.maxLen = n
	}
}

// WithEncoder replaces the default JSON encoder.
func WithEncoder(enc Encoder) Option {
	return func(d *Drain) {
		d.encode = enc
	}
}

// New creates a Redis drain appending to the list at key.
func New(client redis.UniversalClient, key string, opts ...Option) (*Drain, error) {
	if client == nil {
		return nil, ErrClientMustBeSet
	}
	if key == "" {
		return nil, ErrKeyMustBeSet
	}

	d := &Drain{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.encode == nil {
		d.encode = jsondrain.NewEncoder(jsondrain.WithDefaultKeys()).Marshal
	}

	return d, nil
}

// Log encodes rec and appends it to the list, trimming when a cap is set.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	payload, err := d.encode(rec, logger)
	if err != nil {
		return errors.Wrap(err, "unable to encode record")
	}

	ctx := rec.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if d.maxLen <= 0 {
		if err := d.client.RPush(ctx, d.key, payload).Err(); err != nil {
			return errors.Wrapf(err, "unable to push to %s", d.key)
		}

		return nil
	}

	pipe := d.client.TxPipeline()
	pipe.RPush(ctx, d.key, payload)
	pipe.LTrim(ctx, d.key, -d.maxLen, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "unable to push to %s", d.key)
	}

	return nil
}

var _ structlog.Drain = (*Drain)(nil)
