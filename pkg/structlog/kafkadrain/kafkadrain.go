// Package kafkadrain ships log records to a Kafka topic. Records are
// encoded as JSON payloads, one message per record.
package kafkadrain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/nessig/go-structlog/pkg/structlog"
	"github.com/nessig/go-structlog/pkg/structlog/jsondrain"
)

var (
	ErrClientMustBeSet = errors.New("client must be set")
	ErrTopicMustBeSet  = errors.New("topic must be set")
)

// Encoder turns a record into a message payload.
type Encoder func(rec *structlog.Record, logger structlog.KV) ([]byte, error)

// Drain produces one Kafka message per record. Production is synchronous so
// delivery failures surface to the caller; put an asyncdrain in front when
// logging must not block on the broker.
type Drain struct {
	client       *kgo.Client
	topic        string
	encode       Encoder
	keyFromLevel bool
}

// Option configures a Drain.
type Option func(d *Drain)

// WithEncoder replaces the default JSON encoder.
func WithEncoder(enc Encoder) Option {
	return func(d *Drain) {
		d.encode = enc
	}
}

// WithKeyFromLevel keys messages by level name so records of one level land
// on one partition.
func WithKeyFromLevel() Option {
	return func(d *Drain) {
		d.keyFromLevel = true
	}
}

// New creates a Kafka drain producing to topic.
func New(client *kgo.Client, topic string, opts ...Option) (*Drain, error) {
	if client == nil {
		return nil, ErrClientMustBeSet
	}
	if topic == "" {
		return nil, ErrTopicMustBeSet
	}

	d := &Drain{
		client: client,
		topic:  topic,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.encode == nil {
		d.encode = jsondrain.NewEncoder(jsondrain.WithDefaultKeys()).Marshal
	}

	return d, nil
}

// Log encodes rec and produces it, under the record's context when set.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	payload, err := d.encode(rec, logger)
	if err != nil {
		return errors.Wrap(err, "unable to encode record")
	}

	ctx := rec.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	msg := &kgo.Record{
		Topic: d.topic,
		Value: payload,
	}
	if d.keyFromLevel {
		msg.Key = []byte(rec.Level.String())
	}

	if err := d.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		return errors.Wrapf(err, "unable to produce to %s", d.topic)
	}

	return nil
}

var _ structlog.Drain = (*Drain)(nil)
