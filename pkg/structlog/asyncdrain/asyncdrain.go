// Package asyncdrain decouples logging from the sink: records are queued in
// a channel and delivered to the wrapped drain by background workers.
//
// With a single worker (the default) records reach the sink in logging
// order. More workers trade ordering for throughput.
package asyncdrain

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nessig/go-structlog/pkg/structlog"
)

const defaultBufferSize = 128

var (
	ErrNextMustBeSet = errors.New("next drain must be set")
	ErrClosed        = errors.New("drain is closed")
)

type msg struct {
	rec    *structlog.Record
	logger structlog.KV
}

// Drain buffers records in front of another drain.
type Drain struct {
	next    structlog.Drain
	queue   chan msg
	grp     *errgroup.Group
	drop    bool
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

type config struct {
	bufferSize int
	workers    int
	drop       bool
}

// Option configures a Drain.
type Option func(c *config)

// WithBufferSize sets the queue capacity.
func WithBufferSize(size int) Option {
	return func(c *config) {
		c.bufferSize = size
	}
}

// WithWorkers sets how many goroutines deliver records. More than one
// worker no longer preserves record order.
func WithWorkers(workers int) Option {
	return func(c *config) {
		c.workers = workers
	}
}

// WithDropWhenFull drops records instead of blocking when the queue is
// full. Dropped records are counted.
func WithDropWhenFull() Option {
	return func(c *config) {
		c.drop = true
	}
}

// New creates an async drain in front of next and starts its workers.
func New(next structlog.Drain, opts ...Option) (*Drain, error) {
	if next == nil {
		return nil, ErrNextMustBeSet
	}

	cfg := config{
		bufferSize: defaultBufferSize,
		workers:    1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bufferSize < 1 {
		cfg.bufferSize = defaultBufferSize
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}

	d := &Drain{
		next:  next,
		queue: make(chan msg, cfg.bufferSize),
		drop:  cfg.drop,
		grp:   &errgroup.Group{},
	}
	for i := 0; i < cfg.workers; i++ {
		d.grp.Go(d.work)
	}

	return d, nil
}

// work keeps consuming after a sink failure so the queue always empties;
// only the first error is kept.
func (d *Drain) work() error {
	var firstErr error
	for m := range d.queue {
		if err := d.next.Log(m.rec, m.logger); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "unable to deliver record")
		}
	}

	return firstErr
}

// Log enqueues the record. When the queue is full it blocks, unless the
// drain was built with WithDropWhenFull.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	m := msg{rec: rec, logger: logger}
	if d.drop {
		select {
		case d.queue <- m:
		default:
			d.dropped.Add(1)
		}

		return nil
	}

	d.queue <- m

	return nil
}

// Dropped reports how many records were discarded because the queue was
// full.
func (d *Drain) Dropped() uint64 {
	return d.dropped.Load()
}

// Close flushes the queue, stops the workers and returns the first delivery
// error. Records logged after Close are rejected with ErrClosed.
func (d *Drain) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	return d.grp.Wait()
}

var _ structlog.Drain = (*Drain)(nil)
