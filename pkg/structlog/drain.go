package structlog

import "github.com/pkg/errors"

// Drain consumes log records. The logger values of the emitting logger are
// passed alongside the record so the drain decides where they end up in the
// output.
//
// Drains must be safe for concurrent use.
type Drain interface {
	Log(rec *Record, logger KV) error
}

// DrainFunc adapts a function to the Drain interface.
type DrainFunc func(rec *Record, logger KV) error

func (f DrainFunc) Log(rec *Record, logger KV) error {
	return f(rec, logger)
}

// Discard drops every record.
var Discard Drain = DrainFunc(func(*Record, KV) error { return nil })

// Tee duplicates every record to all drains. A failing drain does not stop
// delivery to its siblings; the first error is returned once all drains have
// seen the record.
func Tee(drains ...Drain) Drain {
	return DrainFunc(func(rec *Record, logger KV) error {
		var firstErr error
		for _, d := range drains {
			if d == nil {
				continue
			}
			if err := d.Log(rec, logger); err != nil && firstErr == nil {
				firstErr = errors.Wrap(err, "tee")
			}
		}

		return firstErr
	})
}

// LevelFilter passes only records at least as severe as min to next.
func LevelFilter(next Drain, min Level) Drain {
	return DrainFunc(func(rec *Record, logger KV) error {
		if rec.Level > min {
			return nil
		}

		return next.Log(rec, logger)
	})
}
