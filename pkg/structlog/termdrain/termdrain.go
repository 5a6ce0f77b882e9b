// Package termdrain writes log records as human-readable lines, with the
// level name colored when the output supports it.
package termdrain

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"

	"github.com/nessig/go-structlog/pkg/structlog"
)

const defaultTimeFormat = "2006-01-02 15:04:05.000"

var levelColors map[structlog.Level]*colors.RGBColor

func init() {
	levelColors = make(map[structlog.Level]*colors.RGBColor)
	for lvl, rgb := range map[structlog.Level][3]uint8{
		structlog.LevelCritical: {255, 0, 255},
		structlog.LevelError:    {255, 0, 0},
		structlog.LevelWarning:  {255, 255, 0},
		structlog.LevelInfo:     {0, 255, 0},
		structlog.LevelDebug:    {0, 255, 255},
		structlog.LevelTrace:    {0, 0, 255},
	} {
		c, err := colors.RGB(rgb[0], rgb[1], rgb[2]) //nolint
		if err != nil {
			continue
		}
		levelColors[lvl] = c
	}
}

// Drain formats records as "ts LEVEL msg key=value ...". It is safe for
// concurrent use.
type Drain struct {
	mu         sync.Mutex
	w          io.Writer
	color      bool
	timeFormat string
}

// Option configures a Drain.
type Option func(d *Drain)

// WithColor controls ANSI coloring of the level name. Enabled by default.
func WithColor(enabled bool) Option {
	return func(d *Drain) {
		d.color = enabled
	}
}

// WithTimeFormat sets the timestamp layout.
func WithTimeFormat(layout string) Option {
	return func(d *Drain) {
		d.timeFormat = layout
	}
}

// New creates a terminal drain writing to w.
func New(w io.Writer, opts ...Option) *Drain {
	d := &Drain{
		w:          w,
		color:      true,
		timeFormat: defaultTimeFormat,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Drain) level(lvl structlog.Level) string {
	name := lvl.String()
	if !d.color {
		return name
	}
	c, ok := levelColors[lvl]
	if !ok {
		return name
	}

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, name)
}

// Log formats rec and writes it out as a single line.
func (d *Drain) Log(rec *structlog.Record, logger structlog.KV) error {
	var buf bytes.Buffer
	buf.WriteString(rec.Time.Format(d.timeFormat))
	buf.WriteByte(' ')
	buf.WriteString(d.level(rec.Level))
	buf.WriteByte(' ')
	buf.WriteString(rec.Msg)

	ser := &textSerializer{buf: &buf}
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
	buf.WriteByte('\n')

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "unable to write record")
	}

	return nil
}

// textSerializer appends " key=value" tokens.
type textSerializer struct {
	buf *bytes.Buffer
}

func (ts *textSerializer) emit(key, val string) error {
	ts.buf.WriteByte(' ')
	ts.buf.WriteString(key)
	ts.buf.WriteByte('=')
	ts.buf.WriteString(val)

	return nil
}

func quoteIfNeeded(val string) string {
	if strings.ContainsAny(val, " \t\n\"=") {
		return strconv.Quote(val)
	}

	return val
}

func (ts *textSerializer) EmitBool(key string, val bool) error {
	return ts.emit(key, strconv.FormatBool(val))
}

func (ts *textSerializer) EmitInt64(key string, val int64) error {
	return ts.emit(key, strconv.FormatInt(val, 10))
}

func (ts *textSerializer) EmitUint64(key string, val uint64) error {
	return ts.emit(key, strconv.FormatUint(val, 10))
}

func (ts *textSerializer) EmitFloat64(key string, val float64) error {
	return ts.emit(key, strconv.FormatFloat(val, 'g', -1, 64))
}

func (ts *textSerializer) EmitString(key string, val string) error {
	return ts.emit(key, quoteIfNeeded(val))
}

func (ts *textSerializer) EmitTime(key string, val time.Time) error {
	return ts.emit(key, val.Format(time.RFC3339Nano))
}

func (ts *textSerializer) EmitNone(key string) error {
	return ts.emit(key, "<nil>")
}

func (ts *textSerializer) EmitAny(key string, val any) error {
	return ts.emit(key, quoteIfNeeded(fmt.Sprint(val)))
}

var (
	_ structlog.Drain      = (*Drain)(nil)
	_ structlog.Serializer = (*textSerializer)(nil)
)
