// Package logconfig builds loggers from environment configuration, so
// deployments pick the output format and verbosity without code changes.
package logconfig

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/nessig/go-structlog/pkg/structlog"
	"github.com/nessig/go-structlog/pkg/structlog/asyncdrain"
	"github.com/nessig/go-structlog/pkg/structlog/jsondrain"
	"github.com/nessig/go-structlog/pkg/structlog/termdrain"
)

const (
	FormatJSON = "json"
	FormatTerm = "term"
)

var ErrUnknownFormat = errors.New("unknown format")

// Config holds the logging settings read from the environment.
type Config struct {
	Level       string
	Format      string
	Newlines    bool
	Pretty      bool
	Color       bool
	AsyncBuffer int
}

// Load reads the settings from LOG_* environment variables, falling back to
// JSON output at info level.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", FormatJSON)
	v.SetDefault("LOG_NEWLINES", true)
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("LOG_COLOR", true)
	v.SetDefault("LOG_ASYNC_BUFFER", 0)

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Level:       v.GetString("LOG_LEVEL"),
		Format:      v.GetString("LOG_FORMAT"),
		Newlines:    v.GetBool("LOG_NEWLINES"),
		Pretty:      v.GetBool("LOG_PRETTY"),
		Color:       v.GetBool("LOG_COLOR"),
		AsyncBuffer: v.GetInt("LOG_ASYNC_BUFFER"),
	}

	return cfg, nil
}

// Build assembles the drain described by cfg, writing to w. The returned
// close function flushes pending records when async buffering is on; it is
// a no-op otherwise.
func Build(cfg *Config, w io.Writer) (structlog.Drain, func() error, error) {
	level, err := structlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to parse level")
	}

	var drain structlog.Drain
	switch cfg.Format {
	case FormatJSON:
		opts := []jsondrain.Option{
			jsondrain.WithDefaultKeys(),
			jsondrain.WithNewlines(cfg.Newlines),
		}
		if cfg.Pretty {
			opts = append(opts, jsondrain.WithPretty())
		}
		drain = jsondrain.New(w, opts...)
	case FormatTerm:
		drain = termdrain.New(w, termdrain.WithColor(cfg.Color))
	default:
		return nil, nil, errors.Wrap(ErrUnknownFormat, cfg.Format)
	}

	closeFn := func() error { return nil }
	if cfg.AsyncBuffer > 0 {
		async, err := asyncdrain.New(drain, asyncdrain.WithBufferSize(cfg.AsyncBuffer))
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to buffer drain")
		}
		drain = async
		closeFn = async.Close
	}

	return structlog.LevelFilter(drain, level), closeFn, nil
}

// NewLogger is a convenience wrapper combining Build and structlog.New.
func NewLogger(cfg *Config, w io.Writer, kv ...structlog.KV) (*structlog.Logger, func() error, error) {
	drain, closeFn, err := Build(cfg, w)
	if err != nil {
		return nil, nil, err
	}

	log, err := structlog.New(drain, kv...)
	if err != nil {
		return nil, nil, err
	}

	return log, closeFn, nil
}
