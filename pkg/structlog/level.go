package structlog

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the severity of a log record. Lower values are more severe.
type Level int8

const (
	LevelCritical Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

// String returns the four-letter level name used in log output.
func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "CRIT"
	case LevelError:
		return "ERRO"
	case LevelWarning:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBG"
	case LevelTrace:
		return "TRCE"
	}

	return "UNKN"
}

// ParseLevel converts a level name to a Level. It accepts both the short
// four-letter form and the full name, case-insensitively.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CRIT", "CRITICAL":
		return LevelCritical, nil
	case "ERRO", "ERROR":
		return LevelError, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "INFO":
		return LevelInfo, nil
	case "DEBG", "DEBUG":
		return LevelDebug, nil
	case "TRCE", "TRACE":
		return LevelTrace, nil
	}

	return LevelInfo, errors.Wrap(ErrUnknownLevel, name)
}
