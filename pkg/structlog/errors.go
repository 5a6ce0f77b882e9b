package structlog

import "github.com/pkg/errors"

var (
	ErrDrainMustBeSet = errors.New("drain must be set")
	ErrUnknownLevel   = errors.New("unknown level")
)
