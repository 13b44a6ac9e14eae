package mesh

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every builder parameter error.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected builder parameter.
type ArgumentError struct {
	Op     string
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("mesh: %s: %s %s", e.Op, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(op, arg, format string, args ...any) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: fmt.Sprintf(format, args...)}
}
