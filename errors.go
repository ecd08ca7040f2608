package vecpath

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterRange is the cause of precondition errors for curve parameters
	// outside of [0, 1].
	ErrParameterRange = errors.New("parameter outside of [0, 1]")
	// ErrOpenPath is the cause of precondition errors for operations that need
	// every subpath to be closed.
	ErrOpenPath = errors.New("path is not closed")
	// ErrSelfIntersecting is the cause of precondition errors for operations
	// that reject paths crossing themselves.
	ErrSelfIntersecting = errors.New("path intersects itself")
	// ErrEmptyPath is the cause of precondition errors for operations that need
	// at least one segment.
	ErrEmptyPath = errors.New("path has no segments")
	// ErrMultipleSubpaths is the cause of precondition errors for operations
	// that only support a single subpath.
	ErrMultipleSubpaths = errors.New("path has more than one subpath")
)

// PreconditionError is returned when an operation is called with arguments it
// doesn't support. Err is one of the Err* variables of this package, so callers
// can test for specific causes with [errors.Is].
type PreconditionError struct {
	// Op names the failing operation, for example "Union" or "Split".
	Op  string
	Err error
	// Detail is optional additional context.
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("vecpath: %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("vecpath: %s: %s: %s", e.Op, e.Err, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func precondition(op string, err error, detail string, args ...any) *PreconditionError {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &PreconditionError{Op: op, Err: err, Detail: detail}
}

// ParseError describes malformed path text.
type ParseError struct {
	// Offset is the byte offset into the input at which the problem was found.
	Offset int
	// Command is the command being parsed, or 0 if the error occurred before
	// the first command.
	Command byte
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("vecpath: bad path at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("vecpath: bad path at offset %d in command '%c': %s", e.Offset, e.Command, e.Msg)
}
