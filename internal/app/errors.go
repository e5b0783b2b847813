package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownOp indicates an operation name that ParseOp does not know.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrMissingArgument indicates an operation was given too few arguments.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidArgument indicates an argument that cannot be parsed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidUTF8 indicates UTF-8 input that is not well formed.
	// The engine does not repair malformed input, so it is rejected up front.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

	// ErrUnknownEncoding indicates an unsupported input.encoding value.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "replace", "split")
	Target string // Input being processed (e.g., file path, "<stdin>")
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
