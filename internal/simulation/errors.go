package simulation

import (
	"errors"
	"fmt"
)

// Kind classifies why a simulation request failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindInvalidMode
	KindInvalidVariable
	KindMissingOutputKey
	KindSolverFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidMode:
		return "invalid_mode"
	case KindInvalidVariable:
		return "invalid_variable"
	case KindMissingOutputKey:
		return "missing_output_key"
	case KindSolverFailure:
		return "solver_failure"
	default:
		return "unknown"
	}
}

// Error is returned by Runner.Run for every failed request.
type Error struct {
	Kind Kind
	// Key names the offending variable for KindInvalidVariable and KindMissingOutputKey.
	Key string
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidVariable:
		return fmt.Sprintf("'%s' is not a valid y-axis variable.", e.Key)
	case KindMissingOutputKey:
		return fmt.Sprintf("Variable not found: '%s'", e.Key)
	case KindSolverFailure:
		return "Server error: " + e.detail()
	default:
		return e.detail()
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) detail() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

// KindOf extracts the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
