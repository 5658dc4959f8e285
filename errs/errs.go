// Package errs classifies the failures of jet computations.
//
// Every error returned by packages algebra and jets is an *Error carrying
// one of four kinds. Callers test the kind with errors.Is against the
// sentinel values below; the underlying cause, when there is one, stays
// reachable through errors.Unwrap.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the classification of a failure.
type Kind int

const (
	// Configuration marks a malformed ring, order, or input specification.
	Configuration Kind = iota + 1
	// DimensionMismatch marks an order that exceeds a ring's truncation depth.
	DimensionMismatch
	// NoSmoothPoint marks an ideal whose Jacobian witnesses no smooth point.
	NoSmoothPoint
	// Engine marks a failed or aborted algebra engine operation.
	Engine
)

// String returns the name used in messages and logs.
func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case DimensionMismatch:
		return "DimensionMismatch"
	case NoSmoothPoint:
		return "NoSmoothPointCandidate"
	case Engine:
		return "EngineFailure"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrConfiguration          = errors.New("configuration error")
	ErrDimensionMismatch      = errors.New("dimension mismatch")
	ErrNoSmoothPointCandidate = errors.New("no smooth point candidate")
	ErrEngineFailure          = errors.New("engine failure")
)

func (k Kind) sentinel() error {
	switch k {
	case Configuration:
		return ErrConfiguration
	case DimensionMismatch:
		return ErrDimensionMismatch
	case NoSmoothPoint:
		return ErrNoSmoothPointCandidate
	case Engine:
		return ErrEngineFailure
	}
	return nil
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "jets.HasseSchmidt".
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Configf returns a Configuration error.
func Configf(op, format string, args ...any) error {
	return &Error{Kind: Configuration, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Dimensionf returns a DimensionMismatch error.
func Dimensionf(op, format string, args ...any) error {
	return &Error{Kind: DimensionMismatch, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NoSmoothPointf returns a NoSmoothPoint error.
func NoSmoothPointf(op, format string, args ...any) error {
	return &Error{Kind: NoSmoothPoint, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// EngineErr wraps cause as an Engine failure. Already classified errors
// pass through unchanged so that a failure keeps its original kind.
func EngineErr(op string, cause error) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	return &Error{Kind: Engine, Op: op, Err: cause}
}

// Enginef returns an Engine failure without an underlying cause.
func Enginef(op, format string, args ...any) error {
	return &Error{Kind: Engine, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
