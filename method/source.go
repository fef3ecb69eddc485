package method

import "errors"

// ErrUnknownCallable is returned when a callable has no entry in the implementation registry
var ErrUnknownCallable = errors.New("unknown callable")

// Source provides read access to an implementation registry. Both operations return
// an error wrapping ErrUnknownCallable when callable has no entry.
type Source interface {
	// All returns every known implementation of callable
	All(callable string) ([]*Record, error)

	// Matching returns the implementations of callable that accept the supplied shape.
	// The shape excludes the leading slot.
	Matching(callable string, shape Signature) ([]*Record, error)
}
