package sysinfo

import "errors"

var (
	// ErrUnsupported marks a probe that has no implementation on this platform.
	ErrUnsupported = errors.New("not supported on this platform")

	errNoValue = errors.New("no value")
)

// Result is the outcome of a single probe: either a value or the reason the
// value could not be obtained. An unavailable Result never carries a partial
// value. The zero Result is unavailable.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Available wraps a successfully probed value.
func Available[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Unavailable records why a probe failed.
func Unavailable[T any](err error) Result[T] {
	if err == nil {
		err = errNoValue
	}
	return Result[T]{err: err}
}

// From converts a conventional (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Unavailable[T](err)
	}
	return Available(v)
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// OK reports whether the probe succeeded.
func (r Result[T]) OK() bool { return r.ok }

// Err returns the failure reason, or nil for an available result.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return errNoValue
	}
	return r.err
}
