package class

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidMethod is the sentinel behind ConfigError. It is returned (wrapped)
	// by Create when a method entry cannot be turned into a callable.
	ErrInvalidMethod = errors.New("class: invalid method definition")

	// ErrExplicitParent is the sentinel behind UsageError. Only the root Factory
	// accepts an explicit parent; a Class is always the parent of what it creates.
	ErrExplicitParent = errors.New("class: explicit parent only accepted by the root factory")

	// ErrDuplicateClass is returned when a class name is already taken within a Factory.
	ErrDuplicateClass = errors.New("class: duplicate class name")

	// ErrDisposed is the sentinel behind LifecycleError.
	ErrDisposed = errors.New("class: instance used after disposal")

	// ErrTrackingDisabled is returned by Dispose when the instance's class does not
	// track instances.
	ErrTrackingDisabled = errors.New("class: instance tracking disabled")

	// ErrMissingMethod is the sentinel behind MissingMethodError.
	ErrMissingMethod = errors.New("class: method not defined")
)

// ConfigError reports a malformed entry in a method map.
type ConfigError struct {
	// Method is the offending key of the method map.
	Method string

	// Reason is a short human readable cause.
	Reason string
}

// Error implements the error interface.
func (e ConfigError) Error() string {
	// Example: class: invalid method "speak": nil handler
	return "class: invalid method " + strconv.Quote(e.Method) + ": " + e.Reason
}

// Unwrap allows errors.Is(err, ErrInvalidMethod).
func (e ConfigError) Unwrap() error { return ErrInvalidMethod }

// UsageError is returned when Create is called on a Class with an explicit parent.
type UsageError struct{ Class string }

// Error implements the error interface.
func (e UsageError) Error() string {
	return "class: create on " + strconv.Quote(e.Class) + " does not accept an explicit parent"
}

// Unwrap allows errors.Is(err, ErrExplicitParent).
func (e UsageError) Unwrap() error { return ErrExplicitParent }

// DuplicateClassError is returned when WithName reuses a name of the same Factory.
type DuplicateClassError struct{ Name string }

// Error implements the error interface.
func (e DuplicateClassError) Error() string {
	return "class: duplicate class name " + strconv.Quote(e.Name)
}

// Unwrap allows errors.Is(err, ErrDuplicateClass).
func (e DuplicateClassError) Unwrap() error { return ErrDuplicateClass }

// LifecycleError is returned by operations attempted on a disposed instance.
type LifecycleError struct {
	// Op names the attempted operation, e.g. `call "speak"`.
	Op string

	// ID is the id the instance had while registered.
	ID uint64
}

// Error implements the error interface.
func (e LifecycleError) Error() string {
	// Example: class: instance 3 used after disposal (call "speak")
	return "class: instance " + strconv.FormatUint(e.ID, 10) + " used after disposal (" + e.Op + ")"
}

// Unwrap allows errors.Is(err, ErrDisposed).
func (e LifecycleError) Unwrap() error { return ErrDisposed }

// MissingMethodError is returned by Call and Super thunks when the target class
// has no method with the requested name.
type MissingMethodError struct {
	Class  string
	Method string
}

// Error implements the error interface.
func (e MissingMethodError) Error() string {
	return "class: " + strconv.Quote(e.Class) + " has no method " + strconv.Quote(e.Method)
}

// Unwrap allows errors.Is(err, ErrMissingMethod).
func (e MissingMethodError) Unwrap() error { return ErrMissingMethod }
