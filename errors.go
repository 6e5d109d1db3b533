package gridinterp

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// use errors.Is without caring about the details.
var (
	// ErrConfiguration is returned for static usage errors: unsupported
	// interpolation order, more than one vertical target, bad options.
	ErrConfiguration = errors.New("configuration error")

	// ErrShapeMismatch is returned when an array does not have a rank or
	// shape the operation accepts.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrCoordNotFound is returned when a coordinate lookup by name or axis fails.
	ErrCoordNotFound = errors.New("coordinate not found")

	// ErrOutOfBounds is returned by the point interpolator when the
	// extrapolation policy is "error" and a target lies outside an axis.
	ErrOutOfBounds = errors.New("point outside coordinate bounds")
)

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrConfiguration, e.Param, e.Value, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// ShapeError describes an array whose shape was rejected.
type ShapeError struct {
	Name string
	Got  []int
	Want string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has shape %v, want %s", ErrShapeMismatch, e.Name, e.Got, e.Want)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

func configErr(param string, value any, format string, args ...any) error {
	return &ConfigError{Param: param, Value: value, Reason: fmt.Sprintf(format, args...)}
}

func shapeErr(name string, got []int, format string, args ...any) error {
	return &ShapeError{Name: name, Got: append([]int(nil), got...), Want: fmt.Sprintf(format, args...)}
}
