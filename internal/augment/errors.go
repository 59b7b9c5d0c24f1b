// Package augment implements tensor-based image augmentation: parameter
// samplers, geometric transforms and the compose pipeline.
package augment

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidConfiguration reports transform parameters that are
	// incompatible with the input, e.g. a crop larger than the image or a
	// degenerate grid. Never retried; the call fails atomically.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedCapability reports a target type requested from a
	// transform that does not implement it. Detected when the pipeline is
	// constructed, not per call.
	ErrUnsupportedCapability = errors.New("unsupported capability")

	// ErrDeviceMismatch reports payload tensors that do not reside on the
	// pipeline backend's device.
	ErrDeviceMismatch = errors.New("device mismatch")
)

// ConfigError carries the transform name and detail for an
// ErrInvalidConfiguration failure.
type ConfigError struct {
	Transform string
	Details   string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Transform != "" {
		return fmt.Sprintf("invalid configuration: %s: %s", e.Transform, e.Details)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Details)
}

// Unwrap makes ConfigError match ErrInvalidConfiguration in errors.Is.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func configErrorf(transform, format string, args ...any) error {
	return &ConfigError{Transform: transform, Details: fmt.Sprintf(format, args...)}
}
