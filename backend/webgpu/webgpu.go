// Package webgpu exposes the GPU image backend built on WebGPU compute
// shaders.
package webgpu

import (
	internalwebgpu "github.com/WK-Heisenberg/albumentations/internal/backend/webgpu"
	"github.com/WK-Heisenberg/albumentations/tensor"
)

// Backend is the WebGPU implementation of the float32 augmentation
// primitives. Callers normalize integer images first, as the dtype
// decorators in the augment package do.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.ImageBackend.
var _ tensor.ImageBackend = (*Backend)(nil)

// New creates a WebGPU backend on the default adapter. Returns an error
// when no WebGPU runtime or adapter is available.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be acquired.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
