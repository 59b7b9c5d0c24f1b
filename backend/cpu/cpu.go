// Package cpu exposes the pure-Go CPU image backend.
package cpu

import (
	internalcpu "github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/tensor"
)

// Backend is the CPU implementation of every augmentation primitive. It
// supports uint8, float32 and float64 tensors.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.ImageBackend.
var _ tensor.ImageBackend = (*Backend)(nil)

// Config controls the parallelism of row-sliced kernels.
type Config = parallel.Config

// New creates a CPU backend with parallelism derived from the CPU count.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// Sequential returns a Config that keeps every kernel on the calling
// goroutine.
func Sequential() Config {
	return parallel.Sequential()
}
