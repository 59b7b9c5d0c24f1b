// Package cpu implements the CPU image backend with multi-core row kernels.
package cpu

import (
	"fmt"

	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// CPUBackend implements the image primitives on the host CPU for all
// supported dtypes. Row loops of the resampling kernels fan out over a
// worker pool.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

var _ tensor.ImageBackend = (*CPUBackend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with explicit parallel settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// dims3 extracts the (C, H, W) extents of a rank-3 tensor.
// Panics on any other rank; rank adaptation happens in the caller.
func dims3(t *tensor.RawTensor) (c, h, w int) {
	shape := t.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("expected rank-3 (C, H, W) tensor, got shape %v", shape))
	}
	return shape[0], shape[1], shape[2]
}

// fromFloat converts a sampled float value to the element type, rounding
// and saturating for the integer dtype.
func fromFloat[T tensor.DType](v float64) T {
	var zero T
	if _, ok := any(zero).(uint8); ok {
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		v += 0.5
	}
	return T(v)
}
