package cpu

import (
	"fmt"
	"math"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Cast converts the tensor to another dtype. Values are rounded and
// saturated when narrowing to uint8.
func (cpu *CPUBackend) Cast(t *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if t.DType() == dtype {
		return t.Clone()
	}
	out := tensor.MustRaw(t.Shape(), dtype, cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		castKernel(out, t.AsUint8())
	case tensor.Float32:
		castKernel(out, t.AsFloat32())
	case tensor.Float64:
		castKernel(out, t.AsFloat64())
	default:
		panic(fmt.Sprintf("cast: unsupported dtype %s", t.DType()))
	}
	return out
}

func castKernel[S tensor.DType](out *tensor.RawTensor, src []S) {
	switch out.DType() {
	case tensor.Uint8:
		dst := out.AsUint8()
		for i, v := range src {
			dst[i] = fromFloat[uint8](float64(v))
		}
	case tensor.Float32:
		dst := out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		dst := out.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", out.DType()))
	}
}

// mapElems applies f element-wise into a fresh tensor of the same dtype.
func mapElems[T tensor.DType](out, in []T, f func(T) T) {
	for i, v := range in {
		out[i] = f(v)
	}
}

func (cpu *CPUBackend) elementwise(t *tensor.RawTensor, name string, f func(float64) float64) *tensor.RawTensor {
	out := tensor.MustRaw(t.Shape(), t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		mapElems(out.AsUint8(), t.AsUint8(), func(v uint8) uint8 { return fromFloat[uint8](f(float64(v))) })
	case tensor.Float32:
		mapElems(out.AsFloat32(), t.AsFloat32(), func(v float32) float32 { return float32(f(float64(v))) })
	case tensor.Float64:
		mapElems(out.AsFloat64(), t.AsFloat64(), f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, t.DType()))
	}
	return out
}

// Clamp limits every element to [lo, hi].
func (cpu *CPUBackend) Clamp(t *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	return cpu.elementwise(t, "clamp", func(v float64) float64 {
		return math.Min(math.Max(v, lo), hi)
	})
}

// Round rounds every element to the nearest integer value. Integer tensors
// are returned as copies.
func (cpu *CPUBackend) Round(t *tensor.RawTensor) *tensor.RawTensor {
	if t.DType() == tensor.Uint8 {
		return t.Clone()
	}
	return cpu.elementwise(t, "round", math.Round)
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(t *tensor.RawTensor, s float64) *tensor.RawTensor {
	return cpu.elementwise(t, "mulscalar", func(v float64) float64 { return v * s })
}

// AddScalar adds s to every element.
func (cpu *CPUBackend) AddScalar(t *tensor.RawTensor, s float64) *tensor.RawTensor {
	return cpu.elementwise(t, "addscalar", func(v float64) float64 { return v + s })
}
