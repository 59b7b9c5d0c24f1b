package augment

import (
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// TensorFunc is a geometric operation over a single tensor. The decorators
// below adapt generic tensor functions to image dtype and shape
// conventions, mirroring how the transforms call the float-only primitives.
type TensorFunc func(*tensor.RawTensor) *tensor.RawTensor

// OnFloatImage adapts a float-only primitive to uint8 images: the input is
// normalized to [0, 1] float32 before f runs, and the result is rescaled,
// rounded, clamped to [0, 255] and cast back. Float inputs pass through
// unchanged.
func OnFloatImage(b tensor.ImageBackend, f TensorFunc) TensorFunc {
	return func(t *tensor.RawTensor) *tensor.RawTensor {
		if t.DType() != tensor.Uint8 {
			return f(t)
		}
		tmp := b.MulScalar(b.Cast(t, tensor.Float32), 1.0/255.0)
		out := f(tmp)
		out = b.Clamp(b.Round(b.MulScalar(out, 255.0)), 0, 255)
		return b.Cast(out, tensor.Uint8)
	}
}

// Clipped clamps the result of f into the value range conventional for the
// input dtype ([0, 255] for uint8, [0, 1] for floats).
func Clipped(b tensor.ImageBackend, f TensorFunc) TensorFunc {
	return func(t *tensor.RawTensor) *tensor.RawTensor {
		maxval := t.DType().MaxValue()
		return b.Clamp(f(t), 0, maxval)
	}
}

// PreserveShape restores the exact input shape after f runs. Used with
// primitives that keep the element count but may expand or squeeze
// singleton dimensions internally.
func PreserveShape(f TensorFunc) TensorFunc {
	return func(t *tensor.RawTensor) *tensor.RawTensor {
		shape := t.Shape().Clone()
		out := f(t)
		restored, err := out.WithShape(shape)
		if err != nil {
			panic(err)
		}
		return restored
	}
}

// OnRank3 expands a rank-2 tensor to (1, H, W) before f runs and squeezes
// the result back to the input rank. Rank-3 inputs pass straight through.
// This is how rank-2 masks reach the rank-3 spatial primitives.
func OnRank3(f TensorFunc) TensorFunc {
	return func(t *tensor.RawTensor) *tensor.RawTensor {
		shape := t.Shape()
		if len(shape) >= 3 {
			return f(t)
		}
		expanded, err := t.WithShape(tensor.Shape{1, shape[0], shape[1]})
		if err != nil {
			panic(err)
		}
		out := f(expanded)
		outShape := out.Shape()
		squeezed, err := out.WithShape(outShape[len(outShape)-2:])
		if err != nil {
			panic(err)
		}
		return squeezed
	}
}

// OnRank4 expands rank-2 or rank-3 input to (1, C, H, W) before f runs and
// restores the original rank afterwards. Kept for batch-shaped primitives
// that operate on (N, C, H, W).
func OnRank4(f TensorFunc) TensorFunc {
	return func(t *tensor.RawTensor) *tensor.RawTensor {
		shape := t.Shape()
		rank := len(shape)
		if rank >= 4 {
			return f(t)
		}

		expanded := shape.Clone()
		for len(expanded) < 4 {
			expanded = append(tensor.Shape{1}, expanded...)
		}
		in, err := t.WithShape(expanded)
		if err != nil {
			panic(err)
		}
		out := f(in)
		outShape := out.Shape()
		restored, err := out.WithShape(outShape[len(outShape)-rank:])
		if err != nil {
			panic(err)
		}
		return restored
	}
}
