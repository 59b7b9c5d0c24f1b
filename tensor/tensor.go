// Package tensor is the public API for the tensor types of the
// augmentation library.
//
// It re-exports the internal tensor package: channel-first image tensors
// (RawTensor plus the generic Tensor wrapper) and the ImageBackend
// interface both compute backends implement.
//
// Example:
//
//	backend := cpu.New()
//	img := tensor.Zeros[uint8](tensor.Shape{3, 256, 256}, backend)
//	out := backend.FlipH(img.Raw())
package tensor

import (
	"image"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// DType is a constraint for supported pixel data types.
type DType = tensor.DType

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Data type constants.
const (
	Uint8   DataType = tensor.Uint8
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor, spatial dimensions last.
type Shape = tensor.Shape

// Interp selects the interpolation used by geometric primitives.
type Interp = tensor.Interp

// Interpolation constants.
const (
	InterpNearest  Interp = tensor.InterpNearest
	InterpBilinear Interp = tensor.InterpBilinear
)

// BorderMode selects how out-of-bounds samples are produced.
type BorderMode = tensor.BorderMode

// Border mode constants.
const (
	BorderConstant  BorderMode = tensor.BorderConstant
	BorderReflect   BorderMode = tensor.BorderReflect
	BorderReplicate BorderMode = tensor.BorderReplicate
	BorderCircular  BorderMode = tensor.BorderCircular
)

// ParseBorderMode converts a configuration string into a BorderMode.
func ParseBorderMode(s string) (BorderMode, bool) {
	return tensor.ParseBorderMode(s)
}

// TileMove relocates the content of one grid tile into another tile of the
// same size.
type TileMove = tensor.TileMove

// RawTensor is the low-level tensor representation: an untyped contiguous
// buffer plus shape, dtype and device metadata.
type RawTensor = tensor.RawTensor

// Tensor is a typed convenience wrapper around RawTensor.
type Tensor[T DType] = tensor.Tensor[T]

// ImageBackend is the set of geometric and element-wise primitives the
// augmentation layer delegates to.
type ImageBackend = tensor.ImageBackend

// NewRaw creates a new zero-initialized RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// MustRaw is NewRaw that panics on invalid shape.
func MustRaw(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.MustRaw(shape, dtype, device)
}

// New creates a Tensor from a RawTensor and backend.
func New[T DType](raw *RawTensor, b ImageBackend) *Tensor[T] {
	return tensor.New[T](raw, b)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape, b ImageBackend) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape, b ImageBackend) *Tensor[T] {
	return tensor.Zeros[T](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType](shape Shape, value T, b ImageBackend) *Tensor[T] {
	return tensor.Full(shape, value, b)
}

// FromImage converts a decoded image into a rank-3 (3, H, W) uint8 tensor
// in RGB channel order.
func FromImage(img image.Image, device Device) *RawTensor {
	return tensor.FromImage(img, device)
}

// ToImage converts a rank-3 (1 or 3, H, W) uint8 tensor into an NRGBA image.
func ToImage(t *RawTensor) (*image.NRGBA, error) {
	return tensor.ToImage(t)
}
