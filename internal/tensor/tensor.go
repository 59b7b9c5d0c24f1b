package tensor

import "fmt"

// Tensor is a typed convenience wrapper around RawTensor.
//
// Example:
//
//	backend := cpu.New()
//	img := tensor.Zeros[uint8](tensor.Shape{3, 256, 256}, backend)
//	out := backend.FlipH(img.Raw())
type Tensor[T DType] struct {
	raw     *RawTensor
	backend ImageBackend
}

// New creates a Tensor from a RawTensor and backend.
// Panics if the raw tensor's dtype does not match T.
func New[T DType](raw *RawTensor, b ImageBackend) *Tensor[T] {
	var dummy T
	if dtype := inferDataType(dummy); dtype != raw.DType() {
		panic(fmt.Sprintf("raw tensor dtype is %s, want %s", raw.DType(), dtype))
	}
	return &Tensor[T]{raw: raw, backend: b}
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape, b ImageBackend) (*Tensor[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		return nil, err
	}

	t := &Tensor[T]{raw: raw, backend: b}
	copy(t.Data(), data)
	return t, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape, b ImageBackend) *Tensor[T] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}
	return &Tensor[T]{raw: raw, backend: b}
}

// Full creates a tensor filled with a specific value.
func Full[T DType](shape Shape, value T, b ImageBackend) *Tensor[T] {
	t := Zeros[T](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return t.raw.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T]) Device() Device {
	return t.raw.Device()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[T]) Backend() ImageBackend {
	return t.backend
}

// Data returns a typed slice view of the tensor's data (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	var dummy T
	switch any(dummy).(type) {
	case uint8:
		return any(t.raw.AsUint8()).([]T)
	case float32:
		return any(t.raw.AsFloat32()).([]T)
	case float64:
		return any(t.raw.AsFloat64()).([]T)
	default:
		panic("unsupported type")
	}
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) At(indices ...int) T {
	return t.Data()[t.flatIndex(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.Data()[t.flatIndex(indices)] = value
}

func (t *Tensor[T]) flatIndex(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}
	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone creates a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{raw: t.raw.Clone(), backend: t.backend}
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T]) String() string {
	return t.raw.String()
}
