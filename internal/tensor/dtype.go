// Package tensor provides the core tensor types for the augmentation library.
package tensor

// DType is a constraint for supported pixel data types.
type DType interface {
	~uint8 | ~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for image tensors.
const (
	Uint8 DataType = iota
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Uint8:
		return 1
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Uint8:
		return "uint8"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// MaxValue returns the conventional maximum pixel value for the data type.
// Float images are assumed to live in [0, 1].
func (dt DataType) MaxValue() float64 {
	if dt == Uint8 {
		return 255
	}
	return 1
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case uint8:
		return Uint8
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
