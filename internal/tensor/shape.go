package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// Images are rank-3 channel-first (C, H, W); masks are rank-2 (H, W) or
// rank-3 (C, H, W). The spatial dimensions are always the last two.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// HW returns the spatial (height, width) dimensions, i.e. the last two.
// Panics for tensors of rank < 2.
func (s Shape) HW() (int, int) {
	if len(s) < 2 {
		panic(fmt.Sprintf("shape %v has no spatial dimensions", s))
	}
	return s[len(s)-2], s[len(s)-1]
}

// Channels returns the channel count of a rank-3 (C, H, W) tensor,
// or 1 for a rank-2 (H, W) tensor.
func (s Shape) Channels() int {
	switch len(s) {
	case 2:
		return 1
	case 3:
		return s[0]
	default:
		panic(fmt.Sprintf("shape %v is not an image shape", s))
	}
}
