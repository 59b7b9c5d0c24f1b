package cpu

import (
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// rawU8 builds a (C, H, W) uint8 tensor from a flat slice.
func rawU8(t *testing.T, shape tensor.Shape, data []uint8) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Uint8, tensor.CPU)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(r.AsUint8(), data)
	return r
}

func rawF32(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(r.AsFloat32(), data)
	return r
}

func equalU8(t *testing.T, got *tensor.RawTensor, want []uint8) {
	t.Helper()
	out := got.AsUint8()
	if len(out) != len(want) {
		t.Fatalf("Expected %d elements, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("Element %d: expected %d, got %d", i, want[i], out[i])
		}
	}
}

func TestCrop(t *testing.T) {
	backend := New()

	// 1x3x4 plane with row-major values 0..11.
	in := rawU8(t, tensor.Shape{1, 3, 4}, []uint8{
		0, 1, 2, 3,
		4, 5, 6, 7,
		8, 9, 10, 11,
	})

	out := backend.Crop(in, 1, 1, 2, 2)

	if !out.Shape().Equal(tensor.Shape{1, 2, 2}) {
		t.Fatalf("Expected shape [1 2 2], got %v", out.Shape())
	}
	equalU8(t, out, []uint8{5, 6, 9, 10})
}

func TestCrop_OutOfBounds(t *testing.T) {
	backend := New()
	in := rawU8(t, tensor.Shape{1, 2, 2}, []uint8{1, 2, 3, 4})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-bounds crop")
		}
	}()
	backend.Crop(in, 1, 1, 2, 2)
}

func TestFlipH(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{2, 2, 3}, []uint8{
		1, 2, 3,
		4, 5, 6,

		7, 8, 9,
		10, 11, 12,
	})

	out := backend.FlipH(in)
	equalU8(t, out, []uint8{
		3, 2, 1,
		6, 5, 4,

		9, 8, 7,
		12, 11, 10,
	})
}

func TestFlipV(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 3, 2}, []uint8{
		1, 2,
		3, 4,
		5, 6,
	})

	out := backend.FlipV(in)
	equalU8(t, out, []uint8{
		5, 6,
		3, 4,
		1, 2,
	})
}

func TestRot90(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 2, 3}, []uint8{
		1, 2, 3,
		4, 5, 6,
	})

	tests := []struct {
		name  string
		k     int
		shape tensor.Shape
		want  []uint8
	}{
		{"k=0 identity", 0, tensor.Shape{1, 2, 3}, []uint8{1, 2, 3, 4, 5, 6}},
		{"k=1 counter-clockwise", 1, tensor.Shape{1, 3, 2}, []uint8{3, 6, 2, 5, 1, 4}},
		{"k=2 half turn", 2, tensor.Shape{1, 2, 3}, []uint8{6, 5, 4, 3, 2, 1}},
		{"k=3 clockwise", 3, tensor.Shape{1, 3, 2}, []uint8{4, 1, 5, 2, 6, 3}},
		{"k=5 wraps", 5, tensor.Shape{1, 3, 2}, []uint8{3, 6, 2, 5, 1, 4}},
		{"k=-1 same as k=3", -1, tensor.Shape{1, 3, 2}, []uint8{4, 1, 5, 2, 6, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := backend.Rot90(in, tt.k)
			if !out.Shape().Equal(tt.shape) {
				t.Fatalf("Expected shape %v, got %v", tt.shape, out.Shape())
			}
			equalU8(t, out, tt.want)
		})
	}
}

func TestTranspose2D(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 2, 3}, []uint8{
		1, 2, 3,
		4, 5, 6,
	})

	out := backend.Transpose2D(in)
	if !out.Shape().Equal(tensor.Shape{1, 3, 2}) {
		t.Fatalf("Expected shape [1 3 2], got %v", out.Shape())
	}
	equalU8(t, out, []uint8{
		1, 4,
		2, 5,
		3, 6,
	})
}

func TestRot90_DoubleFlipEquivalence(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{3, 4, 5}, make([]uint8, 60))
	for i := range in.AsUint8() {
		in.AsUint8()[i] = uint8(i * 7 % 251)
	}

	// Two quarter turns equal flipping both axes.
	a := backend.Rot90(in, 2)
	b := backend.FlipH(backend.FlipV(in))
	equalU8(t, a, b.AsUint8())
}
