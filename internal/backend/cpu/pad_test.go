package cpu

import (
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestPad_Constant(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 2, 2}, []uint8{
		1, 2,
		3, 4,
	})

	out := backend.Pad(in, 1, 1, 1, 1, tensor.BorderConstant, 9)
	if !out.Shape().Equal(tensor.Shape{1, 4, 4}) {
		t.Fatalf("Expected shape [1 4 4], got %v", out.Shape())
	}
	equalU8(t, out, []uint8{
		9, 9, 9, 9,
		9, 1, 2, 9,
		9, 3, 4, 9,
		9, 9, 9, 9,
	})
}

func TestPad_Reflect(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 1, 4}, []uint8{1, 2, 3, 4})

	// Reflection does not repeat the edge pixel.
	out := backend.Pad(in, 0, 0, 2, 2, tensor.BorderReflect, 0)
	equalU8(t, out, []uint8{3, 2, 1, 2, 3, 4, 3, 2})
}

func TestPad_Replicate(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 1, 3}, []uint8{1, 2, 3})

	out := backend.Pad(in, 0, 0, 2, 2, tensor.BorderReplicate, 0)
	equalU8(t, out, []uint8{1, 1, 1, 2, 3, 3, 3})
}

func TestPad_Circular(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 1, 3}, []uint8{1, 2, 3})

	out := backend.Pad(in, 0, 0, 2, 2, tensor.BorderCircular, 0)
	equalU8(t, out, []uint8{2, 3, 1, 2, 3, 1, 2})
}

func TestPad_NegativeMargin(t *testing.T) {
	backend := New()
	in := rawU8(t, tensor.Shape{1, 2, 2}, []uint8{1, 2, 3, 4})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for negative margin")
		}
	}()
	backend.Pad(in, -1, 0, 0, 0, tensor.BorderConstant, 0)
}

func TestBorderIndex_Reflect(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-2, 5, 2},
		{-1, 5, 1},
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 3},
		{6, 5, 2},
		{-1, 1, 0},
	}
	for _, tt := range tests {
		if got := borderIndex(tt.i, tt.n, tensor.BorderReflect); got != tt.want {
			t.Errorf("borderIndex(%d, %d) = %d, expected %d", tt.i, tt.n, got, tt.want)
		}
	}
}
