package cpu

import (
	"math"
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestResize_Identity(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 2, 2}, []float32{1, 2, 3, 4})
	out := backend.Resize(in, 2, 2, tensor.InterpBilinear)

	if !out.Shape().Equal(in.Shape()) {
		t.Fatalf("Expected shape %v, got %v", in.Shape(), out.Shape())
	}
	for i, v := range out.AsFloat32() {
		if v != in.AsFloat32()[i] {
			t.Errorf("Element %d: expected %f, got %f", i, in.AsFloat32()[i], v)
		}
	}
}

func TestResize_NearestUpscale(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 2, 2}, []float32{
		1, 2,
		3, 4,
	})

	out := backend.Resize(in, 4, 4, tensor.InterpNearest)
	if !out.Shape().Equal(tensor.Shape{1, 4, 4}) {
		t.Fatalf("Expected shape [1 4 4], got %v", out.Shape())
	}
	want := []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %f, got %f", i, want[i], v)
		}
	}
}

func TestResize_BilinearConstantPlane(t *testing.T) {
	backend := New()

	// Resampling a constant plane must stay constant at any size.
	data := make([]float32, 2*5*7)
	for i := range data {
		data[i] = 0.25
	}
	in := rawF32(t, tensor.Shape{2, 5, 7}, data)

	out := backend.Resize(in, 11, 3, tensor.InterpBilinear)
	if !out.Shape().Equal(tensor.Shape{2, 11, 3}) {
		t.Fatalf("Expected shape [2 11 3], got %v", out.Shape())
	}
	for i, v := range out.AsFloat32() {
		if math.Abs(float64(v)-0.25) > 1e-6 {
			t.Errorf("Element %d: expected 0.25, got %f", i, v)
		}
	}
}

func TestResize_BilinearDownscaleAverages(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 2, 2}, []float32{
		0, 1,
		1, 0,
	})

	// Collapsing to a single pixel samples the exact center.
	out := backend.Resize(in, 1, 1, tensor.InterpBilinear)
	got := out.AsFloat32()[0]
	if math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}

func TestResize_Uint8PackedPath(t *testing.T) {
	backend := New()

	tests := []struct {
		name     string
		channels int
	}{
		{"grayscale", 1},
		{"rgb", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]uint8, tt.channels*6*8)
			for i := range data {
				data[i] = 200
			}
			in := rawU8(t, tensor.Shape{tt.channels, 6, 8}, data)

			out := backend.Resize(in, 3, 4, tensor.InterpBilinear)
			if !out.Shape().Equal(tensor.Shape{tt.channels, 3, 4}) {
				t.Fatalf("Expected shape [%d 3 4], got %v", tt.channels, out.Shape())
			}
			if out.DType() != tensor.Uint8 {
				t.Fatalf("Expected uint8 output, got %s", out.DType())
			}
			for i, v := range out.AsUint8() {
				if v != 200 {
					t.Errorf("Element %d: expected 200, got %d", i, v)
				}
			}
		})
	}
}
