package cpu

import (
	"math"
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestCast(t *testing.T) {
	backend := New()

	t.Run("uint8 to float32", func(t *testing.T) {
		in := rawU8(t, tensor.Shape{1, 1, 3}, []uint8{0, 128, 255})
		out := backend.Cast(in, tensor.Float32)

		if out.DType() != tensor.Float32 {
			t.Fatalf("Expected float32, got %s", out.DType())
		}
		want := []float32{0, 128, 255}
		for i, v := range out.AsFloat32() {
			if v != want[i] {
				t.Errorf("Element %d: expected %f, got %f", i, want[i], v)
			}
		}
	})

	t.Run("float32 to uint8 rounds and saturates", func(t *testing.T) {
		in := rawF32(t, tensor.Shape{1, 1, 5}, []float32{-3, 0.4, 0.6, 254.5, 300})
		out := backend.Cast(in, tensor.Uint8)

		equalU8(t, out, []uint8{0, 0, 1, 255, 255})
	})

	t.Run("same dtype copies", func(t *testing.T) {
		in := rawF32(t, tensor.Shape{1, 1, 2}, []float32{1, 2})
		out := backend.Cast(in, tensor.Float32)
		out.AsFloat32()[0] = 99
		if in.AsFloat32()[0] != 1 {
			t.Error("Cast must not alias the input buffer")
		}
	})
}

func TestClamp(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 1, 4}, []float32{-1, 0.5, 2, 100})
	out := backend.Clamp(in, 0, 1)

	want := []float32{0, 0.5, 1, 1}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %f, got %f", i, want[i], v)
		}
	}
}

func TestRound(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 1, 4}, []float32{0.4, 0.5, 1.6, -0.5})
	out := backend.Round(in)

	want := []float64{0, 1, 2, -1}
	for i, v := range out.AsFloat32() {
		if float64(v) != want[i] {
			t.Errorf("Element %d: expected %f, got %f", i, want[i], v)
		}
	}
}

func TestMulScalar(t *testing.T) {
	backend := New()

	in := rawF32(t, tensor.Shape{1, 1, 3}, []float32{0, 0.5, 1})
	out := backend.MulScalar(in, 255)

	want := []float32{0, 127.5, 255}
	for i, v := range out.AsFloat32() {
		if math.Abs(float64(v-want[i])) > 1e-5 {
			t.Errorf("Element %d: expected %f, got %f", i, want[i], v)
		}
	}
}

func TestAddScalar_Uint8Saturates(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 1, 3}, []uint8{0, 100, 250})
	out := backend.AddScalar(in, 10)

	equalU8(t, out, []uint8{10, 110, 255})
}

func TestFloatRoundTrip(t *testing.T) {
	backend := New()

	// The uint8 -> [0, 1] float -> uint8 path used by the dtype decorator
	// must reproduce every byte value exactly.
	data := make([]uint8, 256)
	for i := range data {
		data[i] = uint8(i)
	}
	in := rawU8(t, tensor.Shape{1, 16, 16}, data)

	f := backend.MulScalar(backend.Cast(in, tensor.Float32), 1.0/255.0)
	back := backend.Cast(backend.Clamp(backend.Round(backend.MulScalar(f, 255.0)), 0, 255), tensor.Uint8)

	equalU8(t, back, data)
}
