package tensor_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape tensor.Shape
		want  int
	}{
		{tensor.Shape{}, 1},
		{tensor.Shape{5}, 5},
		{tensor.Shape{3, 4}, 12},
		{tensor.Shape{3, 256, 256}, 196608},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (tensor.Shape{3, 4, 5}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (tensor.Shape{3, 0, 5}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (tensor.Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	got := tensor.Shape{3, 4, 5}.ComputeStrides()
	want := []int{20, 5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("strides = %v, want %v", got, want)
		}
	}
}

func TestShape_HW(t *testing.T) {
	h, w := tensor.Shape{3, 10, 20}.HW()
	if h != 10 || w != 20 {
		t.Errorf("HW() = (%d, %d), want (10, 20)", h, w)
	}
	h, w = tensor.Shape{10, 20}.HW()
	if h != 10 || w != 20 {
		t.Errorf("rank-2 HW() = (%d, %d), want (10, 20)", h, w)
	}
}

func TestShape_Channels(t *testing.T) {
	if c := (tensor.Shape{10, 20}).Channels(); c != 1 {
		t.Errorf("rank-2 Channels() = %d, want 1", c)
	}
	if c := (tensor.Shape{3, 10, 20}).Channels(); c != 3 {
		t.Errorf("rank-3 Channels() = %d, want 3", c)
	}
}

func TestNewRaw(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{3, 4, 5}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if raw.NumElements() != 60 {
		t.Errorf("NumElements() = %d, want 60", raw.NumElements())
	}
	if raw.ByteSize() != 240 {
		t.Errorf("ByteSize() = %d, want 240", raw.ByteSize())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %s, want CPU", raw.Device())
	}
	for _, v := range raw.AsFloat32() {
		if v != 0 {
			t.Fatal("fresh tensor is not zero-initialized")
		}
	}

	if _, err := tensor.NewRaw(tensor.Shape{3, 0}, tensor.Uint8, tensor.CPU); err == nil {
		t.Error("invalid shape accepted")
	}
}

func TestRawTensor_Clone(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{2, 3}, tensor.Uint8, tensor.CPU)
	copy(raw.AsUint8(), []uint8{1, 2, 3, 4, 5, 6})

	clone := raw.Clone()
	clone.AsUint8()[0] = 99
	if raw.AsUint8()[0] != 1 {
		t.Error("clone shares storage with original")
	}
}

func TestRawTensor_WithShape(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{4, 6}, tensor.Uint8, tensor.CPU)
	raw.AsUint8()[5] = 42

	view, err := raw.WithShape(tensor.Shape{1, 4, 6})
	if err != nil {
		t.Fatalf("WithShape failed: %v", err)
	}
	// The view shares storage.
	if view.AsUint8()[5] != 42 {
		t.Error("view does not see original data")
	}
	view.AsUint8()[0] = 7
	if raw.AsUint8()[0] != 7 {
		t.Error("write through view not visible in original")
	}

	if _, err := raw.WithShape(tensor.Shape{5, 5}); err == nil {
		t.Error("element count mismatch accepted")
	}
}

func TestRawTensor_TypedAccessorsPanic(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{2, 2}, tensor.Uint8, tensor.CPU)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched accessor")
		}
	}()
	raw.AsFloat32()
}

func TestDataType(t *testing.T) {
	if tensor.Uint8.Size() != 1 || tensor.Float32.Size() != 4 || tensor.Float64.Size() != 8 {
		t.Error("wrong dtype sizes")
	}
	if tensor.Uint8.MaxValue() != 255 {
		t.Errorf("Uint8.MaxValue() = %f, want 255", tensor.Uint8.MaxValue())
	}
	if tensor.Float32.MaxValue() != 1 {
		t.Errorf("Float32.MaxValue() = %f, want 1", tensor.Float32.MaxValue())
	}
}

func TestTensor_FromSlice(t *testing.T) {
	b := cpu.New()
	tt, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if got := tt.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %f, want 6", got)
	}

	tt.Set(42, 0, 1)
	if got := tt.At(0, 1); got != 42 {
		t.Errorf("Set did not stick: At(0, 1) = %f", got)
	}

	if _, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 3}, b); err == nil {
		t.Error("length mismatch accepted")
	}
}

func TestTensor_ZerosAndFull(t *testing.T) {
	b := cpu.New()

	z := tensor.Zeros[uint8](tensor.Shape{3, 4, 4}, b)
	if z.DType() != tensor.Uint8 {
		t.Errorf("DType() = %s, want uint8", z.DType())
	}

	f := tensor.Full[float32](tensor.Shape{2, 2}, 0.5, b)
	for _, v := range f.Data() {
		if v != 0.5 {
			t.Fatal("Full did not fill the tensor")
		}
	}
}

func TestTensor_New_DTypeMismatch(t *testing.T) {
	b := cpu.New()
	raw := tensor.MustRaw(tensor.Shape{2, 2}, tensor.Uint8, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for dtype mismatch")
		}
	}()
	tensor.New[float32](raw, b)
}

func TestFromImage_ToImage_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.NRGBA{
		{10, 20, 30, 255}, {40, 50, 60, 255}, {70, 80, 90, 255},
		{100, 110, 120, 255}, {130, 140, 150, 255}, {160, 170, 180, 255},
	}
	for i, px := range colors {
		src.SetNRGBA(i%3, i/3, px)
	}

	raw := tensor.FromImage(src, tensor.CPU)
	if !raw.Shape().Equal(tensor.Shape{3, 2, 3}) {
		t.Fatalf("shape = %v, want (3, 2, 3)", raw.Shape())
	}
	// Planar layout: R plane first.
	if raw.AsUint8()[0] != 10 || raw.AsUint8()[6] != 20 {
		t.Error("unexpected channel layout")
	}

	back, err := tensor.ToImage(raw)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	for i, want := range colors {
		if got := back.NRGBAAt(i%3, i/3); got != want {
			t.Errorf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

func TestToImage_Grayscale(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{1, 1, 2}, tensor.Uint8, tensor.CPU)
	copy(raw.AsUint8(), []uint8{0, 200})

	img, err := tensor.ToImage(raw)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestToImage_Rejects(t *testing.T) {
	if _, err := tensor.ToImage(tensor.MustRaw(tensor.Shape{2, 4, 4}, tensor.Uint8, tensor.CPU)); err == nil {
		t.Error("2-channel tensor accepted")
	}
	if _, err := tensor.ToImage(tensor.MustRaw(tensor.Shape{3, 4, 4}, tensor.Float32, tensor.CPU)); err == nil {
		t.Error("float tensor accepted")
	}
}
