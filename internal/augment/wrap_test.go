package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// seqImage builds a (C, H, W) uint8 tensor with deterministic content.
func seqImage(t *testing.T, c, h, w int) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(tensor.Shape{c, h, w}, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)
	data := raw.AsUint8()
	for i := range data {
		data[i] = uint8((i*31 + 7) % 256)
	}
	return raw
}

func TestOnFloatImage_RoundTrip(t *testing.T) {
	b := cpu.New()
	in := seqImage(t, 3, 8, 8)

	identity := func(raw *tensor.RawTensor) *tensor.RawTensor { return raw.Clone() }
	out := OnFloatImage(b, identity)(in)

	require.Equal(t, tensor.Uint8, out.DType())
	assert.Equal(t, in.AsUint8(), out.AsUint8())
}

func TestOnFloatImage_NormalizesForInner(t *testing.T) {
	b := cpu.New()
	in := tensor.MustRaw(tensor.Shape{1, 1, 2}, tensor.Uint8, tensor.CPU)
	copy(in.AsUint8(), []uint8{0, 255})

	var seen []float32
	probe := func(raw *tensor.RawTensor) *tensor.RawTensor {
		require.Equal(t, tensor.Float32, raw.DType())
		seen = append([]float32(nil), raw.AsFloat32()...)
		return raw.Clone()
	}
	OnFloatImage(b, probe)(in)

	require.Len(t, seen, 2)
	assert.InDelta(t, 0.0, float64(seen[0]), 1e-6)
	assert.InDelta(t, 1.0, float64(seen[1]), 1e-6)
}

func TestOnFloatImage_FloatPassthrough(t *testing.T) {
	b := cpu.New()
	in := tensor.MustRaw(tensor.Shape{1, 1, 2}, tensor.Float32, tensor.CPU)
	copy(in.AsFloat32(), []float32{0.25, 0.75})

	called := false
	probe := func(raw *tensor.RawTensor) *tensor.RawTensor {
		called = true
		// Float input reaches the inner function untouched.
		assert.Equal(t, in.AsFloat32(), raw.AsFloat32())
		return raw
	}
	out := OnFloatImage(b, probe)(in)
	assert.True(t, called)
	assert.Equal(t, tensor.Float32, out.DType())
}

func TestClipped(t *testing.T) {
	b := cpu.New()
	in := tensor.MustRaw(tensor.Shape{1, 1, 2}, tensor.Float32, tensor.CPU)

	blowUp := func(raw *tensor.RawTensor) *tensor.RawTensor {
		out := raw.Clone()
		copy(out.AsFloat32(), []float32{-0.5, 1.5})
		return out
	}
	out := Clipped(b, blowUp)(in)

	// Float range is [0, 1].
	assert.Equal(t, []float32{0, 1}, out.AsFloat32())
}

func TestOnRank3_ExpandsMask(t *testing.T) {
	mask := tensor.MustRaw(tensor.Shape{4, 6}, tensor.Uint8, tensor.CPU)

	var innerShape tensor.Shape
	probe := func(raw *tensor.RawTensor) *tensor.RawTensor {
		innerShape = raw.Shape().Clone()
		return raw
	}
	out := OnRank3(probe)(mask)

	assert.Equal(t, tensor.Shape{1, 4, 6}, innerShape)
	assert.Equal(t, tensor.Shape{4, 6}, out.Shape())
}

func TestOnRank3_Rank3Passthrough(t *testing.T) {
	img := tensor.MustRaw(tensor.Shape{3, 4, 6}, tensor.Uint8, tensor.CPU)

	out := OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor { return raw })(img)
	assert.Equal(t, tensor.Shape{3, 4, 6}, out.Shape())
}

func TestOnRank3_SqueezesResizedMask(t *testing.T) {
	b := cpu.New()
	mask := tensor.MustRaw(tensor.Shape{4, 6}, tensor.Uint8, tensor.CPU)

	out := OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
		return b.Resize(raw, 8, 12, tensor.InterpNearest)
	})(mask)

	assert.Equal(t, tensor.Shape{8, 12}, out.Shape())
}

func TestPreserveShape(t *testing.T) {
	in := tensor.MustRaw(tensor.Shape{2, 3, 4}, tensor.Float32, tensor.CPU)

	flatten := func(raw *tensor.RawTensor) *tensor.RawTensor {
		out, err := raw.WithShape(tensor.Shape{24})
		require.NoError(t, err)
		return out
	}
	out := PreserveShape(flatten)(in)
	assert.Equal(t, tensor.Shape{2, 3, 4}, out.Shape())
}

func TestOnRank4(t *testing.T) {
	in := tensor.MustRaw(tensor.Shape{3, 4}, tensor.Float32, tensor.CPU)

	var innerShape tensor.Shape
	out := OnRank4(func(raw *tensor.RawTensor) *tensor.RawTensor {
		innerShape = raw.Shape().Clone()
		return raw
	})(in)

	assert.Equal(t, tensor.Shape{1, 1, 3, 4}, innerShape)
	assert.Equal(t, tensor.Shape{3, 4}, out.Shape())
}
