package augment

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestDistortAxis_Identity(t *testing.T) {
	// Unit step factors reproduce the identity coordinate table.
	steps := []float64{1, 1, 1, 1, 1, 1}
	out := distortAxis(100, 5, steps)

	require.Len(t, out, 100)
	assert.InDelta(t, 0, float64(out[0]), 1e-5)
	for i := 1; i < len(out); i++ {
		assert.InDelta(t, float64(i), float64(out[i]), 1.1, "index %d", i)
		assert.GreaterOrEqual(t, out[i], out[i-1])
	}
}

func TestDistortAxis_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		steps := make([]float64, 6)
		for i := range steps {
			steps[i] = 1 + uniform(rng, -0.3, 0.3)
		}
		out := distortAxis(100, 5, steps)
		require.Len(t, out, 100)
		for i := 1; i < len(out); i++ {
			assert.GreaterOrEqual(t, out[i], out[i-1], "trial %d index %d", trial, i)
		}
	}
}

func TestOpticalDistortionMaps_IdentityAtZero(t *testing.T) {
	mapX, mapY := opticalDistortionMaps(8, 12, 0, 0, 0)

	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			idx := y*12 + x
			assert.InDelta(t, float64(x), float64(mapX[idx]), 1e-5)
			assert.InDelta(t, float64(y), float64(mapY[idx]), 1e-5)
		}
	}
}

func TestOpticalDistortionMaps_RadialSymmetry(t *testing.T) {
	// The principal point sits at w*0.5, so pixels x and w-x are equidistant
	// from it and their horizontal displacements mirror each other.
	h, w := 10, 10
	mapX, _ := opticalDistortionMaps(h, w, 0.5, 0, 0)

	for y := 0; y < h; y++ {
		for x := 1; x <= w/2; x++ {
			left := float64(mapX[y*w+x]) - float64(x)
			right := float64(mapX[y*w+(w-x)]) - float64(w-x)
			assert.InDelta(t, left, -right, 1e-4)
		}
	}
}

func TestOpticalDistortion_PreservesShape(t *testing.T) {
	b := cpu.New()
	pipe, err := NewCompose(b, []Transform{
		NewOpticalDistortion(b, 0.3, 0.05, AlwaysApply()),
	}, WithSeed(3))
	require.NoError(t, err)

	tg := &Targets{
		Image: seqImage(t, 3, 24, 32),
		Mask:  tensor.MustRaw(tensor.Shape{24, 32}, tensor.Uint8, tensor.CPU),
	}
	require.NoError(t, pipe.Run(tg))

	assert.Equal(t, tensor.Shape{3, 24, 32}, tg.Image.Shape())
	assert.Equal(t, tensor.Uint8, tg.Image.DType())
	assert.Equal(t, tensor.Shape{24, 32}, tg.Mask.Shape())
}

func TestGridDistortion_PreservesShape(t *testing.T) {
	b := cpu.New()
	pipe, err := NewCompose(b, []Transform{
		NewGridDistortion(b, 0.3, AlwaysApply()),
	}, WithSeed(4))
	require.NoError(t, err)

	tg := &Targets{Image: seqImage(t, 1, 25, 25)}
	require.NoError(t, pipe.Run(tg))
	assert.Equal(t, tensor.Shape{1, 25, 25}, tg.Image.Shape())
}

func TestRandomGridShuffle_PermutesPixels(t *testing.T) {
	b := cpu.New()
	pipe, err := NewCompose(b, []Transform{
		NewRandomGridShuffle(b, 3, 3, AlwaysApply()),
	}, WithSeed(6))
	require.NoError(t, err)

	img := seqImage(t, 1, 12, 12)
	before := append([]uint8(nil), img.AsUint8()...)

	tg := &Targets{Image: img}
	require.NoError(t, pipe.Run(tg))

	after := tg.Image.AsUint8()
	require.Equal(t, tensor.Shape{1, 12, 12}, tg.Image.Shape())

	// Tile shuffling rearranges pixels without changing their multiset.
	sortedBefore := append([]uint8(nil), before...)
	sortedAfter := append([]uint8(nil), after...)
	sort.Slice(sortedBefore, func(i, j int) bool { return sortedBefore[i] < sortedBefore[j] })
	sort.Slice(sortedAfter, func(i, j int) bool { return sortedAfter[i] < sortedAfter[j] })
	assert.Equal(t, sortedBefore, sortedAfter)
}

func TestRandomGridShuffle_MaskFollowsImage(t *testing.T) {
	b := cpu.New()
	pipe, err := NewCompose(b, []Transform{
		NewRandomGridShuffle(b, 2, 2, AlwaysApply()),
	}, WithSeed(7))
	require.NoError(t, err)

	// Image and mask start identical, so any consistent shuffle keeps them
	// identical.
	img := tensor.MustRaw(tensor.Shape{1, 8, 8}, tensor.Uint8, tensor.CPU)
	mask := tensor.MustRaw(tensor.Shape{8, 8}, tensor.Uint8, tensor.CPU)
	for i := 0; i < 64; i++ {
		img.AsUint8()[i] = uint8(i)
		mask.AsUint8()[i] = uint8(i)
	}

	tg := &Targets{Image: img, Mask: mask}
	require.NoError(t, pipe.Run(tg))
	assert.Equal(t, tg.Image.AsUint8(), tg.Mask.AsUint8())
}

func TestRandomGridShuffle_InvalidGrid(t *testing.T) {
	b := cpu.New()
	pipe, err := NewCompose(b, []Transform{
		NewRandomGridShuffle(b, 10, 10, AlwaysApply()),
	}, WithSeed(8))
	require.NoError(t, err)

	// 10x10 tiles do not fit a 12x12 image at two pixels per tile minimum.
	tg := &Targets{Image: seqImage(t, 1, 12, 12)}
	err = pipe.Run(tg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
