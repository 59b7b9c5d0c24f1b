package bench

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WK-Heisenberg/albumentations/internal/augment"
	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func smallPipeline(name string) Pipeline {
	return Pipeline{
		Name:    name,
		Backend: cpu.New(),
		Transforms: func(b tensor.ImageBackend) []augment.Transform {
			return []augment.Transform{
				augment.NewHorizontalFlip(b, augment.AlwaysApply()),
				augment.NewRandomCrop(b, 8, 8),
			}
		},
	}
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner([]Pipeline{smallPipeline("cpu")}, Options{Warmup: 1, Seed: 1})
	assert.NotEmpty(t, r.ID)

	results, err := r.Run([]Case{
		{Channels: 3, Height: 16, Width: 16, Iterations: 5},
		{Channels: 1, Height: 12, Width: 12, Iterations: 3},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, tensor.Shape{3, 16, 16}, first.Shape)
	assert.Equal(t, 5, first.Iterations)
	require.Len(t, first.Measurements, 1)

	m := first.Measurements[0]
	require.NoError(t, m.Err)
	assert.Equal(t, "cpu", m.Pipeline)
	assert.Positive(t, m.FPS)
	assert.Positive(t, int64(m.Mean))
}

func TestRunner_Parallel(t *testing.T) {
	r := NewRunner([]Pipeline{smallPipeline("cpu")}, Options{
		Warmup:   1,
		Seed:     2,
		Parallel: true,
		Workers:  parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1},
	})

	results, err := r.Run([]Case{{Channels: 3, Height: 16, Width: 16, Iterations: 16}})
	require.NoError(t, err)
	require.NoError(t, results[0].Measurements[0].Err)
	assert.Positive(t, results[0].Measurements[0].FPS)
}

func TestRunner_LimitedCapabilityPipeline(t *testing.T) {
	// Distortions cannot augment bounding boxes; the runner generates only
	// the targets every transform in the chain supports.
	distort := Pipeline{
		Name:    "distort",
		Backend: cpu.New(),
		Transforms: func(b tensor.ImageBackend) []augment.Transform {
			return []augment.Transform{
				augment.NewOpticalDistortion(b, 0.3, 0.05, augment.AlwaysApply()),
				augment.NewGridDistortion(b, 0.3, augment.AlwaysApply()),
			}
		},
	}

	r := NewRunner([]Pipeline{distort}, Options{Warmup: 1, Seed: 6})
	results, err := r.Run([]Case{{Channels: 1, Height: 16, Width: 16, Iterations: 3}})
	require.NoError(t, err)
	require.NoError(t, results[0].Measurements[0].Err)
	assert.Positive(t, results[0].Measurements[0].FPS)
}

func TestRunner_ReportsPipelineError(t *testing.T) {
	broken := Pipeline{
		Name:    "broken",
		Backend: cpu.New(),
		Transforms: func(b tensor.ImageBackend) []augment.Transform {
			// Crop larger than the benchmark image.
			return []augment.Transform{augment.NewRandomCrop(b, 64, 64)}
		},
	}

	r := NewRunner([]Pipeline{broken}, Options{Seed: 3})
	results, err := r.Run([]Case{{Channels: 1, Height: 16, Width: 16, Iterations: 2}})
	require.NoError(t, err)
	assert.Error(t, results[0].Measurements[0].Err)
}

func TestRunner_EmptyConfigs(t *testing.T) {
	_, err := NewRunner(nil, Options{}).Run([]Case{{Channels: 1, Height: 8, Width: 8, Iterations: 1}})
	assert.Error(t, err)

	_, err = NewRunner([]Pipeline{smallPipeline("cpu")}, Options{}).Run([]Case{{Channels: 1, Height: 8, Width: 8}})
	assert.Error(t, err)
}

func TestIterationsFor(t *testing.T) {
	counts := []int{100, 50, 20}
	assert.Equal(t, 100, IterationsFor(counts, 0))
	assert.Equal(t, 20, IterationsFor(counts, 2))
	// The last count repeats past the end of the list.
	assert.Equal(t, 20, IterationsFor(counts, 7))
	assert.Equal(t, 10, IterationsFor(nil, 0))
}

func TestRandomData(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	img := RandomImage(rng, 3, 10, 12, tensor.CPU)
	assert.Equal(t, tensor.Shape{3, 10, 12}, img.Shape())
	assert.Equal(t, tensor.Uint8, img.DType())

	mask := RandomMask(rng, 10, 12, 4, tensor.CPU)
	for _, v := range mask.AsUint8() {
		assert.Less(t, int(v), 4)
	}

	fimg := RandomFloatImage(rng, 3, 6, 6, tensor.CPU)
	for _, v := range fimg.AsFloat32() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	fmask := RandomFloatMask(rng, 6, 6, 3, tensor.CPU)
	for _, v := range fmask.AsFloat32() {
		assert.Equal(t, v, float32(int(v)), "labels stay integral")
		assert.Less(t, v, float32(3))
	}

	for _, b := range RandomBBoxes(rng, 20, 10, 12) {
		assert.GreaterOrEqual(t, b.XMin, 0.0)
		assert.Greater(t, b.XMax, b.XMin)
		assert.LessOrEqual(t, b.XMax, 12.0)
		assert.Greater(t, b.YMax, b.YMin)
		assert.LessOrEqual(t, b.YMax, 10.0)
	}
}

func TestRenderTable(t *testing.T) {
	results := []Result{
		{
			Shape:      tensor.Shape{3, 256, 256},
			Iterations: 100,
			Measurements: []Measurement{
				{Pipeline: "CPU", FPS: 120.5},
				{Pipeline: "WebGPU", FPS: 350.2},
			},
		},
	}

	out := RenderTable(results)
	assert.Contains(t, out, "3x256x256")
	assert.Contains(t, out, "CPU FPS")
	assert.Contains(t, out, "WebGPU FPS")
	assert.Contains(t, out, "120.5")

	assert.Equal(t, "", RenderTable(nil))
}

func TestRenderTable_Failure(t *testing.T) {
	r := NewRunner([]Pipeline{
		{
			Name:    "bad",
			Backend: cpu.New(),
			Transforms: func(b tensor.ImageBackend) []augment.Transform {
				return []augment.Transform{augment.NewRandomCrop(b, 99, 99)}
			},
		},
	}, Options{Seed: 5})
	results, err := r.Run([]Case{{Channels: 1, Height: 8, Width: 8, Iterations: 1}})
	require.NoError(t, err)

	out := RenderTable(results)
	assert.True(t, strings.Contains(out, "failed"))
}
