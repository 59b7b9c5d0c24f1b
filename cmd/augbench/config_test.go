package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    tensor.Shape
		wantErr bool
	}{
		{"3x256x256", tensor.Shape{3, 256, 256}, false},
		{"512x512", tensor.Shape{1, 512, 512}, false},
		{"3X64X64", tensor.Shape{3, 64, 64}, false},
		{"3x256", tensor.Shape{1, 3, 256}, false},
		{"", nil, true},
		{"3x0x256", nil, true},
		{"3x256x256x1", nil, true},
		{"axbxc", nil, true},
	}
	for _, tt := range tests {
		got, err := parseShape(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, tt.want.Equal(got), "input %q: got %v", tt.in, got)
	}
}

func TestConfig_Cases(t *testing.T) {
	cfg := Config{
		Shapes:     []string{"3x64x64", "3x128x128", "3x256x256"},
		Iterations: []int{10, 5},
	}
	cases, err := cfg.cases()
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, 10, cases[0].Iterations)
	assert.Equal(t, 5, cases[1].Iterations)
	// The last configured count repeats.
	assert.Equal(t, 5, cases[2].Iterations)
	assert.Equal(t, tensor.Shape{3, 128, 128}, cases[1].Shape())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed = 7
warmup = 1
parallel = true
shapes = ["3x32x32"]
iterations = [4]
transforms = ["hflip", "rotate"]
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, []string{"3x32x32"}, cfg.Shapes)
	assert.Equal(t, []string{"hflip", "rotate"}, cfg.Transforms)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("sede = 7\n"), 0o644))

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestTransformFactory(t *testing.T) {
	cfg := defaultConfig()
	factory, err := cfg.transformFactory()
	require.NoError(t, err)

	transforms := factory(cpu.New())
	require.Len(t, transforms, len(cfg.Transforms))
	assert.Equal(t, "HorizontalFlip", transforms[0].Name())

	cfg.Transforms = []string{"does_not_exist"}
	_, err = cfg.transformFactory()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}
