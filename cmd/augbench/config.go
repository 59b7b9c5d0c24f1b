package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/WK-Heisenberg/albumentations/internal/augment"
	"github.com/WK-Heisenberg/albumentations/internal/bench"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Config is the benchmark run description, loadable from a TOML file and
// overridable by flags.
type Config struct {
	Seed       int64    `toml:"seed"`
	Warmup     int      `toml:"warmup"`
	Parallel   bool     `toml:"parallel"`
	Shapes     []string `toml:"shapes"`     // "CxHxW"
	Iterations []int    `toml:"iterations"` // per shape; last entry repeats
	Transforms []string `toml:"transforms"`
}

func defaultConfig() Config {
	return Config{
		Seed:       42,
		Warmup:     3,
		Shapes:     []string{"3x256x256", "3x512x512", "3x1024x1024"},
		Iterations: []int{100, 50, 20},
		Transforms: []string{"hflip", "rotate", "grid_distortion", "grid_shuffle"},
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// parseShape parses "CxHxW" (or "HxW", implying one channel).
func parseShape(s string) (tensor.Shape, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("shape %q: want CxHxW or HxW", s)
	}
	dims := make([]int, 0, 3)
	if len(parts) == 2 {
		dims = append(dims, 1)
	}
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("shape %q: bad dimension %q", s, p)
		}
		dims = append(dims, v)
	}
	return tensor.Shape(dims), nil
}

func (c Config) cases() ([]bench.Case, error) {
	if len(c.Shapes) == 0 {
		return nil, fmt.Errorf("no shapes configured")
	}
	cases := make([]bench.Case, 0, len(c.Shapes))
	for i, s := range c.Shapes {
		shape, err := parseShape(s)
		if err != nil {
			return nil, err
		}
		cases = append(cases, bench.Case{
			Channels:   shape[0],
			Height:     shape[1],
			Width:      shape[2],
			Iterations: bench.IterationsFor(c.Iterations, i),
		})
	}
	return cases, nil
}

// transformBuilders maps config names to constructors. Every entry is
// float32-safe on both backends.
var transformBuilders = map[string]func(b tensor.ImageBackend) augment.Transform{
	"hflip": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewHorizontalFlip(b, augment.AlwaysApply())
	},
	"vflip": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewVerticalFlip(b, augment.AlwaysApply())
	},
	"flip": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewFlip(b, augment.AlwaysApply())
	},
	"transpose": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewTranspose(b, augment.AlwaysApply())
	},
	"rotate90": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewRandomRotate90(b, augment.AlwaysApply())
	},
	"rotate": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewRotate(b, 45, augment.AlwaysApply())
	},
	"shift_scale_rotate": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewShiftScaleRotate(b, 0.0625, 0.1, 45, augment.AlwaysApply())
	},
	"optical_distortion": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewOpticalDistortion(b, 0.3, 0.05, augment.AlwaysApply())
	},
	"grid_distortion": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewGridDistortion(b, 0.3, augment.AlwaysApply())
	},
	"grid_shuffle": func(b tensor.ImageBackend) augment.Transform {
		return augment.NewRandomGridShuffle(b, 4, 4, augment.AlwaysApply())
	},
}

func (c Config) transformFactory() (func(b tensor.ImageBackend) []augment.Transform, error) {
	builders := make([]func(tensor.ImageBackend) augment.Transform, 0, len(c.Transforms))
	for _, name := range c.Transforms {
		builder, ok := transformBuilders[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown transform %q (have %s)", name, strings.Join(transformNames(), ", "))
		}
		builders = append(builders, builder)
	}
	return func(b tensor.ImageBackend) []augment.Transform {
		out := make([]augment.Transform, len(builders))
		for i, build := range builders {
			out[i] = build(b)
		}
		return out
	}, nil
}

func transformNames() []string {
	names := make([]string, 0, len(transformBuilders))
	for name := range transformBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
