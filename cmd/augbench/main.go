// Command augbench benchmarks augmentation pipelines across backends.
package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/tiff"

	"github.com/WK-Heisenberg/albumentations/internal/backend/cpu"
	"github.com/WK-Heisenberg/albumentations/internal/backend/webgpu"
	"github.com/WK-Heisenberg/albumentations/internal/bench"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	shapes     []string
	iterations []int
	transforms []string
	seed       int64
	warmup     int
	parallel   bool
	cpuOnly    bool
	imagePath  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:          "augbench",
		Short:        "Benchmark image augmentation pipelines on CPU and GPU",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if f.verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			return run(cmd.Context(), logger, f)
		},
	}

	root.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	root.Flags().StringSliceVar(&f.shapes, "shapes", nil, "image shapes to benchmark, CxHxW")
	root.Flags().IntSliceVar(&f.iterations, "iterations", nil, "iterations per shape; last entry repeats")
	root.Flags().StringSliceVar(&f.transforms, "transforms", nil, "transform chain to benchmark")
	root.Flags().Int64Var(&f.seed, "seed", -1, "random seed (overrides config)")
	root.Flags().IntVar(&f.warmup, "warmup", -1, "warmup iterations (overrides config)")
	root.Flags().BoolVar(&f.parallel, "parallel", false, "fan iterations across the worker pool")
	root.Flags().BoolVar(&f.cpuOnly, "cpu-only", false, "skip the WebGPU backend")
	root.Flags().StringVar(&f.imagePath, "image", "", "benchmark a PNG/JPEG/TIFF file instead of random data")
	root.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	return root
}

func run(ctx context.Context, logger *log.Logger, f flags) error {
	cfg := defaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = loadConfig(f.configPath); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", f.configPath)
	}
	mergeFlags(&cfg, f)

	factory, err := cfg.transformFactory()
	if err != nil {
		return err
	}

	opts := bench.Options{
		Warmup:   cfg.Warmup,
		Seed:     cfg.Seed,
		Parallel: cfg.Parallel,
	}

	if f.imagePath != "" {
		img, err := loadImage(f.imagePath)
		if err != nil {
			return err
		}
		opts.Image = img
		shape := img.Shape()
		cfg.Shapes = []string{fmt.Sprintf("%dx%dx%d", shape[0], shape[1], shape[2])}
		logger.Info("benchmarking file", "path", f.imagePath, "shape", shape)
	}

	cases, err := cfg.cases()
	if err != nil {
		return err
	}

	pipelines := []bench.Pipeline{
		{Name: "CPU", Backend: cpu.New(), Transforms: factory},
	}
	if f.cpuOnly {
		logger.Debug("WebGPU backend disabled by flag")
	} else if gpu, err := webgpu.New(); err != nil {
		logger.Warn("WebGPU backend unavailable, running CPU only", "err", err)
	} else {
		defer gpu.Release()
		logger.Info("using GPU adapter", "adapter", gpu.Name())
		pipelines = append(pipelines, bench.Pipeline{Name: "WebGPU", Backend: gpu, Transforms: factory})
	}

	runner := bench.NewRunner(pipelines, opts)
	logger.Info("starting benchmark",
		"run", runner.ID, "cases", len(cases), "transforms", cfg.Transforms, "seed", cfg.Seed)

	results := make([]bench.Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Info("running case", "shape", c.Shape(), "iterations", c.Iterations)

		res, err := runner.Run([]bench.Case{c})
		if err != nil {
			return err
		}
		for _, m := range res[0].Measurements {
			if m.Err != nil {
				logger.Error("pipeline failed", "pipeline", m.Pipeline, "err", m.Err)
				continue
			}
			logger.Debug("case done", "pipeline", m.Pipeline, "fps", fmt.Sprintf("%.1f", m.FPS))
		}
		results = append(results, res...)
	}

	fmt.Println(bench.RenderTable(results))
	return nil
}

func mergeFlags(cfg *Config, f flags) {
	if len(f.shapes) > 0 {
		cfg.Shapes = f.shapes
	}
	if len(f.iterations) > 0 {
		cfg.Iterations = f.iterations
	}
	if len(f.transforms) > 0 {
		cfg.Transforms = f.transforms
	}
	if f.seed >= 0 {
		cfg.Seed = f.seed
	}
	if f.warmup >= 0 {
		cfg.Warmup = f.warmup
	}
	if f.parallel {
		cfg.Parallel = true
	}
}

func loadImage(path string) (*tensor.RawTensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return tensor.FromImage(img, tensor.CPU), nil
}
