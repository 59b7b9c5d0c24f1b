// Package bench measures augmentation pipeline throughput, comparing the
// same transform chain across backends.
package bench

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/WK-Heisenberg/albumentations/internal/augment"
	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Pipeline is one named contestant: a backend plus a factory producing the
// transform chain to run on it. The factory is called once per worker so
// parallel runs never share transform state.
type Pipeline struct {
	Name       string
	Backend    tensor.ImageBackend
	Transforms func(b tensor.ImageBackend) []augment.Transform
}

// Case is a single benchmark configuration.
type Case struct {
	Channels   int
	Height     int
	Width      int
	Iterations int
}

// Shape returns the image shape the case benchmarks.
func (c Case) Shape() tensor.Shape {
	return tensor.Shape{c.Channels, c.Height, c.Width}
}

// Measurement is the timing summary for one pipeline on one case.
type Measurement struct {
	Pipeline string
	FPS      float64
	Mean     time.Duration // mean per-iteration latency
	Std      time.Duration // standard deviation of per-iteration latency
	Err      error         // non-nil when the pipeline failed on this case
}

// Result collects the measurements of every pipeline on one case.
type Result struct {
	Shape        tensor.Shape
	Iterations   int
	Measurements []Measurement
}

// Options configure a benchmark run.
type Options struct {
	Warmup   int   // untimed iterations before measuring, default 3
	Seed     int64 // seed for data generation and pipeline sampling
	Parallel bool  // fan iterations across the worker pool
	Workers  parallel.Config

	// Image, when set, replaces the random image of every case with this
	// uint8 source (normalized to float32 per backend). Cases should match
	// its dimensions.
	Image *tensor.RawTensor
}

// Runner executes benchmark cases over a fixed set of pipelines. Each run
// is tagged with a fresh ID so interleaved log output stays attributable.
type Runner struct {
	ID        string
	pipelines []Pipeline
	opts      Options
}

// NewRunner creates a Runner.
func NewRunner(pipelines []Pipeline, opts Options) *Runner {
	if opts.Warmup <= 0 {
		opts.Warmup = 3
	}
	if opts.Workers.NumWorkers == 0 {
		opts.Workers = parallel.DefaultConfig()
	}
	return &Runner{
		ID:        uuid.NewString(),
		pipelines: pipelines,
		opts:      opts,
	}
}

// Run executes every case against every pipeline.
func (r *Runner) Run(cases []Case) ([]Result, error) {
	if len(r.pipelines) == 0 {
		return nil, fmt.Errorf("bench: no pipelines to run")
	}

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if c.Iterations <= 0 {
			return nil, fmt.Errorf("bench: case %v has no iterations", c.Shape())
		}

		res := Result{Shape: c.Shape(), Iterations: c.Iterations}
		for _, p := range r.pipelines {
			res.Measurements = append(res.Measurements, r.measure(p, c))
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) measure(p Pipeline, c Case) Measurement {
	m := Measurement{Pipeline: p.Name}

	transforms := p.Transforms(p.Backend)

	// Only generate the targets every transform in the chain can augment.
	caps := augment.CapImage | augment.CapMask | augment.CapBBoxes | augment.CapKeypoints
	for _, t := range transforms {
		caps &= t.Capabilities()
	}

	rng := rand.New(rand.NewSource(r.opts.Seed)) //nolint:gosec // benchmark data only
	img := RandomFloatImage(rng, c.Channels, c.Height, c.Width, p.Backend.Device())
	if r.opts.Image != nil {
		img = FloatFromUint8(r.opts.Image, p.Backend.Device())
	}
	var mask *tensor.RawTensor
	if caps.Has(augment.CapMask) {
		mask = RandomFloatMask(rng, c.Height, c.Width, 8, p.Backend.Device())
	}
	var boxes []augment.BBox
	if caps.Has(augment.CapBBoxes) {
		boxes = RandomBBoxes(rng, 4, c.Height, c.Width)
	}

	runOnce := func(pipe *augment.Compose) error {
		tg := augment.Targets{
			Image:  img,
			Mask:   mask,
			BBoxes: append([]augment.BBox(nil), boxes...),
		}
		return pipe.Run(&tg)
	}

	pipe, err := augment.NewCompose(p.Backend, transforms, augment.WithSeed(r.opts.Seed))
	if err != nil {
		m.Err = err
		return m
	}

	for i := 0; i < r.opts.Warmup; i++ {
		if err := runOnce(pipe); err != nil {
			m.Err = err
			return m
		}
	}

	latencies := make([]float64, c.Iterations)
	start := time.Now()
	if r.opts.Parallel {
		m.Err = r.runParallel(p, c, runOnce, latencies)
	} else {
		for i := range latencies {
			t0 := time.Now()
			if err := runOnce(pipe); err != nil {
				m.Err = err
				return m
			}
			latencies[i] = time.Since(t0).Seconds()
		}
	}
	total := time.Since(start)
	if m.Err != nil {
		return m
	}

	mean, std := stat.MeanStdDev(latencies, nil)
	m.FPS = float64(c.Iterations) / total.Seconds()
	m.Mean = time.Duration(mean * float64(time.Second))
	m.Std = time.Duration(std * float64(time.Second))
	return m
}

// runParallel distributes iterations over the worker pool, one pipeline
// instance per worker so the per-pipeline generators stay unshared.
func (r *Runner) runParallel(p Pipeline, c Case, runOnce func(*augment.Compose) error, latencies []float64) error {
	workers := max(r.opts.Workers.NumWorkers, 1)

	pipes := make([]*augment.Compose, workers)
	for i := range pipes {
		pipe, err := augment.NewCompose(p.Backend, p.Transforms(p.Backend),
			augment.WithSeed(r.opts.Seed+int64(i)))
		if err != nil {
			return err
		}
		pipes[i] = pipe
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	next := 0
	for w := 0; w < workers; w++ {
		lo := next
		hi := lo + (len(latencies)-lo)/(workers-w)
		next = hi
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(pipe *augment.Compose, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				t0 := time.Now()
				if err := runOnce(pipe); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				latencies[i] = time.Since(t0).Seconds()
			}
		}(pipes[w], lo, hi)
	}
	wg.Wait()
	return firstErr
}

// IterationsFor resolves the per-case iteration count from a configured
// list, repeating the last entry when the list is shorter than the cases.
func IterationsFor(counts []int, index int) int {
	if len(counts) == 0 {
		return 10
	}
	if index >= len(counts) {
		return counts[len(counts)-1]
	}
	return counts[index]
}
