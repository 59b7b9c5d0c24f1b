package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// OpticalDistortion applies a radial lens distortion with a randomly drawn
// coefficient and a random principal-point shift.
type OpticalDistortion struct {
	base
	DistortLimit float64
	ShiftLimit   float64
	Interp       tensor.Interp
	Border       tensor.BorderMode
	Value        float64
	MaskValue    float64
}

// NewOpticalDistortion creates the transform. Default probability: 0.5.
func NewOpticalDistortion(b tensor.ImageBackend, distortLimit, shiftLimit float64, opts ...Option) *OpticalDistortion {
	t := &OpticalDistortion{
		base:         newBase(b, 0.5),
		DistortLimit: distortLimit,
		ShiftLimit:   shiftLimit,
		Interp:       tensor.InterpBilinear,
		Border:       tensor.BorderReflect,
	}
	t.applyOptions(opts)
	return t
}

func (t *OpticalDistortion) Name() string { return "OpticalDistortion" }

func (t *OpticalDistortion) Capabilities() Capability {
	return CapImage | CapMask
}

func (t *OpticalDistortion) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	k := uniform(rng, -t.DistortLimit, t.DistortLimit)
	dx := uniform(rng, -t.ShiftLimit, t.ShiftLimit)
	dy := uniform(rng, -t.ShiftLimit, t.ShiftLimit)

	mapX, mapY := opticalDistortionMaps(height, width, k, dx, dy)

	if tg.Image != nil {
		tg.Image = OnFloatImage(t.backend, func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Remap(raw, mapX, mapY, t.Interp, t.Border, t.Value)
		})(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Remap(raw, mapX, mapY, tensor.InterpNearest, t.Border, t.MaskValue)
		})(tg.Mask)
	}
	return nil
}

// opticalDistortionMaps builds per-pixel source coordinates for a radial
// distortion with coefficient k around a principal point shifted by
// (dx, dy) pixels. The focal lengths are taken as the image extents.
func opticalDistortionMaps(height, width int, k, dx, dy float64) (mapX, mapY []float32) {
	fx := float64(width)
	fy := float64(height)
	cx := float64(width)*0.5 + dx
	cy := float64(height)*0.5 + dy

	mapX = make([]float32, height*width)
	mapY = make([]float32, height*width)
	for v := 0; v < height; v++ {
		y := (float64(v) - cy) / fy
		for u := 0; u < width; u++ {
			x := (float64(u) - cx) / fx
			r2 := x*x + y*y
			factor := 1 + k*r2 + k*r2*r2
			idx := v*width + u
			mapX[idx] = float32(x*factor*fx + cx)
			mapY[idx] = float32(y*factor*fy + cy)
		}
	}
	return mapX, mapY
}

// GridDistortion divides each axis into NumSteps segments and stretches or
// compresses every segment by an independent random factor, producing a
// piecewise-linear warp.
type GridDistortion struct {
	base
	NumSteps     int
	DistortLimit float64
	Interp       tensor.Interp
	Border       tensor.BorderMode
	Value        float64
	MaskValue    float64
}

// NewGridDistortion creates the transform. Default: 5 steps, probability 0.5.
func NewGridDistortion(b tensor.ImageBackend, distortLimit float64, opts ...Option) *GridDistortion {
	t := &GridDistortion{
		base:         newBase(b, 0.5),
		NumSteps:     5,
		DistortLimit: distortLimit,
		Interp:       tensor.InterpBilinear,
		Border:       tensor.BorderReflect,
	}
	t.applyOptions(opts)
	return t
}

func (t *GridDistortion) Name() string { return "GridDistortion" }

func (t *GridDistortion) Capabilities() Capability {
	return CapImage | CapMask
}

func (t *GridDistortion) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	if t.NumSteps <= 0 {
		return configErrorf(t.Name(), "num steps must be positive, got %d", t.NumSteps)
	}

	stepsX := make([]float64, t.NumSteps+1)
	stepsY := make([]float64, t.NumSteps+1)
	for i := range stepsX {
		stepsX[i] = 1 + uniform(rng, -t.DistortLimit, t.DistortLimit)
		stepsY[i] = 1 + uniform(rng, -t.DistortLimit, t.DistortLimit)
	}

	xx := distortAxis(width, t.NumSteps, stepsX)
	yy := distortAxis(height, t.NumSteps, stepsY)

	mapX := make([]float32, height*width)
	mapY := make([]float32, height*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			mapX[idx] = xx[x]
			mapY[idx] = yy[y]
		}
	}

	if tg.Image != nil {
		tg.Image = OnFloatImage(t.backend, func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Remap(raw, mapX, mapY, t.Interp, t.Border, t.Value)
		})(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Remap(raw, mapX, mapY, tensor.InterpNearest, t.Border, t.MaskValue)
		})(tg.Mask)
	}
	return nil
}

// distortAxis builds the 1-D source coordinate table for one axis: each of
// the numSteps segments keeps its pixel span in the destination but its
// source span is scaled by the matching step factor, accumulated along the
// axis.
func distortAxis(extent, numSteps int, steps []float64) []float32 {
	out := make([]float32, extent)
	step := extent / numSteps

	prev := 0.0
	idx := 0
	for start := 0; start < extent; start += step {
		end := start + step
		var cur float64
		if end > extent {
			end = extent
			cur = float64(extent)
		} else {
			cur = prev + float64(step)*steps[idx]
		}

		n := end - start
		for i := 0; i < n; i++ {
			if n == 1 {
				out[start+i] = float32(prev)
			} else {
				out[start+i] = float32(prev + (cur-prev)*float64(i)/float64(n-1))
			}
		}
		prev = cur
		idx++
	}
	return out
}

// RandomGridShuffle partitions the payload into a grid of tiles and
// shuffles tiles of identical size among each other.
type RandomGridShuffle struct {
	base
	Rows, Cols int
}

// NewRandomGridShuffle creates the transform. Default probability: 0.5.
func NewRandomGridShuffle(b tensor.ImageBackend, rows, cols int, opts ...Option) *RandomGridShuffle {
	t := &RandomGridShuffle{base: newBase(b, 0.5), Rows: rows, Cols: cols}
	t.applyOptions(opts)
	return t
}

func (t *RandomGridShuffle) Name() string { return "RandomGridShuffle" }

func (t *RandomGridShuffle) Capabilities() Capability {
	return CapImage | CapMask
}

func (t *RandomGridShuffle) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	grid, err := Partition(height, width, t.Rows, t.Cols)
	if err != nil {
		return err
	}
	moves := PermuteTiles(grid, rng)

	if tg.Image != nil {
		tg.Image = t.backend.SwapTiles(tg.Image, moves)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.SwapTiles(raw, moves)
		})(tg.Mask)
	}
	return nil
}
