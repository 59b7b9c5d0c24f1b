package cpu

import (
	"fmt"
	"math"

	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// coordFunc maps a destination pixel to fractional source coordinates.
type coordFunc func(x, y int) (sx, sy float64)

// sampleWarp fills dst by evaluating coords for every destination pixel and
// sampling the source plane with the requested interpolation and border
// handling. Source and destination share the (C, H, W) layout; dst may have
// different spatial extents than src.
func sampleWarp[T tensor.DType](dst, src []T, c, h, w, outH, outW int, coords coordFunc, interp tensor.Interp, mode tensor.BorderMode, fill T, par parallel.Config) {
	at := func(sp []T, x, y int) T {
		bx := borderIndex(x, w, mode)
		by := borderIndex(y, h, mode)
		if bx < 0 || by < 0 {
			return fill
		}
		return sp[by*w+bx]
	}

	parallel.ForRows(c, outH, func(ch, y int) {
		sp := src[ch*h*w:]
		row := dst[ch*outH*outW+y*outW:]
		for x := 0; x < outW; x++ {
			sx, sy := coords(x, y)
			if interp == tensor.InterpNearest {
				row[x] = at(sp, int(math.Floor(sx+0.5)), int(math.Floor(sy+0.5)))
				continue
			}
			x0 := int(math.Floor(sx))
			y0 := int(math.Floor(sy))
			wx := sx - float64(x0)
			wy := sy - float64(y0)
			top := float64(at(sp, x0, y0))*(1-wx) + float64(at(sp, x0+1, y0))*wx
			bot := float64(at(sp, x0, y0+1))*(1-wx) + float64(at(sp, x0+1, y0+1))*wx
			row[x] = fromFloat[T](top*(1-wy) + bot*wy)
		}
	}, par)
}

// dispatchWarp runs sampleWarp for the tensor's dtype into a fresh tensor of
// the given spatial extents.
func (cpu *CPUBackend) dispatchWarp(t *tensor.RawTensor, outH, outW int, coords coordFunc, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	c, h, w := dims3(t)
	out := tensor.MustRaw(tensor.Shape{c, outH, outW}, t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		sampleWarp(out.AsUint8(), t.AsUint8(), c, h, w, outH, outW, coords, interp, mode, fromFloat[uint8](value), cpu.par)
	case tensor.Float32:
		sampleWarp(out.AsFloat32(), t.AsFloat32(), c, h, w, outH, outW, coords, interp, mode, float32(value), cpu.par)
	case tensor.Float64:
		sampleWarp(out.AsFloat64(), t.AsFloat64(), c, h, w, outH, outW, coords, interp, mode, value, cpu.par)
	default:
		panic(fmt.Sprintf("warp: unsupported dtype %s", t.DType()))
	}
	return out
}

// Rotate rotates every channel plane about the image center by angle
// degrees, keeping the input size.
func (cpu *CPUBackend) Rotate(t *tensor.RawTensor, angle float64, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	_, h, w := dims3(t)

	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2

	// Inverse map: rotate destination coordinates back onto the source.
	coords := func(x, y int) (float64, float64) {
		dx := float64(x) - cx
		dy := float64(y) - cy
		return cos*dx + sin*dy + cx, -sin*dx + cos*dy + cy
	}
	return cpu.dispatchWarp(t, h, w, coords, interp, mode, value)
}

// WarpAffine applies a rotation and scaling about the image center followed
// by a translation of (shiftX*W, shiftY*H) pixels, keeping the input size.
func (cpu *CPUBackend) WarpAffine(t *tensor.RawTensor, shiftX, shiftY, scale, angle float64, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	_, h, w := dims3(t)
	if scale <= 0 {
		panic(fmt.Sprintf("warpaffine: scale must be positive, got %v", scale))
	}

	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2
	tx := shiftX * float64(w)
	ty := shiftY * float64(h)

	coords := func(x, y int) (float64, float64) {
		dx := float64(x) - cx - tx
		dy := float64(y) - cy - ty
		return (cos*dx+sin*dy)/scale + cx, (-sin*dx+cos*dy)/scale + cy
	}
	return cpu.dispatchWarp(t, h, w, coords, interp, mode, value)
}

// Remap samples every destination pixel from the fractional source
// coordinates given in mapX and mapY, both of length H*W.
func (cpu *CPUBackend) Remap(t *tensor.RawTensor, mapX, mapY []float32, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	_, h, w := dims3(t)
	if len(mapX) != h*w || len(mapY) != h*w {
		panic(fmt.Sprintf("remap: map length %d/%d does not match %dx%d image", len(mapX), len(mapY), h, w))
	}

	coords := func(x, y int) (float64, float64) {
		idx := y*w + x
		return float64(mapX[idx]), float64(mapY[idx])
	}
	return cpu.dispatchWarp(t, h, w, coords, interp, mode, value)
}
