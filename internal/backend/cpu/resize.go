package cpu

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/WK-Heisenberg/albumentations/internal/parallel"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Resize rescales every channel plane to height×width.
// Uint8 tensors with 1 or 3 channels take a packed-pixel fast path through
// the x/image scalers; everything else runs the planar kernels.
func (cpu *CPUBackend) Resize(t *tensor.RawTensor, height, width int, interp tensor.Interp) *tensor.RawTensor {
	c, h, w := dims3(t)
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("resize: invalid target size %dx%d", height, width))
	}
	if h == height && w == width {
		return t.Clone()
	}

	if t.DType() == tensor.Uint8 && (c == 1 || c == 3) {
		return cpu.resizeUint8Packed(t, height, width, interp)
	}

	out := tensor.MustRaw(tensor.Shape{c, height, width}, t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		resizeKernel(out.AsUint8(), t.AsUint8(), c, h, w, height, width, interp, cpu.par)
	case tensor.Float32:
		resizeKernel(out.AsFloat32(), t.AsFloat32(), c, h, w, height, width, interp, cpu.par)
	case tensor.Float64:
		resizeKernel(out.AsFloat64(), t.AsFloat64(), c, h, w, height, width, interp, cpu.par)
	default:
		panic(fmt.Sprintf("resize: unsupported dtype %s", t.DType()))
	}
	return out
}

func resizeScale(src, dst int) float64 {
	return float64(src) / float64(dst)
}

func resizeKernel[T tensor.DType](dst, src []T, c, h, w, outH, outW int, interp tensor.Interp, par parallel.Config) {
	sy := resizeScale(h, outH)
	sx := resizeScale(w, outW)

	parallel.ForRows(c, outH, func(ch, y int) {
		sp := src[ch*h*w:]
		row := dst[ch*outH*outW+y*outW:]
		switch interp {
		case tensor.InterpNearest:
			srcY := min(int(float64(y)*sy), h-1)
			srow := sp[srcY*w:]
			for x := 0; x < outW; x++ {
				srcX := min(int(float64(x)*sx), w-1)
				row[x] = srow[srcX]
			}
		default: // bilinear
			fy := (float64(y)+0.5)*sy - 0.5
			y0 := int(math.Floor(fy))
			wy := fy - float64(y0)
			y1 := min(max(y0+1, 0), h-1)
			y0 = min(max(y0, 0), h-1)
			r0 := sp[y0*w:]
			r1 := sp[y1*w:]
			for x := 0; x < outW; x++ {
				fx := (float64(x)+0.5)*sx - 0.5
				x0 := int(math.Floor(fx))
				wx := fx - float64(x0)
				x1 := min(max(x0+1, 0), w-1)
				x0 = min(max(x0, 0), w-1)
				top := float64(r0[x0])*(1-wx) + float64(r0[x1])*wx
				bot := float64(r1[x0])*(1-wx) + float64(r1[x1])*wx
				row[x] = fromFloat[T](top*(1-wy) + bot*wy)
			}
		}
	}, par)
}

// resizeUint8Packed converts a planar uint8 tensor to packed NRGBA, scales
// with the x/image resamplers and converts back.
func (cpu *CPUBackend) resizeUint8Packed(t *tensor.RawTensor, height, width int, interp tensor.Interp) *tensor.RawTensor {
	c, h, w := dims3(t)
	data := t.AsUint8()
	plane := h * w

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			i := y*w + x
			if c == 1 {
				v := data[i]
				img.Pix[o], img.Pix[o+1], img.Pix[o+2] = v, v, v
			} else {
				img.Pix[o] = data[i]
				img.Pix[o+1] = data[plane+i]
				img.Pix[o+2] = data[2*plane+i]
			}
			img.Pix[o+3] = 0xff
		}
	}

	scaler := draw.Scaler(draw.BiLinear)
	if interp == tensor.InterpNearest {
		scaler = draw.NearestNeighbor
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	out := tensor.MustRaw(tensor.Shape{c, height, width}, tensor.Uint8, cpu.device)
	od := out.AsUint8()
	outPlane := height * width
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			o := scaled.PixOffset(x, y)
			i := y*width + x
			od[i] = scaled.Pix[o]
			if c == 3 {
				od[outPlane+i] = scaled.Pix[o+1]
				od[2*outPlane+i] = scaled.Pix[o+2]
			}
		}
	}
	return out
}
