package cpu

import (
	"fmt"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Crop extracts the height×width window at (top, left) from every channel.
func (cpu *CPUBackend) Crop(t *tensor.RawTensor, top, left, height, width int) *tensor.RawTensor {
	c, h, w := dims3(t)
	if top < 0 || left < 0 || height <= 0 || width <= 0 || top+height > h || left+width > w {
		panic(fmt.Sprintf("crop: window %dx%d at (%d, %d) out of bounds for %dx%d", height, width, top, left, h, w))
	}

	out := tensor.MustRaw(tensor.Shape{c, height, width}, t.DType(), cpu.device)
	elem := t.DType().Size()
	src := t.Data()
	dst := out.Data()
	rowBytes := width * elem
	for ch := 0; ch < c; ch++ {
		for y := 0; y < height; y++ {
			so := (((ch*h)+top+y)*w + left) * elem
			do := ((ch*height)+y) * rowBytes
			copy(dst[do:do+rowBytes], src[so:so+rowBytes])
		}
	}
	return out
}

// FlipH mirrors every channel plane left to right.
func (cpu *CPUBackend) FlipH(t *tensor.RawTensor) *tensor.RawTensor {
	c, h, w := dims3(t)
	out := tensor.MustRaw(t.Shape(), t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		flipHKernel(out.AsUint8(), t.AsUint8(), c, h, w)
	case tensor.Float32:
		flipHKernel(out.AsFloat32(), t.AsFloat32(), c, h, w)
	case tensor.Float64:
		flipHKernel(out.AsFloat64(), t.AsFloat64(), c, h, w)
	default:
		panic(fmt.Sprintf("fliph: unsupported dtype %s", t.DType()))
	}
	return out
}

func flipHKernel[T tensor.DType](dst, src []T, c, h, w int) {
	for ch := 0; ch < c; ch++ {
		for y := 0; y < h; y++ {
			row := (ch*h + y) * w
			for x := 0; x < w; x++ {
				dst[row+x] = src[row+w-1-x]
			}
		}
	}
}

// FlipV mirrors every channel plane top to bottom.
func (cpu *CPUBackend) FlipV(t *tensor.RawTensor) *tensor.RawTensor {
	c, h, w := dims3(t)
	out := tensor.MustRaw(t.Shape(), t.DType(), cpu.device)
	elem := t.DType().Size()
	src := t.Data()
	dst := out.Data()
	rowBytes := w * elem
	for ch := 0; ch < c; ch++ {
		for y := 0; y < h; y++ {
			so := (ch*h + h - 1 - y) * rowBytes
			do := (ch*h + y) * rowBytes
			copy(dst[do:do+rowBytes], src[so:so+rowBytes])
		}
	}
	return out
}

// Rot90 rotates every channel plane counter-clockwise by k quarter turns.
func (cpu *CPUBackend) Rot90(t *tensor.RawTensor, k int) *tensor.RawTensor {
	c, h, w := dims3(t)
	k = ((k % 4) + 4) % 4
	if k == 0 {
		return t.Clone()
	}

	outH, outW := h, w
	if k%2 == 1 {
		outH, outW = w, h
	}
	out := tensor.MustRaw(tensor.Shape{c, outH, outW}, t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		rot90Kernel(out.AsUint8(), t.AsUint8(), c, h, w, k)
	case tensor.Float32:
		rot90Kernel(out.AsFloat32(), t.AsFloat32(), c, h, w, k)
	case tensor.Float64:
		rot90Kernel(out.AsFloat64(), t.AsFloat64(), c, h, w, k)
	default:
		panic(fmt.Sprintf("rot90: unsupported dtype %s", t.DType()))
	}
	return out
}

func rot90Kernel[T tensor.DType](dst, src []T, c, h, w, k int) {
	outH, outW := h, w
	if k%2 == 1 {
		outH, outW = w, h
	}
	for ch := 0; ch < c; ch++ {
		sp := src[ch*h*w:]
		dp := dst[ch*outH*outW:]
		for y := 0; y < outH; y++ {
			for x := 0; x < outW; x++ {
				var sy, sx int
				switch k {
				case 1:
					sy, sx = x, w-1-y
				case 2:
					sy, sx = h-1-y, w-1-x
				default: // k == 3
					sy, sx = h-1-x, y
				}
				dp[y*outW+x] = sp[sy*w+sx]
			}
		}
	}
}

// Transpose2D swaps the two spatial axes of every channel plane.
func (cpu *CPUBackend) Transpose2D(t *tensor.RawTensor) *tensor.RawTensor {
	c, h, w := dims3(t)
	out := tensor.MustRaw(tensor.Shape{c, w, h}, t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		transposeKernel(out.AsUint8(), t.AsUint8(), c, h, w)
	case tensor.Float32:
		transposeKernel(out.AsFloat32(), t.AsFloat32(), c, h, w)
	case tensor.Float64:
		transposeKernel(out.AsFloat64(), t.AsFloat64(), c, h, w)
	default:
		panic(fmt.Sprintf("transpose2d: unsupported dtype %s", t.DType()))
	}
	return out
}

func transposeKernel[T tensor.DType](dst, src []T, c, h, w int) {
	for ch := 0; ch < c; ch++ {
		sp := src[ch*h*w:]
		dp := dst[ch*h*w:]
		for y := 0; y < w; y++ {
			for x := 0; x < h; x++ {
				dp[y*h+x] = sp[x*w+y]
			}
		}
	}
}
