package cpu

import (
	"fmt"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// borderIndex maps a possibly out-of-bounds coordinate into [0, n) according
// to the border mode. Returns -1 for BorderConstant when the coordinate is
// outside, which callers resolve to the fill value.
func borderIndex(i, n int, mode tensor.BorderMode) int {
	if i >= 0 && i < n {
		return i
	}
	switch mode {
	case tensor.BorderConstant:
		return -1
	case tensor.BorderReplicate:
		if i < 0 {
			return 0
		}
		return n - 1
	case tensor.BorderCircular:
		return ((i % n) + n) % n
	default: // BorderReflect, without repeating the edge pixel
		if n == 1 {
			return 0
		}
		period := 2 * (n - 1)
		i = ((i % period) + period) % period
		if i >= n {
			i = period - i
		}
		return i
	}
}

// Pad grows every channel plane by the given margins, filling new pixels
// according to the border mode.
func (cpu *CPUBackend) Pad(t *tensor.RawTensor, top, bottom, left, right int, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	c, h, w := dims3(t)
	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		panic(fmt.Sprintf("pad: negative margin (%d, %d, %d, %d)", top, bottom, left, right))
	}

	outH := h + top + bottom
	outW := w + left + right
	out := tensor.MustRaw(tensor.Shape{c, outH, outW}, t.DType(), cpu.device)
	switch t.DType() {
	case tensor.Uint8:
		padKernel(out.AsUint8(), t.AsUint8(), c, h, w, top, left, outH, outW, mode, fromFloat[uint8](value))
	case tensor.Float32:
		padKernel(out.AsFloat32(), t.AsFloat32(), c, h, w, top, left, outH, outW, mode, float32(value))
	case tensor.Float64:
		padKernel(out.AsFloat64(), t.AsFloat64(), c, h, w, top, left, outH, outW, mode, value)
	default:
		panic(fmt.Sprintf("pad: unsupported dtype %s", t.DType()))
	}
	return out
}

func padKernel[T tensor.DType](dst, src []T, c, h, w, top, left, outH, outW int, mode tensor.BorderMode, fill T) {
	for ch := 0; ch < c; ch++ {
		sp := src[ch*h*w:]
		dp := dst[ch*outH*outW:]
		for y := 0; y < outH; y++ {
			sy := borderIndex(y-top, h, mode)
			row := dp[y*outW:]
			if sy < 0 {
				for x := 0; x < outW; x++ {
					row[x] = fill
				}
				continue
			}
			srow := sp[sy*w:]
			for x := 0; x < outW; x++ {
				sx := borderIndex(x-left, w, mode)
				if sx < 0 {
					row[x] = fill
				} else {
					row[x] = srow[sx]
				}
			}
		}
	}
}
