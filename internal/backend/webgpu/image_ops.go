package webgpu

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// dims3 extracts the (C, H, W) extents of a rank-3 tensor.
func dims3(t *tensor.RawTensor) (c, h, w int) {
	shape := t.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("webgpu: expected rank-3 (C, H, W) tensor, got shape %v", shape))
	}
	return shape[0], shape[1], shape[2]
}

// checkFloat32 rejects non-float32 inputs. The dtype decorators of the
// augmentation layer convert integer images before dispatching to the GPU.
func checkFloat32(op string, t *tensor.RawTensor) {
	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: %s: only float32 is supported, got %s", op, t.DType()))
	}
}

func (b *Backend) must(op string, result *tensor.RawTensor, err error) *tensor.RawTensor {
	if err != nil {
		panic("webgpu: " + op + ": " + err.Error())
	}
	return result
}

// Crop extracts the height×width window at (top, left) from every channel.
func (b *Backend) Crop(t *tensor.RawTensor, top, left, height, width int) *tensor.RawTensor {
	checkFloat32("Crop", t)
	c, h, w := dims3(t)
	if top < 0 || left < 0 || height <= 0 || width <= 0 || top+height > h || left+width > w {
		panic(fmt.Sprintf("webgpu: Crop: window %dx%d at (%d, %d) out of bounds for %dx%d", height, width, top, left, h, w))
	}

	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(height)).putU32(uint32(width)).
		putU32(uint32(top)).putU32(uint32(left))
	out, err := b.runKernel("crop", cropShader,
		[][]byte{t.Data()}, tensor.Shape{c, height, width}, p.bytes())
	return b.must("Crop", out, err)
}

// FlipH mirrors every channel plane left to right.
func (b *Backend) FlipH(t *tensor.RawTensor) *tensor.RawTensor {
	checkFloat32("FlipH", t)
	c, h, w := dims3(t)
	p := new(params).putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w))
	out, err := b.runKernel("flip_h", flipHShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("FlipH", out, err)
}

// FlipV mirrors every channel plane top to bottom.
func (b *Backend) FlipV(t *tensor.RawTensor) *tensor.RawTensor {
	checkFloat32("FlipV", t)
	c, h, w := dims3(t)
	p := new(params).putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w))
	out, err := b.runKernel("flip_v", flipVShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("FlipV", out, err)
}

// Rot90 rotates every channel plane counter-clockwise by k quarter turns.
func (b *Backend) Rot90(t *tensor.RawTensor, k int) *tensor.RawTensor {
	checkFloat32("Rot90", t)
	c, h, w := dims3(t)
	k = ((k % 4) + 4) % 4
	if k == 0 {
		return t.Clone()
	}
	outH, outW := h, w
	if k%2 == 1 {
		outH, outW = w, h
	}

	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(outH)).putU32(uint32(outW)).putU32(uint32(k))
	out, err := b.runKernel("rot90", rot90Shader,
		[][]byte{t.Data()}, tensor.Shape{c, outH, outW}, p.bytes())
	return b.must("Rot90", out, err)
}

// Transpose2D swaps the two spatial axes of every channel plane.
func (b *Backend) Transpose2D(t *tensor.RawTensor) *tensor.RawTensor {
	checkFloat32("Transpose2D", t)
	c, h, w := dims3(t)
	p := new(params).putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w))
	out, err := b.runKernel("transpose2d", transposeShader,
		[][]byte{t.Data()}, tensor.Shape{c, w, h}, p.bytes())
	return b.must("Transpose2D", out, err)
}

// Pad grows every channel plane by the given margins.
func (b *Backend) Pad(t *tensor.RawTensor, top, bottom, left, right int, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	checkFloat32("Pad", t)
	c, h, w := dims3(t)
	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		panic(fmt.Sprintf("webgpu: Pad: negative margin (%d, %d, %d, %d)", top, bottom, left, right))
	}
	outH := h + top + bottom
	outW := w + left + right

	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(outH)).putU32(uint32(outW)).
		putU32(uint32(top)).putU32(uint32(left)).
		putU32(uint32(mode)).putF32(float32(value))
	out, err := b.runKernel("pad", padShader,
		[][]byte{t.Data()}, tensor.Shape{c, outH, outW}, p.bytes())
	return b.must("Pad", out, err)
}

// Resize rescales every channel plane to height×width.
func (b *Backend) Resize(t *tensor.RawTensor, height, width int, interp tensor.Interp) *tensor.RawTensor {
	checkFloat32("Resize", t)
	c, h, w := dims3(t)
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("webgpu: Resize: invalid target size %dx%d", height, width))
	}
	if h == height && w == width {
		return t.Clone()
	}

	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(height)).putU32(uint32(width)).putU32(uint32(interp))
	out, err := b.runKernel("resize", resizeShader,
		[][]byte{t.Data()}, tensor.Shape{c, height, width}, p.bytes())
	return b.must("Resize", out, err)
}

// runWarpAffine dispatches the inverse affine map given by the two matrix
// rows (m00 m01 m02; m10 m11 m12).
func (b *Backend) runWarpAffine(op string, t *tensor.RawTensor, m [6]float64, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	c, h, w := dims3(t)
	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(interp)).putU32(uint32(mode)).putF32(float32(value))
	for _, v := range m {
		p.putF32(float32(v))
	}
	out, err := b.runKernel("warp_affine", warpAffineShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must(op, out, err)
}

// Rotate rotates every channel plane about the image center by angle
// degrees, keeping the input size.
func (b *Backend) Rotate(t *tensor.RawTensor, angle float64, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	checkFloat32("Rotate", t)
	_, h, w := dims3(t)

	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2

	m := [6]float64{
		cos, sin, cx - cos*cx - sin*cy,
		-sin, cos, cy + sin*cx - cos*cy,
	}
	return b.runWarpAffine("Rotate", t, m, interp, mode, value)
}

// WarpAffine applies a rotation and scaling about the image center followed
// by a translation of (shiftX*W, shiftY*H) pixels, keeping the input size.
func (b *Backend) WarpAffine(t *tensor.RawTensor, shiftX, shiftY, scale, angle float64, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	checkFloat32("WarpAffine", t)
	_, h, w := dims3(t)
	if scale <= 0 {
		panic(fmt.Sprintf("webgpu: WarpAffine: scale must be positive, got %v", scale))
	}

	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2
	ox := cx + shiftX*float64(w)
	oy := cy + shiftY*float64(h)

	m := [6]float64{
		cos / scale, sin / scale, (-cos*ox-sin*oy)/scale + cx,
		-sin / scale, cos / scale, (sin*ox-cos*oy)/scale + cy,
	}
	return b.runWarpAffine("WarpAffine", t, m, interp, mode, value)
}

// Remap samples every destination pixel from the fractional source
// coordinates given in mapX and mapY, both of length H*W.
func (b *Backend) Remap(t *tensor.RawTensor, mapX, mapY []float32, interp tensor.Interp, mode tensor.BorderMode, value float64) *tensor.RawTensor {
	checkFloat32("Remap", t)
	c, h, w := dims3(t)
	if len(mapX) != h*w || len(mapY) != h*w {
		panic(fmt.Sprintf("webgpu: Remap: map length %d/%d does not match %dx%d image", len(mapX), len(mapY), h, w))
	}

	p := new(params).
		putU32(uint32(c)).putU32(uint32(h)).putU32(uint32(w)).
		putU32(uint32(interp)).putU32(uint32(mode)).putF32(float32(value))
	out, err := b.runKernel("remap", remapShader,
		[][]byte{t.Data(), float32Bytes(mapX), float32Bytes(mapY)}, t.Shape(), p.bytes())
	return b.must("Remap", out, err)
}

// SwapTiles relocates rectangular tiles according to the move table. The
// moves are lowered to a per-pixel source map and executed by the remap
// kernel with nearest sampling.
func (b *Backend) SwapTiles(t *tensor.RawTensor, moves []tensor.TileMove) *tensor.RawTensor {
	checkFloat32("SwapTiles", t)
	_, h, w := dims3(t)

	mapX := make([]float32, h*w)
	mapY := make([]float32, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mapX[y*w+x] = float32(x)
			mapY[y*w+x] = float32(y)
		}
	}
	for _, m := range moves {
		if m.Height <= 0 || m.Width <= 0 ||
			m.SrcTop < 0 || m.SrcLeft < 0 || m.SrcTop+m.Height > h || m.SrcLeft+m.Width > w ||
			m.DstTop < 0 || m.DstLeft < 0 || m.DstTop+m.Height > h || m.DstLeft+m.Width > w {
			panic(fmt.Sprintf("webgpu: SwapTiles: move %+v out of bounds for %dx%d", m, h, w))
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				idx := (m.DstTop+y)*w + m.DstLeft + x
				mapX[idx] = float32(m.SrcLeft + x)
				mapY[idx] = float32(m.SrcTop + y)
			}
		}
	}
	return b.Remap(t, mapX, mapY, tensor.InterpNearest, tensor.BorderConstant, 0)
}

// Cast converts the tensor to another dtype. The conversion itself runs on
// the host; the result stays tagged with the WebGPU device so pipelines
// remain on one device end to end.
func (b *Backend) Cast(t *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if t.DType() == dtype {
		return t.Clone()
	}
	out := tensor.MustRaw(t.Shape(), dtype, tensor.WebGPU)
	switch {
	case t.DType() == tensor.Uint8 && dtype == tensor.Float32:
		src, dst := t.AsUint8(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case t.DType() == tensor.Float32 && dtype == tensor.Uint8:
		src, dst := t.AsFloat32(), out.AsUint8()
		for i, v := range src {
			f := math.Min(math.Max(float64(v), 0), 255)
			dst[i] = uint8(f + 0.5)
		}
	case t.DType() == tensor.Float64 && dtype == tensor.Float32:
		src, dst := t.AsFloat64(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case t.DType() == tensor.Float32 && dtype == tensor.Float64:
		src, dst := t.AsFloat32(), out.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("webgpu: Cast: unsupported conversion %s -> %s", t.DType(), dtype))
	}
	return out
}

// Clamp limits every element to [lo, hi].
func (b *Backend) Clamp(t *tensor.RawTensor, lo, hi float64) *tensor.RawTensor {
	checkFloat32("Clamp", t)
	p := new(params).
		putU32(uint32(t.NumElements())).
		putF32(float32(lo)).putF32(float32(hi))
	out, err := b.runKernel("clamp", clampShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("Clamp", out, err)
}

// Round rounds every element to the nearest integer value.
func (b *Backend) Round(t *tensor.RawTensor) *tensor.RawTensor {
	checkFloat32("Round", t)
	p := new(params).putU32(uint32(t.NumElements()))
	out, err := b.runKernel("round", roundShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("Round", out, err)
}

// MulScalar multiplies every element by s.
func (b *Backend) MulScalar(t *tensor.RawTensor, s float64) *tensor.RawTensor {
	checkFloat32("MulScalar", t)
	p := new(params).
		putU32(uint32(t.NumElements())).
		putF32(float32(s)).putF32(0)
	out, err := b.runKernel("scale_bias", scaleBiasShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("MulScalar", out, err)
}

// AddScalar adds s to every element.
func (b *Backend) AddScalar(t *tensor.RawTensor, s float64) *tensor.RawTensor {
	checkFloat32("AddScalar", t)
	p := new(params).
		putU32(uint32(t.NumElements())).
		putF32(1).putF32(float32(s))
	out, err := b.runKernel("scale_bias", scaleBiasShader,
		[][]byte{t.Data()}, t.Shape(), p.bytes())
	return b.must("AddScalar", out, err)
}

// float32Bytes views a float32 slice as raw little-endian bytes for buffer
// upload.
func float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}
