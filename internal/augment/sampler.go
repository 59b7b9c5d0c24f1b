package augment

import (
	"math"
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Rect is an absolute pixel rectangle, half-open on neither side:
// [XMin, XMax) × [YMin, YMax) covers XMax-XMin by YMax-YMin pixels.
type Rect struct {
	XMin, YMin, XMax, YMax int
}

// CropParams is a sampled crop described by its pixel size and normalized
// start fractions of the remaining slack along each axis. Transforms that
// resize the crop afterwards (RandomSizedCrop, RandomResizedCrop,
// RandomSizedBBoxSafeCrop) use this convention; plain RandomCrop and
// CropNonEmptyMaskIfExists use absolute offsets instead.
type CropParams struct {
	Height, Width  int
	HStart, WStart float64
}

// Rect resolves the normalized start fractions against a concrete image
// size: y1 = int((H-h) * hStart), truncated toward zero.
func (p CropParams) Rect(height, width int) Rect {
	y1 := int(float64(height-p.Height) * p.HStart)
	x1 := int(float64(width-p.Width) * p.WStart)
	return Rect{XMin: x1, YMin: y1, XMax: x1 + p.Width, YMax: y1 + p.Height}
}

// RandomCropOffsets draws integer crop offsets uniformly from
// [0, height-cropHeight] × [0, width-cropWidth].
func RandomCropOffsets(rng *rand.Rand, height, width, cropHeight, cropWidth int) (int, int, error) {
	if cropHeight > height || cropWidth > width {
		return 0, 0, configErrorf("random_crop",
			"crop size (%d, %d) is larger than image (%d, %d)", cropHeight, cropWidth, height, width)
	}
	return rng.Intn(height - cropHeight + 1), rng.Intn(width - cropWidth + 1), nil
}

// RandomResizedCropParams samples a crop by target area and log-uniform
// aspect ratio, making up to 10 attempts before falling back to the largest
// centered crop whose aspect ratio fits inside [ratioMin, ratioMax].
func RandomResizedCropParams(rng *rand.Rand, height, width int, scaleMin, scaleMax, ratioMin, ratioMax float64) CropParams {
	area := float64(height * width)

	for attempt := 0; attempt < 10; attempt++ {
		targetArea := uniform(rng, scaleMin, scaleMax) * area
		aspect := math.Exp(uniform(rng, math.Log(ratioMin), math.Log(ratioMax)))

		w := int(math.Round(math.Sqrt(targetArea * aspect)))
		h := int(math.Round(math.Sqrt(targetArea / aspect)))

		if 0 < w && w <= width && 0 < h && h <= height {
			i := rng.Intn(height - h + 1)
			j := rng.Intn(width - w + 1)
			return CropParams{
				Height: h,
				Width:  w,
				HStart: float64(i) / (float64(height-h) + 1e-10),
				WStart: float64(j) / (float64(width-w) + 1e-10),
			}
		}
	}

	// Fallback: center a crop whose aspect ratio is the image's own,
	// clamped into [ratioMin, ratioMax].
	inRatio := float64(width) / float64(height)
	var w, h int
	switch {
	case inRatio < ratioMin:
		w = width
		h = int(math.Round(float64(w) / ratioMin))
	case inRatio > ratioMax:
		h = height
		w = int(math.Round(float64(h) * ratioMax))
	default:
		w = width
		h = height
	}
	i := (height - h) / 2
	j := (width - w) / 2
	return CropParams{
		Height: h,
		Width:  w,
		HStart: float64(i) / (float64(height-h) + 1e-10),
		WStart: float64(j) / (float64(width-w) + 1e-10),
	}
}

// BBoxSafeCropParams samples a crop guaranteed to contain the (erosion-
// shrunk) union of the given normalized boxes. Without boxes it degrades to
// an erosion-bounded random crop that preserves the image aspect ratio.
func BBoxSafeCropParams(rng *rand.Rand, height, width int, boxes []BBox, erosionRate float64) CropParams {
	if len(boxes) == 0 {
		erosiveH := int(float64(height) * (1.0 - erosionRate))
		cropH := height
		if erosiveH < height {
			cropH = erosiveH + rng.Intn(height-erosiveH+1)
		}
		return CropParams{
			Height: cropH,
			Width:  maxInt(1, cropH*width/height),
			HStart: rng.Float64(),
			WStart: rng.Float64(),
		}
	}

	union := UnionOfBBoxes(boxes, erosionRate)
	big := expandUnion(union, rng)
	bw := big.XMax - big.XMin
	bh := big.YMax - big.YMin

	p := CropParams{Height: height, Width: width}
	if bh < 1.0 {
		p.Height = maxInt(1, int(float64(height)*bh))
		p.HStart = clampFloat(big.YMin/(1.0-bh), 0, 1)
	}
	if bw < 1.0 {
		p.Width = maxInt(1, int(float64(width)*bw))
		p.WStart = clampFloat(big.XMin/(1.0-bw), 0, 1)
	}
	return p
}

// NonEmptyMaskCropParams samples an absolute crop rectangle that contains a
// uniformly chosen non-zero mask pixel when one exists. Ignore values are
// zeroed by value match and ignore channels dropped by index before the
// mask is inspected; a fully zero mask degrades to a plain random crop.
func NonEmptyMaskCropParams(rng *rand.Rand, mask *tensor.RawTensor, cropHeight, cropWidth int, ignoreValues []float64, ignoreChannels []int) (Rect, error) {
	height, width := mask.Shape().HW()
	if cropHeight > height || cropWidth > width {
		return Rect{}, configErrorf("crop_non_empty_mask",
			"crop size (%d, %d) is larger than image (%d, %d)", cropHeight, cropWidth, height, width)
	}

	nonZero := nonZeroPixels(mask, ignoreValues, ignoreChannels)

	var xMin, yMin int
	if len(nonZero) == 0 {
		xMin = rng.Intn(width - cropWidth + 1)
		yMin = rng.Intn(height - cropHeight + 1)
	} else {
		pick := nonZero[rng.Intn(len(nonZero))]
		y, x := pick/width, pick%width
		xMin = clampInt(x-rng.Intn(cropWidth), 0, width-cropWidth)
		yMin = clampInt(y-rng.Intn(cropHeight), 0, height-cropHeight)
	}

	return Rect{XMin: xMin, YMin: yMin, XMax: xMin + cropWidth, YMax: yMin + cropHeight}, nil
}

// nonZeroPixels returns the flat y*width+x indices of pixels whose
// channel-summed value is non-zero after ignore filtering.
func nonZeroPixels(mask *tensor.RawTensor, ignoreValues []float64, ignoreChannels []int) []int {
	shape := mask.Shape()
	height, width := shape.HW()
	channels := shape.Channels()

	ignoreValue := func(v float64) bool {
		for _, iv := range ignoreValues {
			if v == iv {
				return true
			}
		}
		return false
	}
	ignoreChannel := func(c int) bool {
		if len(shape) != 3 {
			return false
		}
		for _, ic := range ignoreChannels {
			if c == ic {
				return true
			}
		}
		return false
	}

	at := maskReader(mask)
	plane := height * width

	var nonZero []int
	for idx := 0; idx < plane; idx++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			if ignoreChannel(c) {
				continue
			}
			v := at(c*plane + idx)
			if !ignoreValue(v) {
				sum += v
			}
		}
		if sum != 0 {
			nonZero = append(nonZero, idx)
		}
	}
	return nonZero
}

// maskReader returns a flat float64 accessor regardless of mask dtype.
func maskReader(mask *tensor.RawTensor) func(i int) float64 {
	switch mask.DType() {
	case tensor.Uint8:
		data := mask.AsUint8()
		return func(i int) float64 { return float64(data[i]) }
	case tensor.Float32:
		data := mask.AsFloat32()
		return func(i int) float64 { return float64(data[i]) }
	case tensor.Float64:
		data := mask.AsFloat64()
		return func(i int) float64 { return data[i] }
	default:
		panic("unsupported mask dtype")
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
