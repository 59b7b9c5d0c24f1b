package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// cropTargets applies one crop rectangle consistently to every present
// target. The rectangle must lie within the payload bounds.
func cropTargets(b tensor.ImageBackend, tg *Targets, r Rect) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	if r.XMin < 0 || r.YMin < 0 || r.XMax > width || r.YMax > height || r.XMin >= r.XMax || r.YMin >= r.YMax {
		return configErrorf("crop", "crop rectangle (%d, %d, %d, %d) outside image (%d, %d)",
			r.XMin, r.YMin, r.XMax, r.YMax, height, width)
	}

	cropHeight := r.YMax - r.YMin
	cropWidth := r.XMax - r.XMin

	if tg.Image != nil {
		tg.Image = b.Crop(tg.Image, r.YMin, r.XMin, cropHeight, cropWidth)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return b.Crop(raw, r.YMin, r.XMin, cropHeight, cropWidth)
		})(tg.Mask)
	}
	for i, bb := range tg.BBoxes {
		tg.BBoxes[i] = bboxCrop(bb, r.XMin, r.YMin, r.XMax, r.YMax, height, width)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpShift(k, float64(-r.XMin), float64(-r.YMin))
	}
	return nil
}

// Crop cuts a fixed rectangle out of the payload.
type Crop struct {
	base
	Region Rect
}

// NewCrop creates the transform. Default probability: 1.
func NewCrop(b tensor.ImageBackend, region Rect, opts ...Option) *Crop {
	t := &Crop{base: newBase(b, 1.0), Region: region}
	t.applyOptions(opts)
	return t
}

func (t *Crop) Name() string { return "Crop" }

func (t *Crop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *Crop) Apply(rng *rand.Rand, tg *Targets) error {
	return cropTargets(t.backend, tg, t.Region)
}

// CenterCrop cuts a fixed-size rectangle from the payload center.
type CenterCrop struct {
	base
	Height, Width int
}

// NewCenterCrop creates the transform. Default probability: 1.
func NewCenterCrop(b tensor.ImageBackend, height, width int, opts ...Option) *CenterCrop {
	t := &CenterCrop{base: newBase(b, 1.0), Height: height, Width: width}
	t.applyOptions(opts)
	return t
}

func (t *CenterCrop) Name() string { return "CenterCrop" }

func (t *CenterCrop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *CenterCrop) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	if t.Height > height || t.Width > width {
		return configErrorf(t.Name(),
			"crop size (%d, %d) is larger than image (%d, %d)", t.Height, t.Width, height, width)
	}
	y1 := (height - t.Height) / 2
	x1 := (width - t.Width) / 2
	return cropTargets(t.backend, tg, Rect{XMin: x1, YMin: y1, XMax: x1 + t.Width, YMax: y1 + t.Height})
}

// RandomCrop cuts a fixed-size rectangle at a uniformly random position.
type RandomCrop struct {
	base
	Height, Width int
}

// NewRandomCrop creates the transform. Default probability: 1.
func NewRandomCrop(b tensor.ImageBackend, height, width int, opts ...Option) *RandomCrop {
	t := &RandomCrop{base: newBase(b, 1.0), Height: height, Width: width}
	t.applyOptions(opts)
	return t
}

func (t *RandomCrop) Name() string { return "RandomCrop" }

func (t *RandomCrop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *RandomCrop) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	y1, x1, err := RandomCropOffsets(rng, height, width, t.Height, t.Width)
	if err != nil {
		return err
	}
	return cropTargets(t.backend, tg, Rect{XMin: x1, YMin: y1, XMax: x1 + t.Width, YMax: y1 + t.Height})
}

// RandomCropNearBBox cuts a crop around a given region of interest, with
// each edge independently shifted by up to MaxPartShift of the region
// extent and clamped to the image bounds.
type RandomCropNearBBox struct {
	base
	CropRegion   Rect
	MaxPartShift float64
}

// NewRandomCropNearBBox creates the transform. Default shift: 0.3 of the
// region extent; default probability: 1.
func NewRandomCropNearBBox(b tensor.ImageBackend, cropRegion Rect, opts ...Option) *RandomCropNearBBox {
	t := &RandomCropNearBBox{base: newBase(b, 1.0), CropRegion: cropRegion, MaxPartShift: 0.3}
	t.applyOptions(opts)
	return t
}

func (t *RandomCropNearBBox) Name() string { return "RandomCropNearBBox" }

func (t *RandomCropNearBBox) Capabilities() Capability {
	return CapImage | CapMask
}

func (t *RandomCropNearBBox) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	hShift := int(float64(t.CropRegion.YMax-t.CropRegion.YMin) * t.MaxPartShift)
	wShift := int(float64(t.CropRegion.XMax-t.CropRegion.XMin) * t.MaxPartShift)

	r := Rect{
		XMin: t.CropRegion.XMin - randRangeInt(rng, -wShift, wShift),
		YMin: t.CropRegion.YMin - randRangeInt(rng, -hShift, hShift),
		XMax: t.CropRegion.XMax + randRangeInt(rng, -wShift, wShift),
		YMax: t.CropRegion.YMax + randRangeInt(rng, -hShift, hShift),
	}
	r.XMin = clampInt(r.XMin, 0, width-1)
	r.YMin = clampInt(r.YMin, 0, height-1)
	r.XMax = clampInt(r.XMax, r.XMin+1, width)
	r.YMax = clampInt(r.YMax, r.YMin+1, height)

	return cropTargets(t.backend, tg, r)
}

// randRangeInt draws uniformly from [lo, hi] inclusive.
func randRangeInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// RandomSizedCrop cuts a crop with height drawn from [MinHeight, MaxHeight]
// and width tied to it by W2HRatio, then rescales to the fixed output size.
type RandomSizedCrop struct {
	base
	MinHeight, MaxHeight int
	Height, Width        int
	W2HRatio             float64
	Interp               tensor.Interp
}

// NewRandomSizedCrop creates the transform. Default probability: 1.
func NewRandomSizedCrop(b tensor.ImageBackend, minHeight, maxHeight, height, width int, opts ...Option) *RandomSizedCrop {
	t := &RandomSizedCrop{
		base:      newBase(b, 1.0),
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		Height:    height,
		Width:     width,
		W2HRatio:  1.0,
		Interp:    tensor.InterpBilinear,
	}
	t.applyOptions(opts)
	return t
}

func (t *RandomSizedCrop) Name() string { return "RandomSizedCrop" }

func (t *RandomSizedCrop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *RandomSizedCrop) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	cropHeight := randRangeInt(rng, t.MinHeight, t.MaxHeight)
	cropWidth := maxInt(1, int(float64(cropHeight)*t.W2HRatio))
	if cropHeight > height || cropWidth > width {
		return configErrorf(t.Name(),
			"crop size (%d, %d) is larger than image (%d, %d)", cropHeight, cropWidth, height, width)
	}

	p := CropParams{Height: cropHeight, Width: cropWidth, HStart: rng.Float64(), WStart: rng.Float64()}
	if err := cropTargets(t.backend, tg, p.Rect(height, width)); err != nil {
		return err
	}
	return resizeTargets(t.backend, tg, t.Height, t.Width, t.Interp)
}

// RandomResizedCrop samples a crop by target area and aspect ratio, then
// rescales it to the fixed output size.
type RandomResizedCrop struct {
	base
	Height, Width      int
	ScaleMin, ScaleMax float64
	RatioMin, RatioMax float64
	Interp             tensor.Interp
}

// NewRandomResizedCrop creates the transform with the conventional scale
// range (0.08, 1.0) and ratio range (3/4, 4/3). Default probability: 1.
func NewRandomResizedCrop(b tensor.ImageBackend, height, width int, opts ...Option) *RandomResizedCrop {
	t := &RandomResizedCrop{
		base:     newBase(b, 1.0),
		Height:   height,
		Width:    width,
		ScaleMin: 0.08,
		ScaleMax: 1.0,
		RatioMin: 3.0 / 4.0,
		RatioMax: 4.0 / 3.0,
		Interp:   tensor.InterpBilinear,
	}
	t.applyOptions(opts)
	return t
}

func (t *RandomResizedCrop) Name() string { return "RandomResizedCrop" }

func (t *RandomResizedCrop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *RandomResizedCrop) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	p := RandomResizedCropParams(rng, height, width, t.ScaleMin, t.ScaleMax, t.RatioMin, t.RatioMax)
	if err := cropTargets(t.backend, tg, p.Rect(height, width)); err != nil {
		return err
	}
	return resizeTargets(t.backend, tg, t.Height, t.Width, t.Interp)
}

// RandomSizedBBoxSafeCrop cuts a random crop that keeps every bounding box
// (shrunk by the erosion rate) inside, then rescales to the fixed output
// size.
type RandomSizedBBoxSafeCrop struct {
	base
	Height, Width int
	ErosionRate   float64
	Interp        tensor.Interp
}

// NewRandomSizedBBoxSafeCrop creates the transform. Default probability: 1.
func NewRandomSizedBBoxSafeCrop(b tensor.ImageBackend, height, width int, erosionRate float64, opts ...Option) *RandomSizedBBoxSafeCrop {
	t := &RandomSizedBBoxSafeCrop{
		base:        newBase(b, 1.0),
		Height:      height,
		Width:       width,
		ErosionRate: erosionRate,
		Interp:      tensor.InterpBilinear,
	}
	t.applyOptions(opts)
	return t
}

func (t *RandomSizedBBoxSafeCrop) Name() string { return "RandomSizedBBoxSafeCrop" }

func (t *RandomSizedBBoxSafeCrop) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes
}

func (t *RandomSizedBBoxSafeCrop) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	p := BBoxSafeCropParams(rng, height, width, tg.BBoxes, t.ErosionRate)
	if err := cropTargets(t.backend, tg, p.Rect(height, width)); err != nil {
		return err
	}
	return resizeTargets(t.backend, tg, t.Height, t.Width, t.Interp)
}

// CropNonEmptyMaskIfExists cuts a fixed-size crop that contains a randomly
// chosen non-zero mask pixel whenever the mask has one.
type CropNonEmptyMaskIfExists struct {
	base
	Height, Width  int
	IgnoreValues   []float64
	IgnoreChannels []int
}

// NewCropNonEmptyMaskIfExists creates the transform. Default probability: 1.
func NewCropNonEmptyMaskIfExists(b tensor.ImageBackend, height, width int, opts ...Option) *CropNonEmptyMaskIfExists {
	t := &CropNonEmptyMaskIfExists{base: newBase(b, 1.0), Height: height, Width: width}
	t.applyOptions(opts)
	return t
}

func (t *CropNonEmptyMaskIfExists) Name() string { return "CropNonEmptyMaskIfExists" }

func (t *CropNonEmptyMaskIfExists) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *CropNonEmptyMaskIfExists) Apply(rng *rand.Rand, tg *Targets) error {
	if tg.Mask == nil {
		return configErrorf(t.Name(), "mask target is required")
	}
	r, err := NonEmptyMaskCropParams(rng, tg.Mask, t.Height, t.Width, t.IgnoreValues, t.IgnoreChannels)
	if err != nil {
		return err
	}
	return cropTargets(t.backend, tg, r)
}
