package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// VerticalFlip mirrors the payload around the horizontal image axis.
type VerticalFlip struct {
	base
}

// NewVerticalFlip creates the transform. Default probability: 0.5.
func NewVerticalFlip(b tensor.ImageBackend, opts ...Option) *VerticalFlip {
	t := &VerticalFlip{base: newBase(b, 0.5)}
	t.applyOptions(opts)
	return t
}

func (t *VerticalFlip) Name() string { return "VerticalFlip" }

func (t *VerticalFlip) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *VerticalFlip) Apply(rng *rand.Rand, tg *Targets) error {
	height, _, err := tg.Size()
	if err != nil {
		return err
	}

	if tg.Image != nil {
		tg.Image = t.backend.FlipV(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(t.backend.FlipV)(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxVFlip(b)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpVFlip(k, height)
	}
	return nil
}

// HorizontalFlip mirrors the payload around the vertical image axis.
type HorizontalFlip struct {
	base
}

// NewHorizontalFlip creates the transform. Default probability: 0.5.
func NewHorizontalFlip(b tensor.ImageBackend, opts ...Option) *HorizontalFlip {
	t := &HorizontalFlip{base: newBase(b, 0.5)}
	t.applyOptions(opts)
	return t
}

func (t *HorizontalFlip) Name() string { return "HorizontalFlip" }

func (t *HorizontalFlip) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *HorizontalFlip) Apply(rng *rand.Rand, tg *Targets) error {
	_, width, err := tg.Size()
	if err != nil {
		return err
	}

	if tg.Image != nil {
		tg.Image = t.backend.FlipH(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(t.backend.FlipH)(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxHFlip(b)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpHFlip(k, width)
	}
	return nil
}

// Flip mirrors the payload around a randomly chosen axis: horizontal,
// vertical, or both at once.
type Flip struct {
	base
}

// NewFlip creates the transform. Default probability: 0.5.
func NewFlip(b tensor.ImageBackend, opts ...Option) *Flip {
	t := &Flip{base: newBase(b, 0.5)}
	t.applyOptions(opts)
	return t
}

func (t *Flip) Name() string { return "Flip" }

func (t *Flip) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *Flip) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	// -1 flips both axes, 0 vertical, 1 horizontal.
	d := rng.Intn(3) - 1
	horizontal := d == 1 || d == -1
	vertical := d == 0 || d == -1

	flip := func(raw *tensor.RawTensor) *tensor.RawTensor {
		if horizontal {
			raw = t.backend.FlipH(raw)
		}
		if vertical {
			raw = t.backend.FlipV(raw)
		}
		return raw
	}

	if tg.Image != nil {
		tg.Image = flip(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(flip)(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		if horizontal {
			b = bboxHFlip(b)
		}
		if vertical {
			b = bboxVFlip(b)
		}
		tg.BBoxes[i] = b
	}
	for i, k := range tg.Keypoints {
		if horizontal {
			k = kpHFlip(k, width)
		}
		if vertical {
			k = kpVFlip(k, height)
		}
		tg.Keypoints[i] = k
	}
	return nil
}

// Transpose reflects the payload over the main diagonal, swapping the
// spatial axes.
type Transpose struct {
	base
}

// NewTranspose creates the transform. Default probability: 0.5.
func NewTranspose(b tensor.ImageBackend, opts ...Option) *Transpose {
	t := &Transpose{base: newBase(b, 0.5)}
	t.applyOptions(opts)
	return t
}

func (t *Transpose) Name() string { return "Transpose" }

func (t *Transpose) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *Transpose) Apply(rng *rand.Rand, tg *Targets) error {
	if tg.Image != nil {
		tg.Image = t.backend.Transpose2D(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(t.backend.Transpose2D)(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxTranspose(b)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpTranspose(k)
	}
	return nil
}

// RandomRotate90 rotates the payload by a uniformly random multiple of 90
// degrees.
type RandomRotate90 struct {
	base
}

// NewRandomRotate90 creates the transform. Default probability: 0.5.
func NewRandomRotate90(b tensor.ImageBackend, opts ...Option) *RandomRotate90 {
	t := &RandomRotate90{base: newBase(b, 0.5)}
	t.applyOptions(opts)
	return t
}

func (t *RandomRotate90) Name() string { return "RandomRotate90" }

func (t *RandomRotate90) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *RandomRotate90) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	factor := rng.Intn(4)
	if factor == 0 {
		return nil
	}

	if tg.Image != nil {
		tg.Image = t.backend.Rot90(tg.Image, factor)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Rot90(raw, factor)
		})(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxRot90(b, factor)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpRot90(k, factor, height, width)
	}
	return nil
}
