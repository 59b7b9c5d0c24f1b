package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// PadIfNeeded pads each side of the payload so it reaches at least the
// configured minimum size, splitting the padding evenly between opposing
// sides.
type PadIfNeeded struct {
	base
	MinHeight int
	MinWidth  int
	Border    tensor.BorderMode
	Value     float64 // image fill for BorderConstant
	MaskValue float64 // mask fill for BorderConstant
}

// NewPadIfNeeded creates the transform. Default border mode: reflect;
// default probability: 1.
func NewPadIfNeeded(b tensor.ImageBackend, minHeight, minWidth int, opts ...Option) *PadIfNeeded {
	t := &PadIfNeeded{
		base:      newBase(b, 1.0),
		MinHeight: minHeight,
		MinWidth:  minWidth,
		Border:    tensor.BorderReflect,
	}
	t.applyOptions(opts)
	return t
}

func (t *PadIfNeeded) Name() string { return "PadIfNeeded" }

func (t *PadIfNeeded) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *PadIfNeeded) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	var top, bottom, left, right int
	if height < t.MinHeight {
		top = (t.MinHeight - height) / 2
		bottom = t.MinHeight - height - top
	}
	if width < t.MinWidth {
		left = (t.MinWidth - width) / 2
		right = t.MinWidth - width - left
	}
	if top == 0 && bottom == 0 && left == 0 && right == 0 {
		return nil
	}

	if tg.Image != nil {
		tg.Image = t.backend.Pad(tg.Image, top, bottom, left, right, t.Border, t.Value)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Pad(raw, top, bottom, left, right, t.Border, t.MaskValue)
		})(tg.Mask)
	}

	newHeight := height + top + bottom
	newWidth := width + left + right
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxPad(b, top, left, height, width, newHeight, newWidth)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpShift(k, float64(left), float64(top))
	}
	return nil
}
