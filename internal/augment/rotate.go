package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Rotate rotates the payload about its center by an angle drawn uniformly
// from [-Limit, Limit] degrees. The output keeps the input size; uncovered
// corners are filled according to the border mode.
type Rotate struct {
	base
	Limit     float64
	Interp    tensor.Interp
	Border    tensor.BorderMode
	Value     float64
	MaskValue float64
}

// NewRotate creates the transform. Default probability: 0.5.
func NewRotate(b tensor.ImageBackend, limit float64, opts ...Option) *Rotate {
	t := &Rotate{
		base:   newBase(b, 0.5),
		Limit:  limit,
		Interp: tensor.InterpBilinear,
		Border: tensor.BorderReflect,
	}
	t.applyOptions(opts)
	return t
}

func (t *Rotate) Name() string { return "Rotate" }

// Capabilities excludes keypoints: the underlying rotation primitive does
// not carry keypoint support.
func (t *Rotate) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes
}

func (t *Rotate) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	angle := uniform(rng, -t.Limit, t.Limit)

	if tg.Image != nil {
		tg.Image = OnFloatImage(t.backend, func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Rotate(raw, angle, t.Interp, t.Border, t.Value)
		})(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.Rotate(raw, angle, tensor.InterpNearest, t.Border, t.MaskValue)
		})(tg.Mask)
	}
	for i, b := range tg.BBoxes {
		tg.BBoxes[i] = bboxRotate(b, angle, height, width).clip()
	}
	return nil
}

// ShiftScaleRotate applies one random affine map: a rotation and scaling
// about the image center followed by a relative translation.
type ShiftScaleRotate struct {
	base
	ShiftLimit  float64 // fraction of the image extent
	ScaleLimit  float64 // relative deviation from 1
	RotateLimit float64 // degrees
	Interp      tensor.Interp
	Border      tensor.BorderMode
	Value       float64
	MaskValue   float64
}

// NewShiftScaleRotate creates the transform. Default probability: 0.5.
func NewShiftScaleRotate(b tensor.ImageBackend, shiftLimit, scaleLimit, rotateLimit float64, opts ...Option) *ShiftScaleRotate {
	t := &ShiftScaleRotate{
		base:        newBase(b, 0.5),
		ShiftLimit:  shiftLimit,
		ScaleLimit:  scaleLimit,
		RotateLimit: rotateLimit,
		Interp:      tensor.InterpBilinear,
		Border:      tensor.BorderReflect,
	}
	t.applyOptions(opts)
	return t
}

func (t *ShiftScaleRotate) Name() string { return "ShiftScaleRotate" }

func (t *ShiftScaleRotate) Capabilities() Capability {
	return CapImage | CapMask | CapKeypoints
}

func (t *ShiftScaleRotate) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	angle := uniform(rng, -t.RotateLimit, t.RotateLimit)
	scale := 1 + uniform(rng, -t.ScaleLimit, t.ScaleLimit)
	dx := uniform(rng, -t.ShiftLimit, t.ShiftLimit)
	dy := uniform(rng, -t.ShiftLimit, t.ShiftLimit)

	if tg.Image != nil {
		tg.Image = OnFloatImage(t.backend, func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.WarpAffine(raw, dx, dy, scale, angle, t.Interp, t.Border, t.Value)
		})(tg.Image)
	}
	if tg.Mask != nil {
		tg.Mask = OnRank3(func(raw *tensor.RawTensor) *tensor.RawTensor {
			return t.backend.WarpAffine(raw, dx, dy, scale, angle, tensor.InterpNearest, t.Border, t.MaskValue)
		})(tg.Mask)
	}
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpShiftScaleRotate(k, angle, scale, dx, dy, height, width)
	}
	return nil
}
