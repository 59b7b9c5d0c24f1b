package augment

import (
	"math"
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// resizeImage resizes an image tensor, routing bilinear resampling of
// integer images through the float normalization decorator.
func resizeImage(b tensor.ImageBackend, raw *tensor.RawTensor, height, width int, interp tensor.Interp) *tensor.RawTensor {
	f := func(t *tensor.RawTensor) *tensor.RawTensor {
		return b.Resize(t, height, width, interp)
	}
	if interp == tensor.InterpBilinear {
		f = OnFloatImage(b, f)
	}
	return f(raw)
}

// resizeMask resizes a mask with nearest interpolation so label values are
// never blended.
func resizeMask(b tensor.ImageBackend, raw *tensor.RawTensor, height, width int) *tensor.RawTensor {
	return OnRank3(func(t *tensor.RawTensor) *tensor.RawTensor {
		return b.Resize(t, height, width, tensor.InterpNearest)
	})(raw)
}

// resizeTargets applies one sampled output size to every present target.
// Normalized bounding boxes are invariant under resizing.
func resizeTargets(b tensor.ImageBackend, tg *Targets, height, width int, interp tensor.Interp) error {
	oldHeight, oldWidth, err := tg.Size()
	if err != nil {
		return err
	}

	if tg.Image != nil {
		tg.Image = resizeImage(b, tg.Image, height, width, interp)
	}
	if tg.Mask != nil {
		tg.Mask = resizeMask(b, tg.Mask, height, width)
	}
	sx := float64(width) / float64(oldWidth)
	sy := float64(height) / float64(oldHeight)
	for i, k := range tg.Keypoints {
		tg.Keypoints[i] = kpScale(k, sx, sy)
	}
	return nil
}

// Resize rescales the payload to a fixed size.
type Resize struct {
	base
	Height, Width int
	Interp        tensor.Interp
}

// NewResize creates the transform. Default interpolation: bilinear;
// default probability: 1.
func NewResize(b tensor.ImageBackend, height, width int, opts ...Option) *Resize {
	t := &Resize{base: newBase(b, 1.0), Height: height, Width: width, Interp: tensor.InterpBilinear}
	t.applyOptions(opts)
	return t
}

func (t *Resize) Name() string { return "Resize" }

func (t *Resize) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *Resize) Apply(rng *rand.Rand, tg *Targets) error {
	return resizeTargets(t.backend, tg, t.Height, t.Width, t.Interp)
}

// LongestMaxSize rescales the payload so its longest side equals MaxSize,
// preserving aspect ratio.
type LongestMaxSize struct {
	base
	MaxSize int
	Interp  tensor.Interp
}

// NewLongestMaxSize creates the transform. Default probability: 1.
func NewLongestMaxSize(b tensor.ImageBackend, maxSize int, opts ...Option) *LongestMaxSize {
	t := &LongestMaxSize{base: newBase(b, 1.0), MaxSize: maxSize, Interp: tensor.InterpBilinear}
	t.applyOptions(opts)
	return t
}

func (t *LongestMaxSize) Name() string { return "LongestMaxSize" }

func (t *LongestMaxSize) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *LongestMaxSize) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	scale := float64(t.MaxSize) / float64(maxInt(height, width))
	newHeight := maxInt(1, int(math.Round(float64(height)*scale)))
	newWidth := maxInt(1, int(math.Round(float64(width)*scale)))
	return resizeTargets(t.backend, tg, newHeight, newWidth, t.Interp)
}

// SmallestMaxSize rescales the payload so its shortest side equals MaxSize,
// preserving aspect ratio.
type SmallestMaxSize struct {
	base
	MaxSize int
	Interp  tensor.Interp
}

// NewSmallestMaxSize creates the transform. Default probability: 1.
func NewSmallestMaxSize(b tensor.ImageBackend, maxSize int, opts ...Option) *SmallestMaxSize {
	t := &SmallestMaxSize{base: newBase(b, 1.0), MaxSize: maxSize, Interp: tensor.InterpBilinear}
	t.applyOptions(opts)
	return t
}

func (t *SmallestMaxSize) Name() string { return "SmallestMaxSize" }

func (t *SmallestMaxSize) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *SmallestMaxSize) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	smaller := height
	if width < height {
		smaller = width
	}
	scale := float64(t.MaxSize) / float64(smaller)
	newHeight := maxInt(1, int(math.Round(float64(height)*scale)))
	newWidth := maxInt(1, int(math.Round(float64(width)*scale)))
	return resizeTargets(t.backend, tg, newHeight, newWidth, t.Interp)
}

// RandomScale rescales the payload by a random factor drawn from
// [1-ScaleLimit, 1+ScaleLimit]. The output size varies between calls.
type RandomScale struct {
	base
	ScaleLimit float64
	Interp     tensor.Interp
}

// NewRandomScale creates the transform. Default probability: 0.5.
func NewRandomScale(b tensor.ImageBackend, scaleLimit float64, opts ...Option) *RandomScale {
	t := &RandomScale{base: newBase(b, 0.5), ScaleLimit: scaleLimit, Interp: tensor.InterpBilinear}
	t.applyOptions(opts)
	return t
}

func (t *RandomScale) Name() string { return "RandomScale" }

func (t *RandomScale) Capabilities() Capability {
	return CapImage | CapMask | CapBBoxes | CapKeypoints
}

func (t *RandomScale) Apply(rng *rand.Rand, tg *Targets) error {
	height, width, err := tg.Size()
	if err != nil {
		return err
	}
	scale := 1 + uniform(rng, -t.ScaleLimit, t.ScaleLimit)
	newHeight := maxInt(1, int(math.Round(float64(height)*scale)))
	newWidth := maxInt(1, int(math.Round(float64(width)*scale)))
	return resizeTargets(t.backend, tg, newHeight, newWidth, t.Interp)
}
