package augment

import (
	"fmt"
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// Capability declares which target types a transform knows how to augment.
type Capability uint8

// Capability flags.
const (
	CapImage Capability = 1 << iota
	CapMask
	CapBBoxes
	CapKeypoints
)

// Has reports whether c includes every capability in want.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Targets is the payload of one augmentation call: an image optionally
// paired with a mask, bounding boxes and keypoints. One sampled parameter
// set is applied consistently across every present target.
type Targets struct {
	Image     *tensor.RawTensor
	Mask      *tensor.RawTensor
	BBoxes    []BBox
	Keypoints []Keypoint
}

// Size returns the spatial size of the payload, preferring the image.
func (tg *Targets) Size() (height, width int, err error) {
	switch {
	case tg.Image != nil:
		h, w := tg.Image.Shape().HW()
		return h, w, nil
	case tg.Mask != nil:
		h, w := tg.Mask.Shape().HW()
		return h, w, nil
	default:
		return 0, 0, configErrorf("", "targets carry neither image nor mask")
	}
}

// present returns the capability flags for the targets actually populated.
func (tg *Targets) present() Capability {
	var c Capability
	if tg.Image != nil {
		c |= CapImage
	}
	if tg.Mask != nil {
		c |= CapMask
	}
	if len(tg.BBoxes) > 0 {
		c |= CapBBoxes
	}
	if len(tg.Keypoints) > 0 {
		c |= CapKeypoints
	}
	return c
}

// Transform is one augmentation operation. Apply samples its random
// parameters from rng and applies them to every target it supports,
// replacing the tensors in tg with freshly computed ones.
type Transform interface {
	Name() string
	Capabilities() Capability
	Probability() float64
	Apply(rng *rand.Rand, tg *Targets) error
}

// base carries the configuration shared by every transform: the primitive
// backend, the application probability and the always-apply bypass.
type base struct {
	backend tensor.ImageBackend
	p       float64
	always  bool
}

func newBase(b tensor.ImageBackend, p float64) base {
	return base{backend: b, p: p}
}

// Probability returns the per-call Bernoulli probability.
func (b *base) Probability() float64 {
	if b.always {
		return 1
	}
	return b.p
}

// Option adjusts the shared transform configuration.
type Option func(*base)

// WithProbability sets the independent per-call application probability.
func WithProbability(p float64) Option {
	return func(b *base) { b.p = p }
}

// AlwaysApply bypasses the Bernoulli trial.
func AlwaysApply() Option {
	return func(b *base) { b.always = true }
}

func (b *base) applyOptions(opts []Option) {
	for _, opt := range opts {
		opt(b)
	}
}

// Compose chains transforms into a pipeline with a single seeded random
// generator, so a fixed seed reproduces the full augmentation sequence.
type Compose struct {
	backend    tensor.ImageBackend
	transforms []Transform
	rng        *rand.Rand
	format     BBoxFormat
}

// ComposeOption adjusts pipeline construction.
type ComposeOption func(*composeConfig)

type composeConfig struct {
	seed     int64
	seeded   bool
	format   BBoxFormat
	required Capability
}

// WithSeed makes the pipeline reproducible.
func WithSeed(seed int64) ComposeOption {
	return func(c *composeConfig) { c.seed = seed; c.seeded = true }
}

// WithBBoxFormat sets the external bounding-box convention.
// Default: FormatPascalVOC (corner-pixel absolute).
func WithBBoxFormat(f BBoxFormat) ComposeOption {
	return func(c *composeConfig) { c.format = f }
}

// WithTargets declares which targets the pipeline will be fed. Every
// transform must support all of them; checked at construction so capability
// gaps surface before any data flows.
func WithTargets(required Capability) ComposeOption {
	return func(c *composeConfig) { c.required = required }
}

// NewCompose builds a pipeline over the given transforms.
func NewCompose(backend tensor.ImageBackend, transforms []Transform, opts ...ComposeOption) (*Compose, error) {
	cfg := composeConfig{format: FormatPascalVOC}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.required != 0 {
		for _, t := range transforms {
			if !t.Capabilities().Has(cfg.required) {
				return nil, fmt.Errorf("%w: transform %s does not support all requested targets",
					ErrUnsupportedCapability, t.Name())
			}
		}
	}

	rng := rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // statistical sampling, not security
	if cfg.seeded {
		rng = rand.New(rand.NewSource(cfg.seed)) //nolint:gosec // reproducible pipelines need a fixed seed
	}

	return &Compose{
		backend:    backend,
		transforms: transforms,
		rng:        rng,
		format:     cfg.format,
	}, nil
}

// Run applies the pipeline to one payload. Each transform is applied with
// an independent Bernoulli trial of its probability. Every transform must
// support all targets the payload carries. The call is atomic: on error the
// input targets are left untouched.
func (c *Compose) Run(tg *Targets) error {
	if err := c.checkDevices(tg); err != nil {
		return err
	}

	present := tg.present()
	for _, t := range c.transforms {
		if !t.Capabilities().Has(present) {
			return fmt.Errorf("%w: transform %s cannot augment all provided targets",
				ErrUnsupportedCapability, t.Name())
		}
	}

	height, width, err := tg.Size()
	if err != nil {
		return err
	}

	// Work on a scratch copy; every primitive is out-of-place, so the
	// caller's tensors stay valid until the final assignment.
	work := Targets{
		Image:     tg.Image,
		Mask:      tg.Mask,
		BBoxes:    make([]BBox, len(tg.BBoxes)),
		Keypoints: append([]Keypoint(nil), tg.Keypoints...),
	}
	for i, b := range tg.BBoxes {
		work.BBoxes[i] = c.format.Normalize(b, height, width)
	}

	for _, t := range c.transforms {
		if c.rng.Float64() >= t.Probability() {
			continue
		}
		if err := t.Apply(c.rng, &work); err != nil {
			return fmt.Errorf("%s: %w", t.Name(), err)
		}
	}

	outHeight, outWidth, err := work.Size()
	if err != nil {
		return err
	}
	for i, b := range work.BBoxes {
		work.BBoxes[i] = c.format.Denormalize(b, outHeight, outWidth)
	}

	*tg = work
	return nil
}

func (c *Compose) checkDevices(tg *Targets) error {
	want := c.backend.Device()
	if tg.Image != nil && tg.Image.Device() != want {
		return fmt.Errorf("%w: image on %s, pipeline backend on %s", ErrDeviceMismatch, tg.Image.Device(), want)
	}
	if tg.Mask != nil && tg.Mask.Device() != want {
		return fmt.Errorf("%w: mask on %s, pipeline backend on %s", ErrDeviceMismatch, tg.Mask.Device(), want)
	}
	return nil
}
