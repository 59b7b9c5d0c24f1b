// Package augment is the public API of the augmentation library: parameter
// samplers, geometric transforms and the compose pipeline.
//
// Example:
//
//	backend := cpu.New()
//	pipe, err := augment.NewCompose(backend, []augment.Transform{
//		augment.NewHorizontalFlip(backend),
//		augment.NewRandomCrop(backend, 224, 224),
//	}, augment.WithSeed(42))
//	if err != nil {
//		return err
//	}
//	tg := augment.Targets{Image: img}
//	err = pipe.Run(&tg)
package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/augment"
	"github.com/WK-Heisenberg/albumentations/tensor"
)

// Errors.
var (
	ErrInvalidConfiguration  = augment.ErrInvalidConfiguration
	ErrUnsupportedCapability = augment.ErrUnsupportedCapability
	ErrDeviceMismatch        = augment.ErrDeviceMismatch
)

// ConfigError carries the transform name and detail for an
// ErrInvalidConfiguration failure.
type ConfigError = augment.ConfigError

// Capability declares which target types a transform knows how to augment.
type Capability = augment.Capability

// Capability flags.
const (
	CapImage     Capability = augment.CapImage
	CapMask      Capability = augment.CapMask
	CapBBoxes    Capability = augment.CapBBoxes
	CapKeypoints Capability = augment.CapKeypoints
)

// Targets is the payload of one augmentation call.
type Targets = augment.Targets

// Transform is one augmentation operation.
type Transform = augment.Transform

// Compose chains transforms into a pipeline with a single seeded random
// generator.
type Compose = augment.Compose

// Option adjusts shared transform configuration.
type Option = augment.Option

// ComposeOption adjusts pipeline construction.
type ComposeOption = augment.ComposeOption

// BBox is an axis-aligned bounding box.
type BBox = augment.BBox

// BBoxFormat selects the external bounding-box coordinate convention.
type BBoxFormat = augment.BBoxFormat

// Supported external bounding-box formats.
const (
	FormatPascalVOC      BBoxFormat = augment.FormatPascalVOC
	FormatAlbumentations BBoxFormat = augment.FormatAlbumentations
)

// Keypoint is a single annotated point in absolute pixel coordinates.
type Keypoint = augment.Keypoint

// Rect is an absolute pixel rectangle.
type Rect = augment.Rect

// CropParams is a sampled crop described by size and normalized start
// fractions.
type CropParams = augment.CropParams

// Grid partitions an image into rectangular tiles with near-uniform sizes.
type Grid = augment.Grid

// TensorFunc is a geometric operation over a single tensor.
type TensorFunc = augment.TensorFunc

// Pipeline construction options.

// WithProbability sets the independent per-call application probability.
func WithProbability(p float64) Option { return augment.WithProbability(p) }

// AlwaysApply bypasses the Bernoulli trial.
func AlwaysApply() Option { return augment.AlwaysApply() }

// WithSeed makes the pipeline reproducible.
func WithSeed(seed int64) ComposeOption { return augment.WithSeed(seed) }

// WithBBoxFormat sets the external bounding-box convention.
func WithBBoxFormat(f BBoxFormat) ComposeOption { return augment.WithBBoxFormat(f) }

// WithTargets declares which targets the pipeline will be fed, checked
// against every transform at construction.
func WithTargets(required Capability) ComposeOption { return augment.WithTargets(required) }

// NewCompose builds a pipeline over the given transforms.
func NewCompose(b tensor.ImageBackend, transforms []Transform, opts ...ComposeOption) (*Compose, error) {
	return augment.NewCompose(b, transforms, opts...)
}

// Grid partitioning and tile shuffling.

// Partition splits a height×width image into a rows×cols grid.
func Partition(height, width, rows, cols int) (*Grid, error) {
	return augment.Partition(height, width, rows, cols)
}

// PermuteTiles draws a random permutation of equal-sized grid tiles and
// returns the moves that realize it.
func PermuteTiles(g *Grid, rng *rand.Rand) []tensor.TileMove {
	return augment.PermuteTiles(g, rng)
}

// Parameter samplers.

// RandomCropOffsets draws integer crop offsets uniformly over the valid
// range.
func RandomCropOffsets(rng *rand.Rand, height, width, cropHeight, cropWidth int) (int, int, error) {
	return augment.RandomCropOffsets(rng, height, width, cropHeight, cropWidth)
}

// RandomResizedCropParams samples a crop by target area and aspect ratio.
func RandomResizedCropParams(rng *rand.Rand, height, width int, scaleMin, scaleMax, ratioMin, ratioMax float64) CropParams {
	return augment.RandomResizedCropParams(rng, height, width, scaleMin, scaleMax, ratioMin, ratioMax)
}

// BBoxSafeCropParams samples a crop that keeps every bounding box inside.
func BBoxSafeCropParams(rng *rand.Rand, height, width int, boxes []BBox, erosionRate float64) CropParams {
	return augment.BBoxSafeCropParams(rng, height, width, boxes, erosionRate)
}

// NonEmptyMaskCropParams samples a crop containing a random non-zero mask
// pixel when the mask has one.
func NonEmptyMaskCropParams(rng *rand.Rand, mask *tensor.RawTensor, cropHeight, cropWidth int, ignoreValues []float64, ignoreChannels []int) (Rect, error) {
	return augment.NonEmptyMaskCropParams(rng, mask, cropHeight, cropWidth, ignoreValues, ignoreChannels)
}

// UnionOfBBoxes returns the union rectangle of normalized boxes after
// erosion.
func UnionOfBBoxes(boxes []BBox, erosionRate float64) BBox {
	return augment.UnionOfBBoxes(boxes, erosionRate)
}

// Decorators.

// OnFloatImage adapts a float-only primitive to uint8 images.
func OnFloatImage(b tensor.ImageBackend, f TensorFunc) TensorFunc {
	return augment.OnFloatImage(b, f)
}

// Clipped clamps the result of f into the dtype's conventional range.
func Clipped(b tensor.ImageBackend, f TensorFunc) TensorFunc {
	return augment.Clipped(b, f)
}

// PreserveShape restores the exact input shape after f runs.
func PreserveShape(f TensorFunc) TensorFunc {
	return augment.PreserveShape(f)
}

// OnRank3 expands rank-2 input to (1, H, W) around f.
func OnRank3(f TensorFunc) TensorFunc {
	return augment.OnRank3(f)
}

// OnRank4 expands input to (1, C, H, W) around f.
func OnRank4(f TensorFunc) TensorFunc {
	return augment.OnRank4(f)
}

// Transform constructors. All follow the same pattern: required geometry
// in positional arguments, probability and always-apply via options.

// NewPadIfNeeded pads the payload to at least the given minimum size.
func NewPadIfNeeded(b tensor.ImageBackend, minHeight, minWidth int, opts ...Option) Transform {
	return augment.NewPadIfNeeded(b, minHeight, minWidth, opts...)
}

// NewCrop cuts a fixed rectangle.
func NewCrop(b tensor.ImageBackend, region Rect, opts ...Option) Transform {
	return augment.NewCrop(b, region, opts...)
}

// NewCenterCrop cuts a fixed-size rectangle from the center.
func NewCenterCrop(b tensor.ImageBackend, height, width int, opts ...Option) Transform {
	return augment.NewCenterCrop(b, height, width, opts...)
}

// NewRandomCrop cuts a fixed-size rectangle at a random position.
func NewRandomCrop(b tensor.ImageBackend, height, width int, opts ...Option) Transform {
	return augment.NewRandomCrop(b, height, width, opts...)
}

// NewRandomCropNearBBox cuts a randomly shifted crop around a region of
// interest.
func NewRandomCropNearBBox(b tensor.ImageBackend, cropRegion Rect, opts ...Option) Transform {
	return augment.NewRandomCropNearBBox(b, cropRegion, opts...)
}

// NewRandomSizedCrop cuts a random-height crop and rescales it to a fixed
// size.
func NewRandomSizedCrop(b tensor.ImageBackend, minHeight, maxHeight, height, width int, opts ...Option) Transform {
	return augment.NewRandomSizedCrop(b, minHeight, maxHeight, height, width, opts...)
}

// NewRandomResizedCrop samples a crop by area and aspect ratio and rescales
// it to a fixed size.
func NewRandomResizedCrop(b tensor.ImageBackend, height, width int, opts ...Option) Transform {
	return augment.NewRandomResizedCrop(b, height, width, opts...)
}

// NewRandomSizedBBoxSafeCrop cuts a random crop that keeps every bounding
// box inside and rescales it to a fixed size.
func NewRandomSizedBBoxSafeCrop(b tensor.ImageBackend, height, width int, erosionRate float64, opts ...Option) Transform {
	return augment.NewRandomSizedBBoxSafeCrop(b, height, width, erosionRate, opts...)
}

// NewCropNonEmptyMaskIfExists cuts a fixed-size crop containing a non-zero
// mask pixel whenever the mask has one.
func NewCropNonEmptyMaskIfExists(b tensor.ImageBackend, height, width int, opts ...Option) Transform {
	return augment.NewCropNonEmptyMaskIfExists(b, height, width, opts...)
}

// NewVerticalFlip mirrors around the horizontal axis.
func NewVerticalFlip(b tensor.ImageBackend, opts ...Option) Transform {
	return augment.NewVerticalFlip(b, opts...)
}

// NewHorizontalFlip mirrors around the vertical axis.
func NewHorizontalFlip(b tensor.ImageBackend, opts ...Option) Transform {
	return augment.NewHorizontalFlip(b, opts...)
}

// NewFlip mirrors around a randomly chosen axis.
func NewFlip(b tensor.ImageBackend, opts ...Option) Transform {
	return augment.NewFlip(b, opts...)
}

// NewTranspose reflects over the main diagonal.
func NewTranspose(b tensor.ImageBackend, opts ...Option) Transform {
	return augment.NewTranspose(b, opts...)
}

// NewRandomRotate90 rotates by a random multiple of 90 degrees.
func NewRandomRotate90(b tensor.ImageBackend, opts ...Option) Transform {
	return augment.NewRandomRotate90(b, opts...)
}

// NewRotate rotates by a random angle within a limit.
func NewRotate(b tensor.ImageBackend, limit float64, opts ...Option) Transform {
	return augment.NewRotate(b, limit, opts...)
}

// NewShiftScaleRotate applies one random affine map.
func NewShiftScaleRotate(b tensor.ImageBackend, shiftLimit, scaleLimit, rotateLimit float64, opts ...Option) Transform {
	return augment.NewShiftScaleRotate(b, shiftLimit, scaleLimit, rotateLimit, opts...)
}

// NewResize rescales to a fixed size.
func NewResize(b tensor.ImageBackend, height, width int, opts ...Option) Transform {
	return augment.NewResize(b, height, width, opts...)
}

// NewLongestMaxSize rescales so the longest side equals maxSize.
func NewLongestMaxSize(b tensor.ImageBackend, maxSize int, opts ...Option) Transform {
	return augment.NewLongestMaxSize(b, maxSize, opts...)
}

// NewSmallestMaxSize rescales so the shortest side equals maxSize.
func NewSmallestMaxSize(b tensor.ImageBackend, maxSize int, opts ...Option) Transform {
	return augment.NewSmallestMaxSize(b, maxSize, opts...)
}

// NewRandomScale rescales by a random factor.
func NewRandomScale(b tensor.ImageBackend, scaleLimit float64, opts ...Option) Transform {
	return augment.NewRandomScale(b, scaleLimit, opts...)
}

// NewOpticalDistortion applies a random radial lens distortion.
func NewOpticalDistortion(b tensor.ImageBackend, distortLimit, shiftLimit float64, opts ...Option) Transform {
	return augment.NewOpticalDistortion(b, distortLimit, shiftLimit, opts...)
}

// NewGridDistortion applies a random piecewise-linear grid warp.
func NewGridDistortion(b tensor.ImageBackend, distortLimit float64, opts ...Option) Transform {
	return augment.NewGridDistortion(b, distortLimit, opts...)
}

// NewRandomGridShuffle shuffles equal-sized grid tiles.
func NewRandomGridShuffle(b tensor.ImageBackend, rows, cols int, opts ...Option) Transform {
	return augment.NewRandomGridShuffle(b, rows, cols, opts...)
}
