package bench

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/augment"
	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// RandomImage generates a (c, h, w) uint8 tensor with uniformly random
// pixel values.
func RandomImage(rng *rand.Rand, c, h, w int, device tensor.Device) *tensor.RawTensor {
	raw := tensor.MustRaw(tensor.Shape{c, h, w}, tensor.Uint8, device)
	data := raw.AsUint8()
	for i := range data {
		data[i] = uint8(rng.Intn(256))
	}
	return raw
}

// RandomMask generates an (h, w) uint8 label mask with values in
// [0, classes).
func RandomMask(rng *rand.Rand, h, w, classes int, device tensor.Device) *tensor.RawTensor {
	raw := tensor.MustRaw(tensor.Shape{h, w}, tensor.Uint8, device)
	data := raw.AsUint8()
	for i := range data {
		data[i] = uint8(rng.Intn(classes))
	}
	return raw
}

// RandomFloatImage generates a (c, h, w) float32 tensor with values in
// [0, 1). Float data runs unmodified on both backends, so cross-backend
// comparisons time the same arithmetic.
func RandomFloatImage(rng *rand.Rand, c, h, w int, device tensor.Device) *tensor.RawTensor {
	raw := tensor.MustRaw(tensor.Shape{c, h, w}, tensor.Float32, device)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = rng.Float32()
	}
	return raw
}

// RandomFloatMask generates an (h, w) float32 label mask with integer
// values in [0, classes).
func RandomFloatMask(rng *rand.Rand, h, w, classes int, device tensor.Device) *tensor.RawTensor {
	raw := tensor.MustRaw(tensor.Shape{h, w}, tensor.Float32, device)
	data := raw.AsFloat32()
	for i := range data {
		data[i] = float32(rng.Intn(classes))
	}
	return raw
}

// FloatFromUint8 converts a uint8 image to a normalized float32 tensor
// tagged with the given device.
func FloatFromUint8(img *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	out := tensor.MustRaw(img.Shape().Clone(), tensor.Float32, device)
	src := img.AsUint8()
	dst := out.AsFloat32()
	for i := range src {
		dst[i] = float32(src[i]) / 255
	}
	return out
}

// RandomBBoxes generates n well-formed Pascal VOC boxes inside an h by w
// image, each at least one pixel in extent.
func RandomBBoxes(rng *rand.Rand, n, h, w int) []augment.BBox {
	boxes := make([]augment.BBox, n)
	for i := range boxes {
		x1 := rng.Intn(w - 1)
		y1 := rng.Intn(h - 1)
		x2 := x1 + 1 + rng.Intn(w-x1-1+1)
		y2 := y1 + 1 + rng.Intn(h-y1-1+1)
		boxes[i] = augment.BBox{
			XMin:  float64(x1),
			YMin:  float64(y1),
			XMax:  float64(min(x2, w)),
			YMax:  float64(min(y2, h)),
			Label: rng.Intn(10),
		}
	}
	return boxes
}
