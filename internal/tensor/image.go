package tensor

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage converts a decoded image into a rank-3 (3, H, W) uint8 tensor
// in RGB channel order. The alpha channel is dropped.
func FromImage(img image.Image, device Device) *RawTensor {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	raw := MustRaw(Shape{3, h, w}, Uint8, device)
	data := raw.AsUint8()
	plane := h * w

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := y*w + x
			data[idx] = uint8(r >> 8)
			data[plane+idx] = uint8(g >> 8)
			data[2*plane+idx] = uint8(b >> 8)
		}
	}
	return raw
}

// ToImage converts a rank-3 (1 or 3, H, W) uint8 tensor into an NRGBA image.
func ToImage(t *RawTensor) (*image.NRGBA, error) {
	shape := t.Shape()
	if t.DType() != Uint8 {
		return nil, fmt.Errorf("cannot convert %s tensor to image, want uint8", t.DType())
	}
	if len(shape) != 3 || (shape[0] != 1 && shape[0] != 3) {
		return nil, fmt.Errorf("cannot convert shape %v to image, want (1|3, H, W)", shape)
	}

	c, h, w := shape[0], shape[1], shape[2]
	data := t.AsUint8()
	plane := h * w

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			var px color.NRGBA
			if c == 1 {
				v := data[idx]
				px = color.NRGBA{R: v, G: v, B: v, A: 255}
			} else {
				px = color.NRGBA{R: data[idx], G: data[plane+idx], B: data[2*plane+idx], A: 255}
			}
			img.SetNRGBA(x, y, px)
		}
	}
	return img, nil
}
