package augment

import (
	"math"
	"math/rand"
)

// BBox is an axis-aligned bounding box. Inside a pipeline coordinates are
// normalized to [0, 1]; the pipeline converts from and to the configured
// external format at its boundary.
type BBox struct {
	XMin, YMin, XMax, YMax float64
	Label                  int
}

// BBoxFormat selects the external bounding-box coordinate convention.
type BBoxFormat int

// Supported external formats.
const (
	// FormatPascalVOC is corner-pixel absolute (x_min, y_min, x_max, y_max).
	FormatPascalVOC BBoxFormat = iota
	// FormatAlbumentations is normalized corner coordinates in [0, 1].
	FormatAlbumentations
)

// Normalize converts a box from the external format into normalized
// coordinates for the given image size.
func (f BBoxFormat) Normalize(b BBox, height, width int) BBox {
	if f == FormatAlbumentations {
		return b
	}
	return BBox{
		XMin:  b.XMin / float64(width),
		YMin:  b.YMin / float64(height),
		XMax:  b.XMax / float64(width),
		YMax:  b.YMax / float64(height),
		Label: b.Label,
	}
}

// Denormalize converts a normalized box back into the external format.
func (f BBoxFormat) Denormalize(b BBox, height, width int) BBox {
	if f == FormatAlbumentations {
		return b
	}
	return BBox{
		XMin:  b.XMin * float64(width),
		YMin:  b.YMin * float64(height),
		XMax:  b.XMax * float64(width),
		YMax:  b.YMax * float64(height),
		Label: b.Label,
	}
}

// UnionOfBBoxes returns the union rectangle of normalized boxes, with each
// box first shrunk toward its own center by erosionRate. An erosion rate of
// 0 keeps every box fully inside the union; a rate of 1 collapses each box
// to its center point.
func UnionOfBBoxes(boxes []BBox, erosionRate float64) BBox {
	u := BBox{XMin: 1, YMin: 1, XMax: 0, YMax: 0}
	for _, b := range boxes {
		w := b.XMax - b.XMin
		h := b.YMax - b.YMin
		u.XMin = math.Min(u.XMin, b.XMin+erosionRate*w)
		u.YMin = math.Min(u.YMin, b.YMin+erosionRate*h)
		u.XMax = math.Max(u.XMax, b.XMax-erosionRate*w)
		u.YMax = math.Max(u.YMax, b.YMax-erosionRate*h)
	}
	return u
}

// expandUnion grows a normalized union box outward by an independent random
// fraction of the remaining distance to each image border, then clips it to
// [0, 1]. The result always contains the input box.
func expandUnion(u BBox, rng *rand.Rand) BBox {
	out := BBox{
		XMin: u.XMin * rng.Float64(),
		YMin: u.YMin * rng.Float64(),
		XMax: u.XMax + (1-u.XMax)*rng.Float64(),
		YMax: u.YMax + (1-u.YMax)*rng.Float64(),
	}
	return out.clip()
}

func (b BBox) clip() BBox {
	b.XMin = clampFloat(b.XMin, 0, 1)
	b.YMin = clampFloat(b.YMin, 0, 1)
	b.XMax = clampFloat(b.XMax, 0, 1)
	b.YMax = clampFloat(b.YMax, 0, 1)
	return b
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// bboxHFlip mirrors a normalized box around the vertical image axis.
func bboxHFlip(b BBox) BBox {
	return BBox{XMin: 1 - b.XMax, YMin: b.YMin, XMax: 1 - b.XMin, YMax: b.YMax, Label: b.Label}
}

// bboxVFlip mirrors a normalized box around the horizontal image axis.
func bboxVFlip(b BBox) BBox {
	return BBox{XMin: b.XMin, YMin: 1 - b.YMax, XMax: b.XMax, YMax: 1 - b.YMin, Label: b.Label}
}

// bboxTranspose reflects a normalized box over the main diagonal.
func bboxTranspose(b BBox) BBox {
	return BBox{XMin: b.YMin, YMin: b.XMin, XMax: b.YMax, YMax: b.XMax, Label: b.Label}
}

// bboxRot90 rotates a normalized box counter-clockwise by factor*90 degrees.
func bboxRot90(b BBox, factor int) BBox {
	switch factor & 3 {
	case 1:
		return BBox{XMin: b.YMin, YMin: 1 - b.XMax, XMax: b.YMax, YMax: 1 - b.XMin, Label: b.Label}
	case 2:
		return BBox{XMin: 1 - b.XMax, YMin: 1 - b.YMax, XMax: 1 - b.XMin, YMax: 1 - b.YMin, Label: b.Label}
	case 3:
		return BBox{XMin: 1 - b.YMax, YMin: b.XMin, XMax: 1 - b.YMin, YMax: b.XMax, Label: b.Label}
	default:
		return b
	}
}

// bboxCrop maps a normalized box from the full image into the coordinate
// frame of the crop rectangle (absolute pixel bounds on the source image).
func bboxCrop(b BBox, x1, y1, x2, y2, height, width int) BBox {
	cw := float64(x2 - x1)
	ch := float64(y2 - y1)
	return BBox{
		XMin:  (b.XMin*float64(width) - float64(x1)) / cw,
		YMin:  (b.YMin*float64(height) - float64(y1)) / ch,
		XMax:  (b.XMax*float64(width) - float64(x1)) / cw,
		YMax:  (b.YMax*float64(height) - float64(y1)) / ch,
		Label: b.Label,
	}
}

// bboxPad shifts a normalized box for an image padded on the top and left,
// renormalizing by the padded size.
func bboxPad(b BBox, top, left, height, width, newHeight, newWidth int) BBox {
	return BBox{
		XMin:  (b.XMin*float64(width) + float64(left)) / float64(newWidth),
		YMin:  (b.YMin*float64(height) + float64(top)) / float64(newHeight),
		XMax:  (b.XMax*float64(width) + float64(left)) / float64(newWidth),
		YMax:  (b.YMax*float64(height) + float64(top)) / float64(newHeight),
		Label: b.Label,
	}
}

// bboxRotate rotates the four corners of a normalized box about the image
// center and returns their axis-aligned hull.
func bboxRotate(b BBox, angleDeg float64, height, width int) BBox {
	scale := float64(width) / float64(height)
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	xs := [4]float64{b.XMin - 0.5, b.XMax - 0.5, b.XMax - 0.5, b.XMin - 0.5}
	ys := [4]float64{b.YMin - 0.5, b.YMin - 0.5, b.YMax - 0.5, b.YMax - 0.5}

	out := BBox{XMin: math.Inf(1), YMin: math.Inf(1), XMax: math.Inf(-1), YMax: math.Inf(-1), Label: b.Label}
	for i := 0; i < 4; i++ {
		xt := (cos*xs[i]*scale+sin*ys[i])/scale + 0.5
		yt := -sin*xs[i]*scale + cos*ys[i] + 0.5
		out.XMin = math.Min(out.XMin, xt)
		out.YMin = math.Min(out.YMin, yt)
		out.XMax = math.Max(out.XMax, xt)
		out.YMax = math.Max(out.YMax, yt)
	}
	return out
}
