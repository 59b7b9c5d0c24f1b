package augment

import "math"

// Keypoint is a single annotated point in absolute pixel coordinates, with
// an optional orientation (radians) and scale.
type Keypoint struct {
	X, Y  float64
	Angle float64
	Scale float64
}

func kpHFlip(k Keypoint, width int) Keypoint {
	k.X = float64(width-1) - k.X
	k.Angle = math.Pi - k.Angle
	return k
}

func kpVFlip(k Keypoint, height int) Keypoint {
	k.Y = float64(height-1) - k.Y
	k.Angle = -k.Angle
	return k
}

func kpTranspose(k Keypoint) Keypoint {
	k.X, k.Y = k.Y, k.X
	return k
}

func kpRot90(k Keypoint, factor, height, width int) Keypoint {
	switch factor & 3 {
	case 1:
		k.X, k.Y = k.Y, float64(width-1)-k.X
		k.Angle -= math.Pi / 2
	case 2:
		k.X, k.Y = float64(width-1)-k.X, float64(height-1)-k.Y
		k.Angle -= math.Pi
	case 3:
		k.X, k.Y = float64(height-1)-k.Y, k.X
		k.Angle += math.Pi / 2
	}
	return k
}

func kpShift(k Keypoint, dx, dy float64) Keypoint {
	k.X += dx
	k.Y += dy
	return k
}

func kpScale(k Keypoint, sx, sy float64) Keypoint {
	k.X *= sx
	k.Y *= sy
	k.Scale *= math.Max(sx, sy)
	return k
}

// kpShiftScaleRotate applies the same affine map the image receives from
// the shift-scale-rotate primitive: rotation and scaling about the image
// center followed by a relative translation.
func kpShiftScaleRotate(k Keypoint, angleDeg, scale, dx, dy float64, height, width int) Keypoint {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	cx, cy := float64(width-1)/2, float64(height-1)/2

	x := k.X - cx
	y := k.Y - cy
	k.X = scale*(cos*x-sin*y) + cx + dx*float64(width)
	k.Y = scale*(sin*x+cos*y) + cy + dy*float64(height)
	k.Angle += rad
	k.Scale *= scale
	return k
}
