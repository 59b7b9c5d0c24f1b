package tensor

// Interp selects the interpolation used by geometric primitives.
type Interp int

// Supported interpolation modes. Masks are always resampled with
// InterpNearest so label values are never blended.
const (
	InterpNearest Interp = iota
	InterpBilinear
)

// String returns a human-readable interpolation name.
func (i Interp) String() string {
	switch i {
	case InterpNearest:
		return "nearest"
	case InterpBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// BorderMode selects how out-of-bounds samples are produced by pad, rotate,
// warp and remap primitives.
type BorderMode int

// Supported border handling modes.
const (
	BorderConstant BorderMode = iota
	BorderReflect
	BorderReplicate
	BorderCircular
)

// String returns a human-readable border mode name.
func (m BorderMode) String() string {
	switch m {
	case BorderConstant:
		return "constant"
	case BorderReflect:
		return "reflect"
	case BorderReplicate:
		return "replicate"
	case BorderCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// ParseBorderMode converts a configuration string into a BorderMode.
func ParseBorderMode(s string) (BorderMode, bool) {
	switch s {
	case "constant":
		return BorderConstant, true
	case "reflect":
		return BorderReflect, true
	case "replicate":
		return BorderReplicate, true
	case "circular":
		return BorderCircular, true
	default:
		return 0, false
	}
}

// TileMove relocates the content of one grid tile into another tile of the
// same size. Coordinates are absolute pixel offsets of the tile top-left
// corners; the destination tile at (DstTop, DstLeft) receives the pixels of
// the source tile at (SrcTop, SrcLeft).
type TileMove struct {
	DstTop  int
	DstLeft int
	SrcTop  int
	SrcLeft int
	Height  int
	Width   int
}

// ImageBackend is the set of geometric and element-wise primitives the
// augmentation layer delegates to. Implementations exist for CPU (all
// dtypes) and WebGPU (float32). All spatial methods expect rank-3 (C, H, W)
// tensors; the augmentation layer adapts rank-2 masks before dispatching.
//
// Methods panic on programmer errors (wrong rank, unsupported dtype);
// configuration validation happens in the augmentation layer.
type ImageBackend interface {
	// Geometry
	Crop(t *RawTensor, top, left, height, width int) *RawTensor
	FlipH(t *RawTensor) *RawTensor
	FlipV(t *RawTensor) *RawTensor
	Rot90(t *RawTensor, k int) *RawTensor
	Transpose2D(t *RawTensor) *RawTensor
	Pad(t *RawTensor, top, bottom, left, right int, mode BorderMode, value float64) *RawTensor

	// Resampling
	Resize(t *RawTensor, height, width int, interp Interp) *RawTensor
	Rotate(t *RawTensor, angle float64, interp Interp, mode BorderMode, value float64) *RawTensor
	WarpAffine(t *RawTensor, shiftX, shiftY, scale, angle float64, interp Interp, mode BorderMode, value float64) *RawTensor
	Remap(t *RawTensor, mapX, mapY []float32, interp Interp, mode BorderMode, value float64) *RawTensor

	// Tile relocation for grid shuffle.
	SwapTiles(t *RawTensor, moves []TileMove) *RawTensor

	// Element-wise helpers used by the dtype decorators.
	Cast(t *RawTensor, dtype DataType) *RawTensor
	Clamp(t *RawTensor, lo, hi float64) *RawTensor
	Round(t *RawTensor) *RawTensor
	MulScalar(t *RawTensor, s float64) *RawTensor
	AddScalar(t *RawTensor, s float64) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
