package cpu

import (
	"fmt"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// SwapTiles relocates rectangular tiles according to the move table. The
// input is never written; every destination tile reads from the original
// pixels, so swap cycles of any length resolve correctly.
func (cpu *CPUBackend) SwapTiles(t *tensor.RawTensor, moves []tensor.TileMove) *tensor.RawTensor {
	c, h, w := dims3(t)
	out := t.Clone()

	elem := t.DType().Size()
	src := t.Data()
	dst := out.Data()
	for _, m := range moves {
		if m.Height <= 0 || m.Width <= 0 ||
			m.SrcTop < 0 || m.SrcLeft < 0 || m.SrcTop+m.Height > h || m.SrcLeft+m.Width > w ||
			m.DstTop < 0 || m.DstLeft < 0 || m.DstTop+m.Height > h || m.DstLeft+m.Width > w {
			panic(fmt.Sprintf("swaptiles: move %+v out of bounds for %dx%d", m, h, w))
		}
		rowBytes := m.Width * elem
		for ch := 0; ch < c; ch++ {
			for y := 0; y < m.Height; y++ {
				so := ((ch*h+m.SrcTop+y)*w + m.SrcLeft) * elem
				do := ((ch*h+m.DstTop+y)*w + m.DstLeft) * elem
				copy(dst[do:do+rowBytes], src[so:so+rowBytes])
			}
		}
	}
	return out
}
