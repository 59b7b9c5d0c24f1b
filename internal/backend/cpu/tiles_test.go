package cpu

import (
	"testing"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

func TestSwapTiles(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 4, 4}, []uint8{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	})

	// Exchange the two top tiles; the bottom half is untouched.
	moves := []tensor.TileMove{
		{DstTop: 0, DstLeft: 0, SrcTop: 0, SrcLeft: 2, Height: 2, Width: 2},
		{DstTop: 0, DstLeft: 2, SrcTop: 0, SrcLeft: 0, Height: 2, Width: 2},
	}

	out := backend.SwapTiles(in, moves)
	equalU8(t, out, []uint8{
		2, 2, 1, 1,
		2, 2, 1, 1,
		3, 3, 4, 4,
		3, 3, 4, 4,
	})

	// The input tensor is never written.
	equalU8(t, in, []uint8{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	})
}

func TestSwapTiles_ThreeCycle(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{1, 1, 3}, []uint8{1, 2, 3})

	// 1 -> 2 -> 3 -> 1 as a cycle of single-pixel tiles.
	moves := []tensor.TileMove{
		{DstTop: 0, DstLeft: 0, SrcTop: 0, SrcLeft: 2, Height: 1, Width: 1},
		{DstTop: 0, DstLeft: 1, SrcTop: 0, SrcLeft: 0, Height: 1, Width: 1},
		{DstTop: 0, DstLeft: 2, SrcTop: 0, SrcLeft: 1, Height: 1, Width: 1},
	}

	out := backend.SwapTiles(in, moves)
	equalU8(t, out, []uint8{3, 1, 2})
}

func TestSwapTiles_MultiChannel(t *testing.T) {
	backend := New()

	in := rawU8(t, tensor.Shape{2, 2, 2}, []uint8{
		1, 2,
		3, 4,

		5, 6,
		7, 8,
	})

	moves := []tensor.TileMove{
		{DstTop: 0, DstLeft: 0, SrcTop: 1, SrcLeft: 1, Height: 1, Width: 1},
		{DstTop: 1, DstLeft: 1, SrcTop: 0, SrcLeft: 0, Height: 1, Width: 1},
	}

	out := backend.SwapTiles(in, moves)
	equalU8(t, out, []uint8{
		4, 2,
		3, 1,

		8, 6,
		7, 5,
	})
}

func TestSwapTiles_OutOfBounds(t *testing.T) {
	backend := New()
	in := rawU8(t, tensor.Shape{1, 2, 2}, []uint8{1, 2, 3, 4})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-bounds move")
		}
	}()
	backend.SwapTiles(in, []tensor.TileMove{{DstTop: 1, DstLeft: 1, Height: 2, Width: 2}})
}
