package augment

import (
	"math/rand"

	"github.com/WK-Heisenberg/albumentations/internal/tensor"
)

// TileMove is re-exported from the tensor package so backends can apply a
// mapping without importing the augmentation layer.
type TileMove = tensor.TileMove

// tileSize is the (height, width) signature that decides which tiles may be
// mutually permuted.
type tileSize struct {
	h, w int
}

// PermuteTiles draws a random tile relocation table for a grid.
//
// Tiles are grouped by exact (height, width) signature; each group is
// independently permuted with a uniform random permutation drawn from rng,
// so content only ever moves between tiles of identical size and the pixel
// shifts stay valid. Groups are visited in first-appearance row-major
// order, which makes the result a pure function of (grid, rng state).
// A group with a single tile maps to itself.
func PermuteTiles(g *Grid, rng *rand.Rand) []TileMove {
	n := g.Rows * g.Cols

	// Group cell indices by size signature, keeping signatures in
	// first-appearance order so a fixed seed reproduces the mapping.
	groups := make(map[tileSize][]int)
	order := make([]tileSize, 0, 4)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			sig := tileSize{g.RowHeights[r], g.ColWidths[c]}
			if _, seen := groups[sig]; !seen {
				order = append(order, sig)
			}
			groups[sig] = append(groups[sig], r*g.Cols+c)
		}
	}

	// source[i] is the cell whose content lands in cell i.
	source := make([]int, n)
	for _, sig := range order {
		cells := groups[sig]
		perm := rng.Perm(len(cells))
		for i, p := range perm {
			source[cells[i]] = cells[p]
		}
	}

	moves := make([]TileMove, 0, n)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			src := source[r*g.Cols+c]
			srcRow, srcCol := src/g.Cols, src%g.Cols
			moves = append(moves, TileMove{
				DstTop:  g.RowStarts[r],
				DstLeft: g.ColStarts[c],
				SrcTop:  g.RowStarts[srcRow],
				SrcLeft: g.ColStarts[srcCol],
				Height:  g.RowHeights[r],
				Width:   g.ColWidths[c],
			})
		}
	}
	return moves
}
