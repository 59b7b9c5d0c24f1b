package augment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteTiles_Deterministic(t *testing.T) {
	g, err := Partition(100, 100, 4, 4)
	require.NoError(t, err)

	a := PermuteTiles(g, rand.New(rand.NewSource(42)))
	b := PermuteTiles(g, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestPermuteTiles_SizePreserving(t *testing.T) {
	// 10x10 in 3x3 produces two distinct tile widths and heights.
	g, err := Partition(10, 10, 3, 3)
	require.NoError(t, err)

	moves := PermuteTiles(g, rand.New(rand.NewSource(7)))
	require.Len(t, moves, 9)

	type origin struct{ top, left int }
	sizeOf := make(map[origin][2]int)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			top, left := g.TileOrigin(r, c)
			h, w := g.TileSize(r, c)
			sizeOf[origin{top, left}] = [2]int{h, w}
		}
	}

	seenSrc := make(map[origin]bool)
	for _, m := range moves {
		// Content only moves between tiles of identical size.
		assert.Equal(t, sizeOf[origin{m.DstTop, m.DstLeft}], [2]int{m.Height, m.Width})
		assert.Equal(t, sizeOf[origin{m.SrcTop, m.SrcLeft}], [2]int{m.Height, m.Width})
		seenSrc[origin{m.SrcTop, m.SrcLeft}] = true
	}
	// Every tile is used as a source exactly once.
	assert.Len(t, seenSrc, 9)
}

func TestPermuteTiles_UniformGridShufflesFreely(t *testing.T) {
	// All 16 tiles of a 100x100 4x4 grid share one size signature, so a
	// shuffled order must eventually differ from identity.
	g, err := Partition(100, 100, 4, 4)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	moved := false
	for trial := 0; trial < 10 && !moved; trial++ {
		for _, m := range PermuteTiles(g, rng) {
			if m.SrcTop != m.DstTop || m.SrcLeft != m.DstLeft {
				moved = true
				break
			}
		}
	}
	assert.True(t, moved, "shuffle never moved any tile across 10 trials")
}

func TestPermuteTiles_SingleTileGroupsFixed(t *testing.T) {
	// With one row the corner tiles are alone in their size groups when the
	// extents split unevenly; a lone tile must map to itself.
	g, err := Partition(4, 10, 1, 3)
	require.NoError(t, err)

	// Widths are 4, 3, 3: the width-4 tile forms a singleton group.
	moves := PermuteTiles(g, rand.New(rand.NewSource(3)))
	for _, m := range moves {
		if m.Width == 4 {
			assert.Equal(t, m.SrcTop, m.DstTop)
			assert.Equal(t, m.SrcLeft, m.DstLeft)
		}
	}
}
