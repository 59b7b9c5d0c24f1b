package augment

// Grid partitions an H×W image into Rows×Cols rectangular tiles with
// near-uniform sizes. Boundaries are the evenly spaced integer points
// between 0 and the image extent, so tile heights sum exactly to the image
// height and widths to the image width: no rounding loss, no gaps, no
// overlaps. When the extent does not divide evenly, earlier tiles absorb
// the extra unit.
type Grid struct {
	Rows, Cols int
	RowStarts  []int // top offset of each row of tiles, len Rows
	ColStarts  []int // left offset of each column of tiles, len Cols
	RowHeights []int // height of each row of tiles, len Rows
	ColWidths  []int // width of each column of tiles, len Cols
}

// Partition splits a height×width image into a rows×cols grid.
// Cell counts must be positive and no greater than half the corresponding
// image dimension, otherwise the tiles degenerate into pixel shuffling.
func Partition(height, width, rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, configErrorf("grid", "grid values must be positive, got (%d, %d)", rows, cols)
	}
	if rows > height/2 || cols > width/2 {
		return nil, configErrorf("grid", "grid (%d, %d) too fine for image (%d, %d)", rows, cols, height, width)
	}

	rowStarts, rowHeights := splitAxis(height, rows)
	colStarts, colWidths := splitAxis(width, cols)

	return &Grid{
		Rows:       rows,
		Cols:       cols,
		RowStarts:  rowStarts,
		ColStarts:  colStarts,
		RowHeights: rowHeights,
		ColWidths:  colWidths,
	}, nil
}

// splitAxis computes the n+1 evenly spaced integer boundaries of an extent
// and returns per-cell starts and sizes. Consecutive boundaries differ by
// floor(extent/n) or ceil(extent/n); ceiling rounding hands the extra unit
// to the earlier cells.
func splitAxis(extent, n int) (starts, sizes []int) {
	bounds := make([]int, n+1)
	for i := 0; i <= n; i++ {
		bounds[i] = (i*extent + n - 1) / n
	}

	starts = make([]int, n)
	sizes = make([]int, n)
	for i := 0; i < n; i++ {
		starts[i] = bounds[i]
		sizes[i] = bounds[i+1] - bounds[i]
	}
	return starts, sizes
}

// TileSize returns the (height, width) size signature of the tile at
// (row, col).
func (g *Grid) TileSize(row, col int) (int, int) {
	return g.RowHeights[row], g.ColWidths[col]
}

// TileOrigin returns the (top, left) pixel offset of the tile at (row, col).
func (g *Grid) TileOrigin(row, col int) (int, int) {
	return g.RowStarts[row], g.ColStarts[col]
}
