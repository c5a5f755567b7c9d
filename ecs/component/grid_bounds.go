package component

import (
	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/nav"
)

// GridBounds stores the size of the board, in cells.
type GridBounds struct {
	Width  int
	Height int
}

// Cell maps a continuous position onto the board cell containing it. The
// position is clamped onto the board first, so per-axis stepping that drifts
// a hair past an edge still lands on the edge cell.
func (b *GridBounds) Cell(x, y float64) nav.Cell {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return nav.Floor(x, y)
	}
	return nav.Floor(
		common.Clamp(x, 0, float64(b.Width-1)),
		common.Clamp(y, 0, float64(b.Height-1)),
	)
}

var GridBoundsComponent = NewComponent[GridBounds]("grid_bounds")
