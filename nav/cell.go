package nav

import (
	"fmt"
	"math"
)

// Cell is a discrete grid coordinate.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the 4-way step distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return absInt(c.X-o.X) + absInt(c.Y-o.Y)
}

// Adjacent reports whether o is exactly one axis-aligned step away from c.
func (c Cell) Adjacent(o Cell) bool {
	return c.Manhattan(o) == 1
}

// Floor maps a continuous position onto the cell containing it.
func Floor(x, y float64) Cell {
	return Cell{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// Path is an ordered list of waypoints. The start cell is never included.
type Path []Cell

// Contiguous reports whether every step of p, starting from from, moves
// exactly one cell along one axis. A single waypoint equal to from is
// accepted as the trivial path.
func (p Path) Contiguous(from Cell) bool {
	if len(p) == 0 {
		return true
	}
	if len(p) == 1 && p[0] == from {
		return true
	}
	prev := from
	for _, c := range p {
		if !prev.Adjacent(c) {
			return false
		}
		prev = c
	}
	return true
}

// Last returns the final waypoint.
func (p Path) Last() (Cell, bool) {
	if len(p) == 0 {
		return Cell{}, false
	}
	return p[len(p)-1], true
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
