package sim

import (
	"sort"

	"github.com/milk9111/gridwalk/ecs/component"
	"github.com/milk9111/gridwalk/nav"
)

// State is a read-only snapshot for renderers. It shares nothing with the
// simulator.
type State struct {
	RunID     string     `json:"run_id"`
	Tick      uint64     `json:"tick"`
	GridSize  int        `json:"grid_size"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Waypoints nav.Path   `json:"waypoints"`
	Target    *nav.Cell  `json:"target,omitempty"`
	Items     []Item     `json:"items"`
	Collected int        `json:"collected"`
	Total     int        `json:"total"`
	Visited   []nav.Cell `json:"-"`
}

// Cell is the cell the agent currently occupies, kept on the board.
func (s State) Cell() nav.Cell {
	b := component.GridBounds{Width: s.GridSize, Height: s.GridSize}
	return b.Cell(s.X, s.Y)
}

// PathLen is the number of waypoints left.
func (s State) PathLen() int {
	return len(s.Waypoints)
}

// Idle reports whether the agent has nowhere left to go.
func (s State) Idle() bool {
	return len(s.Waypoints) == 0
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Cell, items[j].Cell
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return items[i].Kind < items[j].Kind
	})
}
