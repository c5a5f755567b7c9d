package component

import "github.com/milk9111/gridwalk/nav"

// Pathing stores the active waypoint queue of a moving entity along with the
// inputs and debug output of the search that produced it.
type Pathing struct {
	Waypoints  nav.Path
	LastStart  nav.Cell
	LastTarget nav.Cell
	HasTarget  bool
	Visited    []nav.Cell
}

// Next returns the front waypoint.
func (p *Pathing) Next() (nav.Cell, bool) {
	if p == nil || len(p.Waypoints) == 0 {
		return nav.Cell{}, false
	}
	return p.Waypoints[0], true
}

// Pop removes the front waypoint.
func (p *Pathing) Pop() {
	if p == nil || len(p.Waypoints) == 0 {
		return
	}
	p.Waypoints = p.Waypoints[1:]
}

var PathingComponent = NewComponent[Pathing]("pathing")
