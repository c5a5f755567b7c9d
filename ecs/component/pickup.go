package component

import "github.com/milk9111/gridwalk/nav"

// Pickup is a stationary collectible occupying one cell.
type Pickup struct {
	Kind string
	Cell nav.Cell
}

var PickupComponent = NewComponent[Pickup]("pickup")
