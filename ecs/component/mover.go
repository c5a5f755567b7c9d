package component

// Mover holds the per-tick step length, in cells, applied on each axis.
type Mover struct {
	Speed float64
}

var MoverComponent = NewComponent[Mover]("mover")
