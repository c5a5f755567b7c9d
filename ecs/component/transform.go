package component

import "github.com/jakecoffman/cp"

// Transform is the continuous grid-space position of an entity. One unit is
// one cell; integer coordinates are cell origins.
type Transform struct {
	X float64
	Y float64
}

func (t *Transform) Vector() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetVector(v cp.Vector) {
	t.X = v.X
	t.Y = v.Y
}

var TransformComponent = NewComponent[Transform]("transform")
