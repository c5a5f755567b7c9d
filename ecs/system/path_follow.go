package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/component"
)

// PathFollowSystem advances every pathing entity one step toward its front
// waypoint. Both axes move independently by the mover speed, so the agent
// cuts diagonally between axis-aligned waypoints. Once both axes are within
// one step the entity snaps onto the waypoint and the waypoint is consumed.
type PathFollowSystem struct{}

func NewPathFollowSystem() *PathFollowSystem { return &PathFollowSystem{} }

func (s *PathFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PathingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pathing *component.Pathing, t *component.Transform) {
		next, ok := pathing.Next()
		if !ok {
			return
		}
		mover, ok := ecs.Get(w, e, component.MoverComponent.Kind())
		if !ok || mover.Speed <= 0 {
			return
		}
		speed := mover.Speed

		pos := t.Vector()
		delta := cp.Vector{X: float64(next.X), Y: float64(next.Y)}.Sub(pos)

		if math.Abs(delta.X) < speed && math.Abs(delta.Y) < speed {
			t.X = float64(next.X)
			t.Y = float64(next.Y)
			pathing.Pop()
			w.Events().Push(ecs.Event{
				Type:   EventWaypointReached,
				Entity: e,
				Data:   WaypointReached{Cell: next, Remaining: len(pathing.Waypoints)},
			})
			if len(pathing.Waypoints) == 0 {
				w.Events().Push(ecs.Event{Type: EventDestinationReached, Entity: e, Data: next})
			}
			return
		}

		step := cp.Vector{X: common.Sign(delta.X) * speed, Y: common.Sign(delta.Y) * speed}
		t.SetVector(pos.Add(step))
		w.Events().Push(ecs.Event{Type: EventAgentMoved, Entity: e, Data: AgentMoved{X: t.X, Y: t.Y}})
	})
}
