package system

import (
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/component"
)

// PickupCollectSystem collects every pickup lying on the cell an agent
// currently occupies. Collected pickups are destroyed, which is what keeps a
// revisited cell from counting twice.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AgentTagComponent.Kind(), component.TransformComponent.Kind(), func(agent ecs.Entity, _ *component.AgentTag, t *component.Transform) {
		cell := CellOf(w, t)
		tracker, _ := ecs.Get(w, agent, component.CollectionTrackerComponent.Kind())

		ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup) {
			if pickup.Cell != cell {
				return
			}
			total := 0
			if tracker != nil {
				tracker.Collected++
				total = tracker.Collected
			}
			kind, at := pickup.Kind, pickup.Cell
			w.DestroyEntity(e)
			w.Events().Push(ecs.Event{
				Type:   EventItemCollected,
				Entity: agent,
				Data:   ItemCollected{Cell: at, Kind: kind, Total: total},
			})
		})
	})
}
