package system

import (
	"fmt"

	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/component"
	"github.com/milk9111/gridwalk/nav"
)

// PathFinder computes waypoint paths between cells.
type PathFinder interface {
	FindPath(start, goal nav.Cell) (nav.Path, error)
}

// visitedSearcher is implemented by finders that can report expanded cells.
type visitedSearcher interface {
	Search(start, goal nav.Cell) (nav.Path, []nav.Cell, error)
}

// CellOf is the cell t occupies, clamped onto the world's GridBounds when
// one exists.
func CellOf(w *ecs.World, t *component.Transform) nav.Cell {
	if e, ok := ecs.First(w, component.GridBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.GridBoundsComponent.Kind()); ok {
			return b.Cell(t.X, t.Y)
		}
	}
	return nav.Floor(t.X, t.Y)
}

// AssignDestination replaces the active path of e with a fresh path from the
// cell it currently occupies to goal. A leading waypoint equal to that cell is
// dropped so the agent never takes a zero-length first step. On error the
// previous path is left untouched and the error is returned.
func AssignDestination(w *ecs.World, e ecs.Entity, finder PathFinder, goal nav.Cell) (nav.Path, error) {
	if w == nil || finder == nil {
		return nil, fmt.Errorf("pathfinding: no world or finder")
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("pathfinding: entity %v has no transform", e)
	}
	start := CellOf(w, t)

	var (
		path    nav.Path
		visited []nav.Cell
		err     error
	)
	if vs, ok := finder.(visitedSearcher); ok {
		path, visited, err = vs.Search(start, goal)
	} else {
		path, err = finder.FindPath(start, goal)
	}
	if err != nil {
		return nil, err
	}

	waypoints := path.Clone()
	if len(waypoints) > 0 && waypoints[0] == start {
		waypoints = waypoints[1:]
	}

	pathing, ok := ecs.Get(w, e, component.PathingComponent.Kind())
	if !ok {
		pathing = &component.Pathing{}
		if err := ecs.Add(w, e, component.PathingComponent.Kind(), pathing); err != nil {
			return nil, fmt.Errorf("pathfinding: attach pathing: %w", err)
		}
	}
	pathing.Waypoints = waypoints
	pathing.LastStart = start
	pathing.LastTarget = goal
	pathing.HasTarget = true
	pathing.Visited = visited

	w.Events().Push(ecs.Event{
		Type:   EventDestinationSet,
		Entity: e,
		Data:   DestinationSet{Start: start, Goal: goal, Steps: len(waypoints)},
	})
	return waypoints.Clone(), nil
}
