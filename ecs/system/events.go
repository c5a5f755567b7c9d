package system

import (
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/nav"
)

const (
	EventAgentMoved          ecs.EventType = "agent_moved"
	EventWaypointReached     ecs.EventType = "waypoint_reached"
	EventDestinationReached  ecs.EventType = "destination_reached"
	EventItemCollected       ecs.EventType = "item_collected"
	EventDestinationSet      ecs.EventType = "destination_set"
	EventDestinationRejected ecs.EventType = "destination_rejected"
)

// AgentMoved carries the position after a non-settling step.
type AgentMoved struct {
	X float64
	Y float64
}

// WaypointReached is emitted when a waypoint is settled and consumed.
type WaypointReached struct {
	Cell      nav.Cell
	Remaining int
}

// ItemCollected is emitted once per pickup, at the tick it is collected.
type ItemCollected struct {
	Cell  nav.Cell
	Kind  string
	Total int
}

// DestinationSet is emitted when a new path replaces the active one.
type DestinationSet struct {
	Start nav.Cell
	Goal  nav.Cell
	Steps int
}

// DestinationRejected is emitted when no path could be found and the active
// path was kept.
type DestinationRejected struct {
	Start nav.Cell
	Goal  nav.Cell
	Err   error
}
