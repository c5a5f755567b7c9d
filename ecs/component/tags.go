package component

// AgentTag marks the entity that walks paths and collects pickups.
type AgentTag struct{}

var AgentTagComponent = NewComponent[AgentTag]("agent_tag")
