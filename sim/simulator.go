package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/component"
	"github.com/milk9111/gridwalk/ecs/system"
	"github.com/milk9111/gridwalk/nav"
)

// maxCatchUpTicks bounds how many ticks a single Advance may run; time beyond
// that is dropped rather than replayed.
const maxCatchUpTicks = 30

// PathFinder computes waypoint paths between cells.
type PathFinder = system.PathFinder

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

func WithPathFinder(f PathFinder) Option {
	return func(s *Simulator) {
		if f != nil {
			s.finder = f
		}
	}
}

// Simulator moves a single agent along grid paths and collects the items it
// passes over. All methods are safe for concurrent use; a destination request
// and a tick never interleave.
type Simulator struct {
	mu sync.Mutex

	id        string
	cfg       Config
	grid      *nav.Grid
	finder    PathFinder
	log       *slog.Logger
	world     *ecs.World
	scheduler *ecs.Scheduler
	agent     ecs.Entity
	tick      uint64
	carry     time.Duration
}

func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.clone()

	grid := nav.NewGrid(cfg.GridSize)
	if cfg.MaxSearchNodes > 0 {
		grid.MaxNodes = cfg.MaxSearchNodes
	}

	s := &Simulator{
		id:     uuid.NewString(),
		cfg:    cfg,
		grid:   grid,
		finder: grid,
		log:    slog.New(slog.DiscardHandler),
		world:  ecs.NewWorld(),
		scheduler: ecs.NewScheduler(
			system.NewPathFollowSystem(),
			system.NewPickupCollectSystem(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("sim", s.id)

	if err := s.spawn(); err != nil {
		return nil, err
	}

	// items under the spawn cell count as collected immediately; the events
	// stay queued for the first tick
	system.NewPickupCollectSystem().Update(s.world)

	s.log.Debug("simulator ready",
		"grid", cfg.GridSize,
		"speed", cfg.Speed,
		"tick_interval", cfg.TickInterval,
		"items", len(cfg.Items),
	)
	return s, nil
}

func (s *Simulator) spawn() error {
	w := s.world
	board := w.CreateEntity()
	if err := ecs.Add(w, board, component.GridBoundsComponent.Kind(), &component.GridBounds{
		Width:  s.cfg.GridSize,
		Height: s.cfg.GridSize,
	}); err != nil {
		return fmt.Errorf("sim: spawn board: %w", err)
	}

	s.agent = w.CreateEntity()
	if err := ecs.Add(w, s.agent, component.TransformComponent.Kind(), &component.Transform{
		X: float64(s.cfg.Start.X),
		Y: float64(s.cfg.Start.Y),
	}); err != nil {
		return fmt.Errorf("sim: spawn agent: %w", err)
	}
	if err := ecs.Add(w, s.agent, component.PathingComponent.Kind(), &component.Pathing{}); err != nil {
		return fmt.Errorf("sim: spawn agent: %w", err)
	}
	if err := ecs.Add(w, s.agent, component.MoverComponent.Kind(), &component.Mover{Speed: s.cfg.Speed}); err != nil {
		return fmt.Errorf("sim: spawn agent: %w", err)
	}
	if err := ecs.Add(w, s.agent, component.AgentTagComponent.Kind(), &component.AgentTag{}); err != nil {
		return fmt.Errorf("sim: spawn agent: %w", err)
	}
	if err := ecs.Add(w, s.agent, component.CollectionTrackerComponent.Kind(), &component.CollectionTracker{Total: len(s.cfg.Items)}); err != nil {
		return fmt.Errorf("sim: spawn agent: %w", err)
	}

	for i, item := range s.cfg.Items {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: item.Kind, Cell: item.Cell}); err != nil {
			return fmt.Errorf("sim: spawn item %d: %w", i, err)
		}
	}
	return nil
}

// Restart builds a fresh simulator from cfg that keeps the speed prev is
// currently running at, so a live speed change survives the reset.
func Restart(prev *Simulator, cfg Config, opts ...Option) (*Simulator, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return s, nil
	}
	if speed := prev.Config().Speed; speed != cfg.Speed {
		if err := s.SetSpeed(speed); err != nil {
			return s, fmt.Errorf("sim: restart: keep speed %v: %w", speed, err)
		}
	}
	return s, nil
}

// ID identifies this run in logs.
func (s *Simulator) ID() string {
	return s.id
}

// Config returns the configuration the simulator is running with.
func (s *Simulator) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.clone()
}

// SetDestination replaces the active path with the shortest path from the
// agent's current cell to goal. Out-of-bounds goals are rejected with
// nav.ErrInvalidCell. An unreachable goal is not an error: the request is
// dropped and the current path, if any, stays active.
func (s *Simulator) SetDestination(goal nav.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grid.InBounds(goal) {
		return fmt.Errorf("sim: set destination: %w: %v outside %dx%d", nav.ErrInvalidCell, goal, s.cfg.GridSize, s.cfg.GridSize)
	}

	path, err := system.AssignDestination(s.world, s.agent, s.finder, goal)
	switch {
	case err == nil:
		s.log.Debug("destination set", "goal", goal, "steps", len(path))
		return nil
	case errors.Is(err, nav.ErrNoPath):
		start := s.agentCell()
		s.log.Info("destination unreachable, keeping current path", "start", start, "goal", goal, "err", err)
		s.world.Events().Push(ecs.Event{
			Type:   system.EventDestinationRejected,
			Entity: s.agent,
			Data:   system.DestinationRejected{Start: start, Goal: goal, Err: err},
		})
		return nil
	default:
		return fmt.Errorf("sim: set destination %v: %w", goal, err)
	}
}

// Tick advances the simulation by one fixed step and returns the events it
// produced, including any queued by SetDestination since the last tick.
// Without an active path the agent does not move.
func (s *Simulator) Tick() []ecs.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

// Advance runs as many fixed ticks as fit in elapsed plus the remainder
// carried from earlier calls.
func (s *Simulator) Advance(elapsed time.Duration) []ecs.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elapsed <= 0 {
		return nil
	}
	s.carry += elapsed

	var out []ecs.Event
	for n := 0; s.carry >= s.cfg.TickInterval; n++ {
		if n == maxCatchUpTicks {
			s.log.Warn("dropping backlog", "backlog", s.carry)
			s.carry = 0
			break
		}
		s.carry -= s.cfg.TickInterval
		out = append(out, s.step()...)
	}
	return out
}

// Run ticks on a wall-clock ticker until ctx is done. fn, if set, receives
// the state and events after every tick.
func (s *Simulator) Run(ctx context.Context, fn func(State, []ecs.Event)) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			events := s.Tick()
			if fn != nil {
				fn(s.State(), events)
			}
		}
	}
}

// SetSpeed changes the per-tick step length.
func (s *Simulator) SetSpeed(speed float64) error {
	if err := validSpeed(speed); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	mover, ok := ecs.Get(s.world, s.agent, component.MoverComponent.Kind())
	if !ok {
		return fmt.Errorf("sim: agent has no mover")
	}
	mover.Speed = speed
	s.cfg.Speed = speed
	s.log.Info("speed changed", "speed", speed)
	return nil
}

func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		RunID:    s.id,
		Tick:     s.tick,
		GridSize: s.cfg.GridSize,
		Items:    make([]Item, 0, ecs.Count(s.world, component.PickupComponent.Kind())),
	}
	if t, ok := ecs.Get(s.world, s.agent, component.TransformComponent.Kind()); ok {
		st.X, st.Y = t.X, t.Y
	}
	if p, ok := ecs.Get(s.world, s.agent, component.PathingComponent.Kind()); ok {
		st.Waypoints = p.Waypoints.Clone()
		if st.Waypoints == nil {
			st.Waypoints = nav.Path{}
		}
		if p.HasTarget {
			target := p.LastTarget
			st.Target = &target
		}
		st.Visited = append([]nav.Cell(nil), p.Visited...)
	}
	if tr, ok := ecs.Get(s.world, s.agent, component.CollectionTrackerComponent.Kind()); ok {
		st.Collected = tr.Collected
		st.Total = tr.Total
	}
	ecs.ForEach(s.world, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		st.Items = append(st.Items, Item{Cell: p.Cell, Kind: p.Kind})
	})
	sortItems(st.Items)
	return st
}

func (s *Simulator) step() []ecs.Event {
	s.tick++
	if s.pathLen() > 0 {
		s.scheduler.Update(s.world)
	}
	events := s.world.Events().Drain()
	s.logEvents(events...)
	return events
}

func (s *Simulator) pathLen() int {
	p, ok := ecs.Get(s.world, s.agent, component.PathingComponent.Kind())
	if !ok {
		return 0
	}
	return len(p.Waypoints)
}

func (s *Simulator) agentCell() nav.Cell {
	t, ok := ecs.Get(s.world, s.agent, component.TransformComponent.Kind())
	if !ok {
		return nav.Cell{}
	}
	return system.CellOf(s.world, t)
}

func (s *Simulator) logEvents(events ...ecs.Event) {
	for _, evt := range events {
		switch data := evt.Data.(type) {
		case system.ItemCollected:
			s.log.Info("item collected", "tick", s.tick, "cell", data.Cell, "kind", data.Kind, "collected", data.Total)
		case system.WaypointReached:
			s.log.Debug("waypoint reached", "tick", s.tick, "cell", data.Cell, "remaining", data.Remaining)
		case nav.Cell:
			if evt.Type == system.EventDestinationReached {
				s.log.Debug("destination reached", "tick", s.tick, "cell", data)
			}
		}
	}
}
