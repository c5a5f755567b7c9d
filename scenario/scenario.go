// Package scenario drives a simulator from tengo scripts, for headless
// regression runs and demos.
//
// Scripts see these globals:
//
//	move_to(x, y)          set a destination; false if the cell is off the grid
//	tick(n)                run n ticks (default 1), returns ticks run
//	run_until_idle(max)    tick until the path is empty, returns ticks run
//	state()                snapshot map (x, y, cell, tick, collected, total, ...)
//	assert(cond, msg...)   abort the run with ErrAssertion when cond is falsy
//	log(args...)           record a line in the result and the logger
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/sim"
)

// DefaultIdleLimit caps run_until_idle when the script gives no limit.
const DefaultIdleLimit = 10_000

var ErrAssertion = errors.New("scenario: assertion failed")

// Driver is the part of a simulator a script can reach.
type Driver interface {
	SetDestination(goal nav.Cell) error
	Tick() []ecs.Event
	State() sim.State
}

type Result struct {
	Ticks  int
	State  sim.State
	Logs   []string
	Events map[ecs.EventType]int
}

type Option func(*runner)

func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithGridSize is reported to scripts as state().grid_size.
func WithGridSize(n int) Option {
	return func(r *runner) { r.gridSize = n }
}

type runner struct {
	ctx      context.Context
	drv      Driver
	log      *slog.Logger
	gridSize int

	res     Result
	failure error
}

// Run compiles src and executes it against drv. Script errors, assertion
// failures and context cancellation all end the run; the result reflects the
// simulator at that point.
func Run(ctx context.Context, drv Driver, src []byte, opts ...Option) (Result, error) {
	if drv == nil {
		return Result{}, errors.New("scenario: nil driver")
	}
	r := &runner{
		ctx:      ctx,
		drv:      drv,
		log:      slog.New(slog.DiscardHandler),
		gridSize: sim.DefaultGridSize,
		res:      Result{Events: make(map[ecs.EventType]int)},
	}
	for _, opt := range opts {
		opt(r)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, fn := range r.builtins() {
		if err := script.Add(name, fn); err != nil {
			return Result{}, fmt.Errorf("scenario: bind %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("scenario: compile: %w", err)
	}

	err = compiled.RunContext(ctx)
	r.res.State = drv.State()
	switch {
	case r.failure != nil:
		return r.res, r.failure
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return r.res, fmt.Errorf("scenario: run: %w", ctxErr)
		}
		return r.res, fmt.Errorf("scenario: run: %w", err)
	}
	return r.res, nil
}

func (r *runner) builtins() map[string]*tengo.UserFunction {
	return map[string]*tengo.UserFunction{
		"move_to":        {Name: "move_to", Value: r.moveTo},
		"tick":           {Name: "tick", Value: r.tick},
		"run_until_idle": {Name: "run_until_idle", Value: r.runUntilIdle},
		"state":          {Name: "state", Value: r.state},
		"assert":         {Name: "assert", Value: r.assert},
		"log":            {Name: "log", Value: r.logLine},
	}
}

func (r *runner) moveTo(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}

	goal := nav.Cell{X: x, Y: y}
	if err := r.drv.SetDestination(goal); err != nil {
		if errors.Is(err, nav.ErrInvalidCell) {
			r.log.Debug("script destination rejected", "goal", goal, "err", err)
			return tengo.FalseValue, nil
		}
		return nil, err
	}
	return tengo.TrueValue, nil
}

func (r *runner) tick(args ...tengo.Object) (tengo.Object, error) {
	n, err := optionalInt(args, 1)
	if err != nil {
		return nil, err
	}
	ran := 0
	for ; ran < n; ran++ {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		r.step()
	}
	return &tengo.Int{Value: int64(ran)}, nil
}

func (r *runner) runUntilIdle(args ...tengo.Object) (tengo.Object, error) {
	limit, err := optionalInt(args, DefaultIdleLimit)
	if err != nil {
		return nil, err
	}
	ran := 0
	for ; ran < limit && !r.drv.State().Idle(); ran++ {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		r.step()
	}
	return &tengo.Int{Value: int64(ran)}, nil
}

func (r *runner) step() {
	for _, evt := range r.drv.Tick() {
		r.res.Events[evt.Type]++
	}
	r.res.Ticks++
}

func (r *runner) state(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 0 {
		return nil, tengo.ErrWrongNumArguments
	}
	return stateObject(r.drv.State(), r.gridSize), nil
}

func (r *runner) assert(args ...tengo.Object) (tengo.Object, error) {
	if len(args) == 0 {
		return nil, tengo.ErrWrongNumArguments
	}
	if !args[0].IsFalsy() {
		return tengo.TrueValue, nil
	}
	msg := joinObjects(args[1:])
	if msg == "" {
		msg = "assert"
	}
	r.failure = fmt.Errorf("%w: %s", ErrAssertion, msg)
	r.log.Warn("script assertion failed", "msg", msg, "tick", r.res.Ticks)
	return nil, r.failure
}

func (r *runner) logLine(args ...tengo.Object) (tengo.Object, error) {
	line := joinObjects(args)
	r.res.Logs = append(r.res.Logs, line)
	r.log.Info("script", "msg", line)
	return tengo.UndefinedValue, nil
}

func stateObject(st sim.State, gridSize int) *tengo.ImmutableMap {
	items := make([]tengo.Object, 0, len(st.Items))
	for _, item := range st.Items {
		items = append(items, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"x":    &tengo.Int{Value: int64(item.Cell.X)},
			"y":    &tengo.Int{Value: int64(item.Cell.Y)},
			"kind": &tengo.String{Value: item.Kind},
		}})
	}
	cell := st.Cell()

	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":         &tengo.Float{Value: st.X},
		"y":         &tengo.Float{Value: st.Y},
		"cell":      cellObject(cell),
		"tick":      &tengo.Int{Value: int64(st.Tick)},
		"collected": &tengo.Int{Value: int64(st.Collected)},
		"total":     &tengo.Int{Value: int64(st.Total)},
		"path_len":  &tengo.Int{Value: int64(st.PathLen())},
		"idle":      boolObject(st.Idle()),
		"items":     &tengo.ImmutableArray{Value: items},
		"grid_size": &tengo.Int{Value: int64(gridSize)},
	}}
}

func cellObject(c nav.Cell) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Int{Value: int64(c.X)},
		"y": &tengo.Int{Value: int64(c.Y)},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func optionalInt(args []tengo.Object, def int) (int, error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
		n, ok := tengo.ToInt(args[0])
		if !ok {
			return 0, tengo.ErrInvalidArgumentType{Name: "n", Expected: "int", Found: args[0].TypeName()}
		}
		if n < 0 {
			n = 0
		}
		return n, nil
	default:
		return 0, tengo.ErrWrongNumArguments
	}
}

func joinObjects(args []tengo.Object) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if s, ok := tengo.ToString(arg); ok {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}
