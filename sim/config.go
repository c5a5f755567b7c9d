package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/milk9111/gridwalk/nav"
)

const (
	DefaultGridSize     = 12
	DefaultTileSize     = 48
	DefaultSpeed        = 0.15
	DefaultTickInterval = 16 * time.Millisecond
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Item is a pickup placed on the grid at construction time.
type Item struct {
	Cell nav.Cell `json:"cell"`
	Kind string   `json:"kind,omitempty"`
}

type Config struct {
	GridSize     int
	Speed        float64
	TickInterval time.Duration
	// MaxSearchNodes caps pathfinding expansions; zero means GridSize².
	MaxSearchNodes int
	Start          nav.Cell
	Items          []Item
}

// DefaultConfig is the stock 12x12 board with three items.
func DefaultConfig() Config {
	return Config{
		GridSize:     DefaultGridSize,
		Speed:        DefaultSpeed,
		TickInterval: DefaultTickInterval,
		Start:        nav.Cell{X: 0, Y: 0},
		Items: []Item{
			{Cell: nav.Cell{X: 4, Y: 2}, Kind: "gem"},
			{Cell: nav.Cell{X: 7, Y: 6}, Kind: "gem"},
			{Cell: nav.Cell{X: 10, Y: 3}, Kind: "gem"},
		},
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: grid size %d must be positive", ErrInvalidConfig, c.GridSize))
	}
	if err := validSpeed(c.Speed); err != nil {
		errs = append(errs, err)
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick interval %v must be positive", ErrInvalidConfig, c.TickInterval))
	}
	if c.MaxSearchNodes < 0 {
		errs = append(errs, fmt.Errorf("%w: max search nodes %d is negative", ErrInvalidConfig, c.MaxSearchNodes))
	}
	if c.GridSize > 0 {
		grid := nav.NewGrid(c.GridSize)
		if !grid.InBounds(c.Start) {
			errs = append(errs, fmt.Errorf("%w: start %v outside %dx%d grid", ErrInvalidConfig, c.Start, c.GridSize, c.GridSize))
		}
		for i, item := range c.Items {
			if !grid.InBounds(item.Cell) {
				errs = append(errs, fmt.Errorf("%w: item %d at %v outside %dx%d grid", ErrInvalidConfig, i, item.Cell, c.GridSize, c.GridSize))
			}
		}
	}
	return errors.Join(errs...)
}

func validSpeed(v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: speed %v must be a positive finite number", ErrInvalidConfig, v)
	}
	return nil
}

func (c Config) clone() Config {
	c.Items = append([]Item(nil), c.Items...)
	return c
}
