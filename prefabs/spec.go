package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/gridwalk/sim"
	"gopkg.in/yaml.v3"
)

// SimulationFile is the tuning prefab every binary loads by default.
const SimulationFile = "simulation.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SimulationSpec tunes the simulator and the demo renderer. Zero values fall
// back to the simulator defaults.
type SimulationSpec struct {
	Name           string      `yaml:"name"`
	GridSize       int         `yaml:"grid_size"`
	TileSize       int         `yaml:"tile_size"`
	Speed          float64     `yaml:"speed"`
	TickIntervalMS int         `yaml:"tick_interval_ms"`
	MaxSearchNodes int         `yaml:"max_search_nodes"`
	Level          string      `yaml:"level"`
	Script         string      `yaml:"script"`
	Palette        PaletteSpec `yaml:"palette"`
}

type PaletteSpec struct {
	Background *YAMLColor `yaml:"background"`
	Tile       *YAMLColor `yaml:"tile"`
	TileAlt    *YAMLColor `yaml:"tile_alt"`
	Item       *YAMLColor `yaml:"item"`
	Agent      *YAMLColor `yaml:"agent"`
	Path       *YAMLColor `yaml:"path"`
	Visited    *YAMLColor `yaml:"visited"`
}

func LoadSimulationSpec(name string) (*SimulationSpec, error) {
	if name == "" {
		name = SimulationFile
	}
	spec, err := LoadSpec[SimulationSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// DecodeSimulationSpec parses and validates raw YAML, for callers that read
// the file themselves (hot reload).
func DecodeSimulationSpec(data []byte) (*SimulationSpec, error) {
	var spec SimulationSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal simulation spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s SimulationSpec) Validate() error {
	var errs []error
	if s.GridSize < 0 {
		errs = append(errs, fmt.Errorf("%w: grid_size %d", ErrInvalidSpec, s.GridSize))
	}
	if s.TileSize < 0 {
		errs = append(errs, fmt.Errorf("%w: tile_size %d", ErrInvalidSpec, s.TileSize))
	}
	if s.Speed < 0 {
		errs = append(errs, fmt.Errorf("%w: speed %v", ErrInvalidSpec, s.Speed))
	}
	if s.TickIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("%w: tick_interval_ms %d", ErrInvalidSpec, s.TickIntervalMS))
	}
	if s.MaxSearchNodes < 0 {
		errs = append(errs, fmt.Errorf("%w: max_search_nodes %d", ErrInvalidSpec, s.MaxSearchNodes))
	}
	return errors.Join(errs...)
}

// TickInterval is the configured tick length, or the simulator default.
func (s SimulationSpec) TickInterval() time.Duration {
	if s.TickIntervalMS <= 0 {
		return sim.DefaultTickInterval
	}
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// Tile is the rendered size of one cell in pixels.
func (s SimulationSpec) Tile() int {
	if s.TileSize <= 0 {
		return sim.DefaultTileSize
	}
	return s.TileSize
}

// Apply overlays the non-zero tuning values onto cfg.
func (s SimulationSpec) Apply(cfg sim.Config) sim.Config {
	if s.GridSize > 0 {
		cfg.GridSize = s.GridSize
	}
	if s.Speed > 0 {
		cfg.Speed = s.Speed
	}
	if s.TickIntervalMS > 0 {
		cfg.TickInterval = s.TickInterval()
	}
	if s.MaxSearchNodes > 0 {
		cfg.MaxSearchNodes = s.MaxSearchNodes
	}
	return cfg
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
