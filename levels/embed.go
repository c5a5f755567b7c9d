package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/sim"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	EntitySpawn = "spawn"
	EntityItem  = "item"
)

// DefaultItemKind is used for items that carry no kind prop.
const DefaultItemKind = "gem"

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is the content of one board: its size, where the agent starts and
// where the items lie.
type Level struct {
	Name     string   `json:"name,omitempty"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Entities []Entity `json:"entities,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func (e Entity) Cell() nav.Cell {
	return nav.Cell{X: e.X, Y: e.Y}
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Decode(data)
}

// Load reads name from disk when such a file exists and from the embedded
// levels otherwise.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		lvl, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", name, err)
		}
		return lvl, nil
	}
	return LoadLevelFromFS(name)
}

func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Spawn is the first spawn entity, or the origin when there is none.
func (l *Level) Spawn() nav.Cell {
	for _, e := range l.Entities {
		if e.Type == EntitySpawn {
			return e.Cell()
		}
	}
	return nav.Cell{}
}

func (l *Level) Items() []sim.Item {
	var items []sim.Item
	for _, e := range l.Entities {
		if e.Type != EntityItem {
			continue
		}
		kind := DefaultItemKind
		if v, ok := e.Props["kind"].(string); ok && v != "" {
			kind = v
		}
		items = append(items, sim.Item{Cell: e.Cell(), Kind: kind})
	}
	return items
}

// Validate checks that the level fits a gridSize x gridSize board.
func (l *Level) Validate(gridSize int) error {
	var errs []error
	if l.Width != gridSize || l.Height != gridSize {
		errs = append(errs, fmt.Errorf("%w: level is %dx%d, board is %dx%d", ErrInvalidLevel, l.Width, l.Height, gridSize, gridSize))
	}
	grid := nav.NewGrid(gridSize)
	spawns := 0
	for i, e := range l.Entities {
		switch e.Type {
		case EntitySpawn:
			spawns++
		case EntityItem:
		default:
			errs = append(errs, fmt.Errorf("%w: entity %d has unknown type %q", ErrInvalidLevel, i, e.Type))
			continue
		}
		if !grid.InBounds(e.Cell()) {
			errs = append(errs, fmt.Errorf("%w: %s %d at %v is off the board", ErrInvalidLevel, e.Type, i, e.Cell()))
		}
	}
	if spawns > 1 {
		errs = append(errs, fmt.Errorf("%w: %d spawns", ErrInvalidLevel, spawns))
	}
	return errors.Join(errs...)
}

// Config places the level content on top of base.
func (l *Level) Config(base sim.Config) (sim.Config, error) {
	if err := l.Validate(base.GridSize); err != nil {
		return sim.Config{}, err
	}
	base.Start = l.Spawn()
	base.Items = l.Items()
	return base, nil
}
