package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/milk9111/gridwalk/levels"
	"github.com/milk9111/gridwalk/nav"
)

// Tool is what a click on a cell does.
type Tool int

const (
	ToolItem Tool = iota
	ToolSpawn
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolItem:
		return "Item"
	case ToolSpawn:
		return "Spawn"
	case ToolErase:
		return "Erase"
	default:
		return "Unknown"
	}
}

// UndoSnapshot is the full entity list before an edit. Boards are small, so
// whole copies are cheaper to reason about than deltas.
type UndoSnapshot struct {
	Entities []levels.Entity
}

// Document is a level being edited.
type Document struct {
	level    *levels.Level
	filename string
	dirty    bool

	undoStack []UndoSnapshot
	maxUndo   int
}

func NewDocument(size int) *Document {
	return &Document{
		level: &levels.Level{
			Width:    size,
			Height:   size,
			Entities: []levels.Entity{{Type: levels.EntitySpawn}},
		},
		maxUndo: 200,
	}
}

func (d *Document) Level() *levels.Level { return d.level }

func (d *Document) Dirty() bool { return d.dirty }

func (d *Document) Filename() string { return d.filename }

func (d *Document) inBounds(c nav.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < d.level.Width && c.Y < d.level.Height
}

// Apply runs tool on c. It reports whether anything changed.
func (d *Document) Apply(tool Tool, c nav.Cell, kind string) bool {
	if !d.inBounds(c) {
		return false
	}
	switch tool {
	case ToolItem:
		for _, e := range d.level.Entities {
			if e.Type == levels.EntityItem && e.Cell() == c && itemKind(e) == kind {
				return false
			}
		}
		d.pushSnapshot()
		e := levels.Entity{Type: levels.EntityItem, X: c.X, Y: c.Y}
		if kind != "" && kind != levels.DefaultItemKind {
			e.Props = map[string]interface{}{"kind": kind}
		}
		d.level.Entities = append(d.level.Entities, e)
	case ToolSpawn:
		if d.level.Spawn() == c && d.hasSpawn() {
			return false
		}
		d.pushSnapshot()
		kept := d.level.Entities[:0]
		for _, e := range d.level.Entities {
			if e.Type != levels.EntitySpawn {
				kept = append(kept, e)
			}
		}
		d.level.Entities = append(kept, levels.Entity{Type: levels.EntitySpawn, X: c.X, Y: c.Y})
	case ToolErase:
		idx := -1
		for i, e := range d.level.Entities {
			if e.Type == levels.EntityItem && e.Cell() == c {
				idx = i
			}
		}
		if idx < 0 {
			return false
		}
		d.pushSnapshot()
		d.level.Entities = append(d.level.Entities[:idx], d.level.Entities[idx+1:]...)
	default:
		return false
	}
	d.dirty = true
	return true
}

func (d *Document) hasSpawn() bool {
	for _, e := range d.level.Entities {
		if e.Type == levels.EntitySpawn {
			return true
		}
	}
	return false
}

func itemKind(e levels.Entity) string {
	if v, ok := e.Props["kind"].(string); ok && v != "" {
		return v
	}
	return levels.DefaultItemKind
}

func (d *Document) pushSnapshot() {
	snap := UndoSnapshot{Entities: append([]levels.Entity(nil), d.level.Entities...)}
	d.undoStack = append(d.undoStack, snap)
	if len(d.undoStack) > d.maxUndo {
		// drop oldest
		d.undoStack = d.undoStack[1:]
	}
}

// Undo restores the last snapshot if available.
func (d *Document) Undo() bool {
	n := len(d.undoStack)
	if n == 0 {
		return false
	}
	snap := d.undoStack[n-1]
	d.undoStack = d.undoStack[:n-1]
	d.level.Entities = snap.Entities
	d.dirty = true
	return true
}

func (d *Document) Save() error {
	if err := d.level.Validate(d.level.Width); err != nil {
		return err
	}
	if d.filename == "" {
		if err := os.MkdirAll("levels", 0755); err != nil {
			return err
		}
		d.filename = filepath.Join("levels", fmt.Sprintf("level_%d.json", time.Now().Unix()))
	} else if err := os.MkdirAll(filepath.Dir(d.filename), 0755); err != nil {
		return err
	}

	f, err := os.Create(d.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.level); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// Load replaces the document with filename. A missing file keeps the empty
// board and remembers the name for the first save.
func (d *Document) Load(filename string) error {
	d.filename = filename
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	lvl, err := levels.Load(filename)
	if err != nil {
		return err
	}
	if lvl.Width != lvl.Height || lvl.Width <= 0 {
		return fmt.Errorf("%s: boards are square, got %dx%d", filename, lvl.Width, lvl.Height)
	}
	d.level = lvl
	d.undoStack = nil
	d.dirty = false
	return nil
}
