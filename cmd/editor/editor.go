package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gridwalk/levels"
	"github.com/milk9111/gridwalk/nav"
	"golang.org/x/image/colornames"
)

const statusHeight = 32

var kinds = []string{levels.DefaultItemKind, "apple", "pear", "seed"}

var kindColors = map[string]color.Color{
	levels.DefaultItemKind: colornames.Gold,
	"apple":                colornames.Crimson,
	"pear":                 colornames.Yellowgreen,
	"seed":                 colornames.Sandybrown,
}

// Editor is the Ebiten game for the level editor.
type Editor struct {
	doc      *Document
	cellSize int
	tool     Tool
	kind     int
	status   string
}

func NewEditor(doc *Document, cellSize int) *Editor {
	return &Editor{doc: doc, cellSize: cellSize, status: "1 item  2 spawn  3 erase  K kind  Z undo  S save"}
}

func (g *Editor) cellAt(x, y int) (nav.Cell, bool) {
	if x < 0 || y < 0 {
		return nav.Cell{}, false
	}
	c := nav.Cell{X: x / g.cellSize, Y: y / g.cellSize}
	lvl := g.doc.Level()
	return c, c.X < lvl.Width && c.Y < lvl.Height
}

func (g *Editor) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.tool = ToolItem
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.tool = ToolSpawn
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.tool = ToolErase
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.kind = (g.kind + 1) % len(kinds)
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if !g.doc.Undo() {
			g.status = "nothing to undo"
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.doc.Save(); err != nil {
			g.status = "save failed: " + err.Error()
		} else {
			g.status = "saved " + g.doc.Filename()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if c, ok := g.cellAt(ebiten.CursorPosition()); ok {
			g.doc.Apply(g.tool, c, kinds[g.kind])
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if c, ok := g.cellAt(ebiten.CursorPosition()); ok {
			g.doc.Apply(ToolErase, c, "")
		}
	}
	return nil
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1b, 0x1f, 0x24, 0xff})
	lvl := g.doc.Level()
	cs := float32(g.cellSize)

	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			clr := colornames.Darkgreen
			if (x+y)%2 == 1 {
				clr = colornames.Forestgreen
			}
			vector.FillRect(screen, float32(x)*cs, float32(y)*cs, cs, cs, clr, false)
		}
	}

	for _, e := range lvl.Entities {
		x, y := float32(e.X)*cs, float32(e.Y)*cs
		switch e.Type {
		case levels.EntitySpawn:
			vector.StrokeRect(screen, x+3, y+3, cs-6, cs-6, 3, colornames.Dodgerblue, true)
		case levels.EntityItem:
			clr, ok := kindColors[itemKind(e)]
			if !ok {
				clr = colornames.White
			}
			vector.FillRect(screen, x+cs/3, y+cs/3, cs/3, cs/3, clr, true)
		}
	}

	if c, ok := g.cellAt(ebiten.CursorPosition()); ok {
		vector.StrokeRect(screen, float32(c.X)*cs, float32(c.Y)*cs, cs, cs, 1, colornames.Lightgrey, false)
	}

	dirty := ""
	if g.doc.Dirty() {
		dirty = " *"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  tool=%s kind=%s%s", g.status, g.tool, kinds[g.kind], dirty), 4, lvl.Height*g.cellSize+8)
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	lvl := g.doc.Level()
	return lvl.Width * g.cellSize, lvl.Height*g.cellSize + statusHeight
}
