package main

import "github.com/milk9111/gridwalk/nav"

// Rect is a screen-space rectangle in pixels.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float32) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// board maps grid cells onto screen pixels.
type board struct {
	size int
	tile int
}

func (b board) Bounds() Rect {
	side := float32(b.size * b.tile)
	return Rect{Width: side, Height: side}
}

func (b board) CellRect(c nav.Cell) Rect {
	t := float32(b.tile)
	return Rect{X: float32(c.X) * t, Y: float32(c.Y) * t, Width: t, Height: t}
}

// CellCenter is the pixel center of c.
func (b board) CellCenter(c nav.Cell) (float32, float32) {
	r := b.CellRect(c)
	return r.X + r.Width/2, r.Y + r.Height/2
}

// CellAt returns the cell under pixel (x, y), if it is on the board.
func (b board) CellAt(x, y int) (nav.Cell, bool) {
	if b.tile <= 0 || !b.Bounds().Contains(float32(x), float32(y)) {
		return nav.Cell{}, false
	}
	return nav.Cell{X: x / b.tile, Y: y / b.tile}, true
}

// Pos converts a continuous grid position into the pixel origin of the
// entity drawn there.
func (b board) Pos(x, y float64) (float32, float32) {
	t := float64(b.tile)
	return float32(x * t), float32(y * t)
}
