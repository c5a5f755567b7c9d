package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/sim"
)

// cellWidth is how many terminal columns one grid cell takes, so cells come
// out roughly square.
const cellWidth = 2

const (
	glyphTile   = ' '
	glyphPath   = '·'
	glyphTarget = 'x'
	glyphItem   = '*'
	glyphAgent  = '@'
)

type styles struct {
	tile   tcell.Style
	alt    tcell.Style
	path   tcell.Style
	target tcell.Style
	item   tcell.Style
	agent  tcell.Style
	status tcell.Style
}

func defaultStyles() styles {
	base := tcell.StyleDefault
	return styles{
		tile:   base.Background(tcell.ColorDarkGreen),
		alt:    base.Background(tcell.ColorForestGreen),
		path:   base.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite),
		target: base.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite).Bold(true),
		item:   base.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorGold).Bold(true),
		agent:  base.Background(tcell.ColorDodgerBlue).Foreground(tcell.ColorWhite).Bold(true),
		status: base.Foreground(tcell.ColorSilver),
	}
}

type glyph struct {
	r     rune
	style tcell.Style
}

// layout returns the board as rows of glyphs. The agent wins over items,
// items over the target, and the target over path marks.
func layout(st sim.State, size int, sty styles) [][]glyph {
	rows := make([][]glyph, size)
	for y := range rows {
		rows[y] = make([]glyph, size)
		for x := range rows[y] {
			g := glyph{r: glyphTile, style: sty.tile}
			if (x+y)%2 == 1 {
				g.style = sty.alt
			}
			rows[y][x] = g
		}
	}

	put := func(c nav.Cell, g glyph) {
		if c.X >= 0 && c.Y >= 0 && c.X < size && c.Y < size {
			rows[c.Y][c.X] = g
		}
	}
	for _, c := range st.Waypoints {
		put(c, glyph{r: glyphPath, style: sty.path})
	}
	if st.Target != nil && !st.Idle() {
		put(*st.Target, glyph{r: glyphTarget, style: sty.target})
	}
	for _, item := range st.Items {
		put(item.Cell, glyph{r: glyphItem, style: sty.item})
	}
	put(st.Cell(), glyph{r: glyphAgent, style: sty.agent})
	return rows
}

func statusLine(st sim.State) string {
	return fmt.Sprintf("tick %d  items %d/%d  path %d  click to move, q quits",
		st.Tick, st.Collected, st.Total, st.PathLen())
}

// cellAt maps a terminal position to the cell drawn there.
func cellAt(col, row, size int) (nav.Cell, bool) {
	if col < 0 || row < 0 {
		return nav.Cell{}, false
	}
	c := nav.Cell{X: col / cellWidth, Y: row}
	if c.X >= size || c.Y >= size {
		return nav.Cell{}, false
	}
	return c, true
}

func draw(screen tcell.Screen, st sim.State, size int, sty styles) {
	screen.Clear()
	for y, row := range layout(st, size, sty) {
		for x, g := range row {
			screen.SetContent(x*cellWidth, y, g.r, nil, g.style)
			screen.SetContent(x*cellWidth+1, y, ' ', nil, g.style)
		}
	}
	for i, r := range []rune(statusLine(st)) {
		screen.SetContent(i, size+1, r, nil, sty.status)
	}
	screen.Show()
}
