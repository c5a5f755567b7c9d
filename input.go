package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gridwalk/nav"
)

// Input is the per-frame snapshot of what the player asked for.
type Input struct {
	Click     bool
	ClickCell nav.Cell
	Hover     nav.Cell
	HoverOK   bool
	Pause     bool
	Copy      bool
	Debug     bool
	Reset     bool
}

func ReadInput(b board) Input {
	var in Input
	x, y := ebiten.CursorPosition()
	in.Hover, in.HoverOK = b.CellAt(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && in.HoverOK {
		in.Click = true
		in.ClickCell = in.Hover
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		if c, ok := b.CellAt(tx, ty); ok {
			in.Click = true
			in.ClickCell = c
		}
	}

	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.Copy = inpututil.IsKeyJustPressed(ebiten.KeyC)
	in.Debug = inpututil.IsKeyJustPressed(ebiten.KeyD)
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	return in
}
