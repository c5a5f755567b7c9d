package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/gridwalk/sim"
)

// HUD is the status strip drawn over the board plus the pause menu.
type HUD struct {
	status *ebitenui.UI
	pause  *ebitenui.UI

	collected *widget.Text
	detail    *widget.Text
	flash     *widget.Text
	flashLeft int
}

func newFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

// NewHUD builds the HUD. The pause menu uses colored nine-slices only, so no
// theme fonts need to be loaded.
func NewHUD(g *Game) *HUD {
	face := newFace()
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	h := &HUD{}

	h.collected = widget.NewText(widget.TextOpts.Text("", face, white))
	h.detail = widget.NewText(widget.TextOpts.Text("", face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}))
	h.flash = widget.NewText(widget.TextOpts.Text("", face, color.NRGBA{R: 0xff, G: 0xd5, B: 0x4f, A: 0xff}))

	strip := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 150})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	strip.AddChild(h.collected)
	strip.AddChild(h.detail)
	strip.AddChild(h.flash)

	statusRoot := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	statusRoot.AddChild(strip)
	h.status = &ebitenui.UI{Container: statusRoot}

	h.pause = newPauseUI(g, face)
	return h
}

func newPauseUI(g *Game, face *ebtext.Face) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Resume", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.paused = false
		}),
	)

	restartBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Restart", face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.restart()
			g.paused = false
		}),
	)

	side := g.board.Bounds().Width
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(side/2), int(side/4)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(restartBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

// Sync copies the simulator snapshot into the labels.
func (h *HUD) Sync(st sim.State, debug bool) {
	h.collected.Label = fmt.Sprintf("Collected: %d / %d", st.Collected, st.Total)
	if debug {
		h.detail.Label = fmt.Sprintf("tick %d  pos %.2f,%.2f  path %d  expanded %d", st.Tick, st.X, st.Y, st.PathLen(), len(st.Visited))
	} else {
		h.detail.Label = ""
	}
	if h.flashLeft > 0 {
		h.flashLeft--
		if h.flashLeft == 0 {
			h.flash.Label = ""
		}
	}
}

// Flash shows msg for the given number of frames.
func (h *HUD) Flash(msg string, frames int) {
	h.flash.Label = msg
	h.flashLeft = frames
}
