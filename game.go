package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/ecs/system"
	"github.com/milk9111/gridwalk/nav"
	"github.com/milk9111/gridwalk/prefabs"
	"github.com/milk9111/gridwalk/sim"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const flashFrames = 90

type palette struct {
	background color.Color
	tile       color.Color
	tileAlt    color.Color
	item       color.Color
	agent      color.Color
	path       color.Color
	visited    color.Color
}

func paletteFrom(p prefabs.PaletteSpec) palette {
	return palette{
		background: p.Background.Or(colornames.Black),
		tile:       p.Tile.Or(colornames.Darkgreen),
		tileAlt:    p.TileAlt.Or(colornames.Forestgreen),
		item:       p.Item.Or(colornames.Gold),
		agent:      p.Agent.Or(colornames.Dodgerblue),
		path:       p.Path.Or(colornames.White),
		visited:    p.Visited.Or(color.NRGBA{R: 0xff, G: 0x70, B: 0x43, A: 0x40}),
	}
}

var kindColors = map[string]color.Color{
	"apple": colornames.Crimson,
	"pear":  colornames.Yellowgreen,
	"seed":  colornames.Sandybrown,
}

type Game struct {
	frames int

	log     *slog.Logger
	cfg     sim.Config
	sim     *sim.Simulator
	board   board
	palette palette
	hud     *HUD

	paused    bool
	debug     bool
	clipboard bool
	watcher   *prefabs.Watcher
	input     Input
}

func NewGame(cfg sim.Config, spec *prefabs.SimulationSpec, log *slog.Logger, debug bool) (*Game, error) {
	s, err := sim.New(cfg, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	g := &Game{
		log:     log,
		cfg:     cfg,
		sim:     s,
		board:   board{size: cfg.GridSize, tile: spec.Tile()},
		palette: paletteFrom(spec.Palette),
		debug:   debug,
	}
	g.hud = NewHUD(g)
	return g, nil
}

// Watch hot reloads simulation.yaml edits from w.
func (g *Game) Watch(w *prefabs.Watcher) {
	g.watcher = w
}

func (g *Game) EnableClipboard() {
	g.clipboard = true
}

func (g *Game) restart() {
	s, err := sim.Restart(g.sim, g.cfg, sim.WithLogger(g.log))
	if s == nil {
		g.log.Error("restart failed", "err", err)
		return
	}
	if err != nil {
		g.log.Warn("restart speed", "err", err)
	}
	g.sim = s
	g.hud.Flash("restarted", flashFrames)
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.input = ReadInput(g.board)
	if g.input.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		g.hud.pause.Update()
		return nil
	}

	if g.input.Debug {
		g.debug = !g.debug
	}
	if g.input.Reset {
		g.restart()
	}
	if g.input.Copy {
		g.copyState()
	}
	if g.input.Click {
		if err := g.sim.SetDestination(g.input.ClickCell); err != nil {
			g.log.Warn("destination refused", "cell", g.input.ClickCell, "err", err)
		}
	}

	for _, evt := range g.sim.Advance(time.Second / time.Duration(ebiten.TPS())) {
		switch data := evt.Data.(type) {
		case system.ItemCollected:
			g.hud.Flash(fmt.Sprintf("+1 %s at %v", data.Kind, data.Cell), flashFrames)
		case system.DestinationRejected:
			g.hud.Flash(fmt.Sprintf("no way to %v", data.Goal), flashFrames)
		}
	}

	g.hud.Sync(g.sim.State(), g.debug)
	g.hud.status.Update()
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Script || filepath.Base(change.Path) != prefabs.SimulationFile {
				continue
			}
			g.reloadSpec(change.Path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

// reloadSpec applies the parts of a simulation spec that can change while
// running: speed and palette. Grid and level changes need a restart.
func (g *Game) reloadSpec(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		g.log.Warn("reload spec", "path", path, "err", err)
		return
	}
	spec, err := prefabs.DecodeSimulationSpec(data)
	if err != nil {
		g.log.Warn("reload spec", "path", path, "err", err)
		return
	}
	if spec.Speed > 0 {
		if err := g.sim.SetSpeed(spec.Speed); err != nil {
			g.log.Warn("reload speed", "err", err)
		}
	}
	g.palette = paletteFrom(spec.Palette)
	g.hud.Flash("reloaded "+filepath.Base(path), flashFrames)
}

func (g *Game) copyState() {
	data, err := json.MarshalIndent(g.sim.State(), "", "  ")
	if err != nil {
		g.log.Error("encode state", "err", err)
		return
	}
	if !g.clipboard {
		g.log.Info("state snapshot", "json", string(data))
		g.hud.Flash("clipboard unavailable, state logged", flashFrames)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.hud.Flash("state copied", flashFrames)
}

func (g *Game) Draw(screen *ebiten.Image) {
	st := g.sim.State()
	screen.Fill(g.palette.background)

	g.drawTiles(screen)
	if g.debug {
		for _, c := range st.Visited {
			r := g.board.CellRect(c)
			vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, g.palette.visited, false)
		}
	}
	if g.input.HoverOK {
		r := g.board.CellRect(g.input.Hover).Inset(1)
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 1, colornames.Lightgrey, false)
	}
	g.drawItems(screen, st.Items)
	g.drawPath(screen, st)
	g.drawAgent(screen, st)

	g.hud.status.Draw(screen)
	if g.paused {
		g.hud.pause.Draw(screen)
	}
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	for y := 0; y < g.board.size; y++ {
		for x := 0; x < g.board.size; x++ {
			clr := g.palette.tile
			if (x+y)%2 == 1 {
				clr = g.palette.tileAlt
			}
			r := g.board.CellRect(nav.Cell{X: x, Y: y})
			vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, clr, false)
		}
	}
}

func (g *Game) drawItems(screen *ebiten.Image, items []sim.Item) {
	inset := float32(g.board.tile) / 3
	for _, item := range items {
		clr, ok := kindColors[item.Kind]
		if !ok {
			clr = g.palette.item
		}
		r := g.board.CellRect(item.Cell).Inset(inset)
		vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, clr, true)
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 1, colornames.Black, true)
	}
}

func (g *Game) drawPath(screen *ebiten.Image, st sim.State) {
	if len(st.Waypoints) == 0 {
		return
	}
	half := float32(g.board.tile) / 2
	px, py := g.board.Pos(st.X, st.Y)
	px, py = px+half, py+half
	for _, c := range st.Waypoints {
		cx, cy := g.board.CellCenter(c)
		vector.StrokeLine(screen, px, py, cx, cy, 3, g.palette.path, true)
		px, py = cx, cy
	}
	if st.Target != nil {
		r := g.board.CellRect(*st.Target).Inset(3)
		vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 2, g.palette.path, true)
	}
}

func (g *Game) drawAgent(screen *ebiten.Image, st sim.State) {
	tile := float32(g.board.tile)
	// a slow breathing pulse while idle
	phase := float32(math.Sin(float64(g.frames) / 20))
	grow := float32(0)
	if st.Idle() {
		grow = common.Lerp(0, tile/12, (phase+1)/2)
	}
	x, y := g.board.Pos(st.X, st.Y)
	r := Rect{X: x, Y: y, Width: tile, Height: tile}.Inset(tile/6 - grow)
	vector.FillRect(screen, r.X, r.Y, r.Width, r.Height, g.palette.agent, true)
	vector.StrokeRect(screen, r.X, r.Y, r.Width, r.Height, 2, colornames.White, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.board.Bounds()
	return int(b.Width), int(b.Height)
}
