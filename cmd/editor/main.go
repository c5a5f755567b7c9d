package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridwalk/sim"
)

func main() {
	file := flag.String("file", "", "level file to edit; created on first save")
	size := flag.Int("size", sim.DefaultGridSize, "board size for new levels")
	cell := flag.Int("cell", sim.DefaultTileSize, "cell size in pixels")
	flag.Parse()

	doc := NewDocument(*size)
	if *file != "" {
		if err := doc.Load(*file); err != nil {
			log.Fatalf("failed to load level %s: %v", *file, err)
		}
	}

	editor := NewEditor(doc, *cell)
	w, h := editor.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("gridwalk level editor")

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}
