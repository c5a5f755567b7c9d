package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/prefabs"
	"golang.design/x/clipboard"
)

func main() {
	debug := flag.Bool("debug", false, "show expanded search cells and run details")
	levelName := flag.String("level", "", "level file, on disk or embedded (default from simulation.yaml)")
	specName := flag.String("spec", prefabs.SimulationFile, "simulation tuning prefab")
	watch := flag.Bool("watch", false, "hot reload speed and palette from prefabs/")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger, err := common.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		log.Fatal(err)
	}

	cfg, spec, err := prefabs.BuildConfig(*specName, *levelName)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(cfg, spec, logger, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		game.EnableClipboard()
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("prefab watcher disabled", "dir", prefabs.Dir, "err", err)
		} else {
			defer w.Close()
			game.Watch(w)
		}
	}

	side := cfg.GridSize * spec.Tile()
	ebiten.SetWindowSize(side, side)
	ebiten.SetWindowTitle("gridwalk")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
