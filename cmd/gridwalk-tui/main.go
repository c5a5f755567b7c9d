// Command gridwalk-tui runs the grid walker in a terminal. Click a cell to
// send the agent there; each pickup rings a chime.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/ecs"
	"github.com/milk9111/gridwalk/ecs/system"
	"github.com/milk9111/gridwalk/prefabs"
	"github.com/milk9111/gridwalk/sim"
)

func main() {
	levelName := flag.String("level", "", "level file, on disk or embedded (default from simulation.yaml)")
	specName := flag.String("spec", prefabs.SimulationFile, "simulation tuning prefab")
	logFile := flag.String("log", "", "write logs to this file; the terminal belongs to the board")
	logLevel := flag.String("log-level", "info", "debug|info|warn|error")
	mute := flag.Bool("mute", false, "no pickup chime")
	flag.Parse()

	var out io.Writer
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger, err := common.NewLogger(out, *logLevel)
	if err != nil {
		log.Fatal(err)
	}

	cfg, _, err := prefabs.BuildConfig(*specName, *levelName)
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	chime := NewChime()
	if !*mute {
		if err := chime.Initialize(); err != nil {
			logger.Warn("audio unavailable", "err", err)
		}
	}
	defer chime.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redraw := make(chan struct{}, 1)
	go func() {
		err := s.Run(ctx, func(_ sim.State, events []ecs.Event) {
			chime.Ring(countType(events, system.EventItemCollected))
			if len(events) == 0 {
				return
			}
			select {
			case redraw <- struct{}{}:
			default:
			}
		})
		logger.Debug("simulation stopped", "run", s.ID(), "err", err)
	}()

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	sty := defaultStyles()
	draw(screen, s.State(), cfg.GridSize, sty)
	for {
		select {
		case <-redraw:
			draw(screen, s.State(), cfg.GridSize, sty)
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			case *tcell.EventMouse:
				if ev.Buttons()&tcell.Button1 == 0 {
					continue
				}
				col, row := ev.Position()
				c, ok := cellAt(col, row, cfg.GridSize)
				if !ok {
					continue
				}
				if err := s.SetDestination(c); err != nil {
					logger.Warn("destination refused", "cell", c, "err", err)
				}
			case *tcell.EventResize:
				screen.Sync()
				draw(screen, s.State(), cfg.GridSize, sty)
			}
		}
	}
}

func countType(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}
