// Command scenario runs a tengo script against a headless simulator and
// prints what happened.
//
//	scenario -script collect_all -level orchard.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/milk9111/gridwalk/common"
	"github.com/milk9111/gridwalk/prefabs"
	"github.com/milk9111/gridwalk/scenario"
	"github.com/milk9111/gridwalk/sim"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// report is what gets printed after a run.
type report struct {
	Script    string         `yaml:"script"`
	RunID     string         `yaml:"run_id"`
	Ticks     int            `yaml:"ticks"`
	Cell      [2]int         `yaml:"cell,flow"`
	Collected int            `yaml:"collected"`
	Total     int            `yaml:"total"`
	Idle      bool           `yaml:"idle"`
	Events    map[string]int `yaml:"events,omitempty"`
	Logs      []string       `yaml:"logs,omitempty"`
	Error     string         `yaml:"error,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scriptName := fs.String("script", "", "embedded script name or a .tengo file (default from simulation.yaml)")
	levelName := fs.String("level", "", "level file, on disk or embedded (default from simulation.yaml)")
	specName := fs.String("spec", prefabs.SimulationFile, "simulation tuning prefab")
	logLevel := fs.String("log-level", "warn", "debug|info|warn|error")
	timeout := fs.Duration("timeout", 30*time.Second, "abort the script after this long")
	list := fs.Bool("list", false, "list embedded scripts and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *list {
		for _, name := range prefabs.Scripts() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	logger, err := common.NewLogger(stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, spec, err := prefabs.BuildConfig(*specName, *levelName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	name := *scriptName
	if name == "" {
		name = spec.Script
	}
	if name == "" {
		fmt.Fprintln(stderr, "scenario: no script given and none named in", *specName)
		return 2
	}
	src, err := loadScript(name)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, runErr := scenario.Run(ctx, s, src,
		scenario.WithLogger(logger),
		scenario.WithGridSize(cfg.GridSize),
	)
	rep := newReport(name, s.ID(), res)
	if runErr != nil {
		rep.Error = runErr.Error()
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	_ = enc.Close()

	switch {
	case runErr == nil:
		return 0
	case errors.Is(runErr, scenario.ErrAssertion):
		return 3
	default:
		return 1
	}
}

func newReport(script, runID string, res scenario.Result) report {
	cell := res.State.Cell()
	rep := report{
		Script:    script,
		RunID:     runID,
		Ticks:     res.Ticks,
		Cell:      [2]int{cell.X, cell.Y},
		Collected: res.State.Collected,
		Total:     res.State.Total,
		Idle:      res.State.Idle(),
		Logs:      res.Logs,
	}
	if len(res.Events) > 0 {
		// yaml.v3 writes map keys sorted
		rep.Events = make(map[string]int, len(res.Events))
		for typ, n := range res.Events {
			rep.Events[string(typ)] = n
		}
	}
	return rep
}

// loadScript reads a .tengo file from disk when one exists at name and falls
// back to the prefab scripts otherwise.
func loadScript(name string) ([]byte, error) {
	if strings.HasSuffix(name, ".tengo") {
		if data, err := os.ReadFile(name); err == nil {
			return data, nil
		}
	}
	return prefabs.LoadScript(name)
}
